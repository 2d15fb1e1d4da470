package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/material"
	"github.com/labstack/echo/v4"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialName string                 `json:"materialName,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	rgba := c.ToRGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// extractMaterialInfo lists the shading coefficients of a material
func extractMaterialInfo(mat *material.Material) map[string]interface{} {
	return map[string]interface{}{
		"color":           hexColor(mat.Color),
		"ambient":         mat.Ambient,
		"specular":        mat.Specular,
		"shininess":       mat.Shininess,
		"reflectivity":    mat.Reflectivity,
		"refractiveIndex": mat.RefractionIndex,
		"transparency":    mat.Transparency,
		"textured":        mat.HasTexture(),
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(p geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := p.(type) {
	case *geometry.Sphere:
		properties["center"] = vec(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vec(geom.V0), vec(geom.V1), vec(geom.V2)}
		properties["smooth"] = geom.Normals != nil
		properties["uv"] = geom.UVs != nil
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

// handleInspect casts the primary ray through one pixel and describes what it hits
func (s *Server) handleInspect(c echo.Context) error {
	req, err := parseRenderRequest(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pixelX, err := strconv.Atoi(c.QueryParam("x"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid x coordinate")
	}
	pixelY, err := strconv.Atoi(c.QueryParam("y"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid y coordinate")
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		return echo.NewHTTPError(http.StatusBadRequest, "pixel coordinates out of bounds")
	}

	sc, camera, err := s.loadScene(req.Scene)
	if err != nil {
		return err
	}

	ray := camera.PrimaryRay(pixelX, pixelY, req.Width, req.Height)
	hit, ok := sc.ClosestHit(ray, camera.Near, camera.Far)
	if !ok {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	geometryType, geometryProps := extractGeometryInfo(hit.Primitive)
	mat := hit.Material()

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialName: mat.Name,
		GeometryType: geometryType,
		Point:        vec(hit.Point),
		Normal:       vec(hit.Normal),
		Distance:     hit.T,
		Properties: map[string]interface{}{
			"material":     extractMaterialInfo(mat),
			"geometry":     geometryProps,
			"surfaceColor": hexColor(hit.Color),
		},
	})
}
