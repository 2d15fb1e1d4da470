package server

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"strconv"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/renderer"
	"github.com/fogleman/gg"
	"github.com/labstack/echo/v4"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string // Scene ID (preset or "file:<name>")
	Width    int    // Image width
	Height   int    // Image height
	MaxDepth int    // Reflection and refraction budget
	Workers  int    // Worker count, 0 for the default
	Overlay  bool   // Outline the tiles on the result
}

// parseRenderRequest parses request parameters
func parseRenderRequest(c echo.Context) (*RenderRequest, error) {
	query := c.QueryParams()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 300, 1, 2000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 5, 0, 32); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, 256); err != nil {
		return nil, err
	}
	if value := query.Get("overlay"); value != "" {
		if req.Overlay, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid overlay: %s", value)
		}
	}
	return req, nil
}

// handleRender renders a scene and answers with a PNG image. Render statistics
// are reported in X-Render-* headers.
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sc, camera, err := s.loadScene(req.Scene)
	if err != nil {
		return err
	}

	config := renderer.DefaultConfig()
	config.Width, config.Height = req.Width, req.Height
	config.NumWorkers = req.Workers
	config.Integrator.MaxDepth = req.MaxDepth

	rt, err := renderer.NewRaytracer(sc, camera, config)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	img, stats, err := rt.Render(c.Request().Context())
	if err != nil {
		logger.Errorf("render of %s failed: %v", req.Scene, err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var out image.Image = img
	if req.Overlay {
		out = renderer.DrawTileOverlay(img, rt.Tiles())
	}
	var buf bytes.Buffer
	if err := gg.NewContextForImage(out).EncodePNG(&buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
	}

	header := c.Response().Header()
	header.Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	header.Set("X-Render-Tiles", strconv.Itoa(stats.Tiles))
	header.Set("X-Render-Workers", strconv.Itoa(stats.Workers))
	header.Set("X-Render-Primary-Hits", strconv.Itoa(stats.PrimaryHits))

	logger.Infof("rendered %s at %dx%d in %v", req.Scene, req.Width, req.Height, stats.Duration)
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}
