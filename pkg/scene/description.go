package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/lights"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/loaders"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/material"
)

var ErrInvalidDescription = errors.New("scene: invalid scene description")

// Vec is a JSON friendly [x, y, z] triple
type Vec [3]float64

func (v Vec) vec3() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }
func (v Vec) color() core.Color { return core.NewColor(v[0], v[1], v[2]) }
func (v Vec) isZero() bool { return v == Vec{} }

// Description is the on-disk JSON form of a scene
type Description struct {
	Camera     CameraDesc              `json:"camera"`
	Background Vec                     `json:"background"`
	Ambient    *float64                `json:"ambient,omitempty"`
	Materials  map[string]MaterialDesc `json:"materials,omitempty"`
	Spheres    []SphereDesc            `json:"spheres,omitempty"`
	Triangles  []TriangleDesc          `json:"triangles,omitempty"`
	Meshes     []MeshDesc              `json:"meshes,omitempty"`
	Lights     []LightDesc             `json:"lights"`
	Render     RenderDesc              `json:"render,omitempty"`

	dir string // Directory that relative mesh paths resolve against
}

type CameraDesc struct {
	Position Vec     `json:"position"`
	LookAt   Vec     `json:"lookAt"`
	Up       Vec     `json:"up,omitempty"`
	FOV      float64 `json:"fov,omitempty"`
	Near     float64 `json:"near,omitempty"`
	Far      float64 `json:"far,omitempty"`
}

type MaterialDesc struct {
	Color           Vec      `json:"color"`
	Ambient         *float64 `json:"ambient,omitempty"`
	Specular        *float64 `json:"specular,omitempty"`
	Shininess       *float64 `json:"shininess,omitempty"`
	Reflectivity    float64  `json:"reflectivity,omitempty"`
	RefractionIndex float64  `json:"ior,omitempty"`
	Transparency    float64  `json:"transparency,omitempty"`
	Texture         string   `json:"texture,omitempty"`
}

type SphereDesc struct {
	Center   Vec     `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material,omitempty"`
}

type TriangleDesc struct {
	Vertices [3]Vec `json:"vertices"`
	Material string `json:"material,omitempty"`
}

// MeshDesc places an OBJ or glTF model. Rotation angles are degrees applied
// about X, then Y, then Z; scaling happens first and translation last.
type MeshDesc struct {
	Path      string `json:"path"`
	Translate Vec    `json:"translate,omitempty"`
	RotateDeg Vec    `json:"rotateDeg,omitempty"`
	Scale     Vec    `json:"scale,omitempty"` // Zero components default to 1
	Material  string `json:"material,omitempty"`
}

type LightDesc struct {
	Type      string  `json:"type"` // directional, point or spot
	Position  Vec     `json:"position,omitempty"`
	Direction Vec     `json:"direction,omitempty"`
	Target    Vec     `json:"target,omitempty"`
	Color     Vec     `json:"color"`
	Intensity float64 `json:"intensity"`
	InnerDeg  float64 `json:"innerDeg,omitempty"`
	OuterDeg  float64 `json:"outerDeg,omitempty"`
}

// RenderDesc carries optional render settings stored with the scene
type RenderDesc struct {
	Width    int `json:"width,omitempty"`
	Height   int `json:"height,omitempty"`
	MaxDepth int `json:"maxDepth,omitempty"`
}

// LoadDescription reads a JSON scene description and fills in defaults
func LoadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var desc Description
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDescription, path, err)
	}
	desc.dir = filepath.Dir(path)

	defaults := DefaultCameraConfig()
	if desc.Camera.Up.isZero() {
		desc.Camera.Up = Vec{defaults.Up.X, defaults.Up.Y, defaults.Up.Z}
	}
	if desc.Camera.FOV <= 0 {
		desc.Camera.FOV = defaults.FOV
	}
	if desc.Camera.Near <= 0 {
		desc.Camera.Near = defaults.Near
	}
	if desc.Camera.Far <= 0 {
		desc.Camera.Far = defaults.Far
	}
	if len(desc.Lights) == 0 {
		return nil, fmt.Errorf("%w: %s has no lights", ErrInvalidDescription, path)
	}

	logger.Debugf("loaded description %s: %d spheres, %d triangles, %d meshes, %d lights",
		path, len(desc.Spheres), len(desc.Triangles), len(desc.Meshes), len(desc.Lights))
	return &desc, nil
}

// Build constructs a frozen scene and its camera from the description
func (d *Description) Build() (*Scene, *Camera, error) {
	camera, err := NewCamera(CameraConfig{
		Position: d.Camera.Position.vec3(),
		LookAt:   d.Camera.LookAt.vec3(),
		Up:       d.Camera.Up.vec3(),
		FOV:      d.Camera.FOV,
		Near:     d.Camera.Near,
		Far:      d.Camera.Far,
	})
	if err != nil {
		return nil, nil, err
	}

	materials, err := d.buildMaterials()
	if err != nil {
		return nil, nil, err
	}
	lookup := func(name string) (*material.Material, error) {
		if name == "" {
			return material.DefaultMaterial(), nil
		}
		mat, ok := materials[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown material %q", ErrInvalidDescription, name)
		}
		return mat, nil
	}

	s := New(d.Background.color())
	if d.Ambient != nil {
		s.Ambient = *d.Ambient
	}

	for i, sd := range d.Spheres {
		mat, err := lookup(sd.Material)
		if err != nil {
			return nil, nil, err
		}
		sphere, err := geometry.NewSphere(sd.Center.vec3(), sd.Radius, mat)
		if err != nil {
			return nil, nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if err := s.Add(sphere); err != nil {
			return nil, nil, err
		}
	}

	for i, td := range d.Triangles {
		mat, err := lookup(td.Material)
		if err != nil {
			return nil, nil, err
		}
		tri, err := geometry.NewTriangle(td.Vertices[0].vec3(), td.Vertices[1].vec3(), td.Vertices[2].vec3(), mat)
		if err != nil {
			return nil, nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		if err := s.Add(tri); err != nil {
			return nil, nil, err
		}
	}

	for _, md := range d.Meshes {
		mesh, err := d.loadMesh(md, lookup)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Add(mesh.Primitives()...); err != nil {
			return nil, nil, err
		}
	}

	for i, ld := range d.Lights {
		light, err := ld.build()
		if err != nil {
			return nil, nil, fmt.Errorf("light %d: %w", i, err)
		}
		if err := s.AddLight(light); err != nil {
			return nil, nil, err
		}
	}

	s.Freeze()
	return s, camera, nil
}

func (d *Description) buildMaterials() (map[string]*material.Material, error) {
	materials := make(map[string]*material.Material, len(d.Materials))
	for name, md := range d.Materials {
		mat := material.NewSolid(md.Color.color())
		mat.Name = name
		if md.Ambient != nil {
			mat.Ambient = *md.Ambient
		}
		if md.Specular != nil {
			mat.Specular = *md.Specular
		}
		if md.Shininess != nil {
			mat.Shininess = *md.Shininess
		}
		mat.Reflectivity = md.Reflectivity
		mat.Transparency = md.Transparency
		if md.RefractionIndex > 0 {
			mat.RefractionIndex = md.RefractionIndex
		}
		if md.Texture != "" {
			tex, err := loaders.LoadTexture(d.resolve(md.Texture))
			if err != nil {
				return nil, fmt.Errorf("material %q: %w", name, err)
			}
			mat.Texture = tex
		}
		if err := mat.Validate(); err != nil {
			return nil, err
		}
		materials[name] = mat
	}
	return materials, nil
}

func (d *Description) loadMesh(md MeshDesc, lookup func(string) (*material.Material, error)) (*loaders.Mesh, error) {
	path := d.resolve(md.Path)

	var mesh *loaders.Mesh
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		mesh, err = loaders.LoadOBJ(path)
	case ".gltf", ".glb":
		mesh, err = loaders.LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%w: unsupported mesh format %q", ErrInvalidDescription, md.Path)
	}
	if err != nil {
		return nil, err
	}

	if md.Material != "" {
		mat, err := lookup(md.Material)
		if err != nil {
			return nil, err
		}
		for i, tri := range mesh.Triangles {
			replaced, err := geometry.NewTriangle(tri.V0, tri.V1, tri.V2, mat)
			if err != nil {
				return nil, err
			}
			replaced.Normals, replaced.UVs = tri.Normals, tri.UVs
			mesh.Triangles[i] = replaced
		}
	}

	scale := md.Scale
	for i := range scale {
		if scale[i] == 0 {
			scale[i] = 1
		}
	}
	transform := geometry.Identity().
		Scale(scale[0], scale[1], scale[2]).
		RotateX(md.RotateDeg[0]).
		RotateY(md.RotateDeg[1]).
		RotateZ(md.RotateDeg[2]).
		Translate(md.Translate[0], md.Translate[1], md.Translate[2])

	placed := mesh.Transform(transform)
	if placed.Skipped > mesh.Skipped {
		logger.Warningf("%s: %d triangles collapsed by the mesh transform", md.Path, placed.Skipped-mesh.Skipped)
	}
	return placed, nil
}

func (d *Description) resolve(path string) string {
	if filepath.IsAbs(path) || d.dir == "" {
		return path
	}
	return filepath.Join(d.dir, path)
}

func (ld LightDesc) build() (lights.Light, error) {
	switch strings.ToLower(ld.Type) {
	case "directional":
		return lights.NewDirectionalLight(ld.Direction.vec3(), ld.Color.color(), ld.Intensity)
	case "point":
		return lights.NewPointLight(ld.Position.vec3(), ld.Color.color(), ld.Intensity)
	case "spot":
		return lights.NewSpotLight(ld.Position.vec3(), ld.Target.vec3(), ld.Color.color(), ld.Intensity, ld.InnerDeg, ld.OuterDeg)
	}
	return nil, fmt.Errorf("%w: unknown light type %q", ErrInvalidDescription, ld.Type)
}
