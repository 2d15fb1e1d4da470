package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/lights"
)

const testDescription = `{
  "camera": {"position": [0, 0, 5], "lookAt": [0, 0, 0], "fov": 50},
  "background": [0.1, 0.2, 0.3],
  "ambient": 0.2,
  "materials": {
    "red": {"color": [0.9, 0.1, 0.1], "shininess": 16},
    "glass": {"color": [1, 1, 1], "transparency": 0.9, "ior": 1.5}
  },
  "spheres": [
    {"center": [0, 0, 0], "radius": 1, "material": "red"},
    {"center": [2, 0, 0], "radius": 0.5, "material": "glass"}
  ],
  "triangles": [
    {"vertices": [[-5, -1, 5], [5, -1, 5], [0, -1, -5]]}
  ],
  "meshes": [
    {"path": "tri.obj", "translate": [0, 3, 0], "scale": [2, 0, 0], "material": "red"}
  ],
  "lights": [
    {"type": "point", "position": [3, 4, 5], "color": [1, 1, 1], "intensity": 2},
    {"type": "directional", "direction": [0, -1, 0], "color": [1, 1, 1], "intensity": 0.5},
    {"type": "spot", "position": [0, 5, 0], "target": [0, 0, 0], "color": [1, 1, 1], "intensity": 3, "innerDeg": 10, "outerDeg": 20}
  ],
  "render": {"width": 64, "height": 48, "maxDepth": 3}
}`

const testOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func writeDescription(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(testOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDescription_Build(t *testing.T) {
	desc, err := LoadDescription(writeDescription(t, testDescription))
	if err != nil {
		t.Fatalf("LoadDescription: %v", err)
	}
	if desc.Render.Width != 64 || desc.Render.Height != 48 || desc.Render.MaxDepth != 3 {
		t.Errorf("Unexpected render settings %+v", desc.Render)
	}

	s, camera, err := desc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !s.Frozen() {
		t.Error("Expected a frozen scene")
	}
	if s.Background != core.NewColor(0.1, 0.2, 0.3) || s.Ambient != 0.2 {
		t.Errorf("Unexpected background %v or ambient %f", s.Background, s.Ambient)
	}
	if got := len(s.Primitives()); got != 4 {
		t.Errorf("Expected 4 primitives, got %d", got)
	}
	if camera.FOV != 50 || camera.Up != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected fov 50 and default up, got %f %v", camera.FOV, camera.Up)
	}

	wantTypes := []lights.LightType{lights.LightTypePoint, lights.LightTypeDirectional, lights.LightTypeSpot}
	for i, l := range s.Lights() {
		if l.Type() != wantTypes[i] {
			t.Errorf("Light %d: expected type %v, got %v", i, wantTypes[i], l.Type())
		}
	}

	// The mesh triangle is scaled by 2 in X, lifted by 3 and uses the override material
	ray := core.NewRay(core.NewVec3(0.5, 3.25, 5), core.NewVec3(0, 0, -1))
	hit, ok := s.ClosestHit(ray, 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected to hit the placed mesh")
	}
	if hit.Material().Name != "red" || math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("Expected red mesh at t=5, got %q at t=%f", hit.Material().Name, hit.T)
	}
}

func TestLoadDescription_Errors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantErr  error
	}{
		{"malformed json", `{"camera": `, ErrInvalidDescription},
		{"no lights", `{"camera": {"position": [0, 0, 5], "lookAt": [0, 0, 0]}}`, ErrInvalidDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDescription(writeDescription(t, tt.contents))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDescription_BuildErrors(t *testing.T) {
	light := `"lights": [{"type": "point", "position": [0, 5, 0], "color": [1, 1, 1], "intensity": 1}]`
	tests := []struct {
		name     string
		contents string
	}{
		{"unknown material", `{"camera": {"position": [0, 0, 5], "lookAt": [0, 0, 0]}, "spheres": [{"center": [0, 0, 0], "radius": 1, "material": "gold"}], ` + light + `}`},
		{"bad radius", `{"camera": {"position": [0, 0, 5], "lookAt": [0, 0, 0]}, "spheres": [{"center": [0, 0, 0], "radius": -1}], ` + light + `}`},
		{"unknown light", `{"camera": {"position": [0, 0, 5], "lookAt": [0, 0, 0]}, "lights": [{"type": "area", "color": [1, 1, 1], "intensity": 1}]}`},
		{"unsupported mesh", `{"camera": {"position": [0, 0, 5], "lookAt": [0, 0, 0]}, "meshes": [{"path": "model.ply"}], ` + light + `}`},
		{"camera at target", `{"camera": {"position": [0, 0, 0], "lookAt": [0, 0, 0]}, ` + light + `}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := LoadDescription(writeDescription(t, tt.contents))
			if err != nil {
				t.Fatalf("LoadDescription: %v", err)
			}
			if _, _, err := desc.Build(); err == nil {
				t.Error("Expected Build to fail")
			}
		})
	}
}

func TestLoad_FileScene(t *testing.T) {
	path := writeDescription(t, testDescription)

	s, _, err := Load("file:scene", filepath.Dir(path))
	if err != nil {
		t.Fatalf("Load by file id: %v", err)
	}
	if len(s.Primitives()) != 4 {
		t.Errorf("Expected 4 primitives, got %d", len(s.Primitives()))
	}

	if _, _, err := Load(path, ""); err != nil {
		t.Errorf("Load by path: %v", err)
	}
}
