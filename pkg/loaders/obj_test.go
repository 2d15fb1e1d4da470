package loaders

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadOBJ_QuadWithMaterials(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, filepath.Join(dir, "checker.png"))
	writeFile(t, dir, "scene.mtl", `
# two materials
newmtl red
Kd 1 0 0
Ks 0.5 0.5 0.5
Ns 64

newmtl glass
Kd 1 1 1
Ni 1.5
d 0.1
map_Kd checker.png
`)
	path := writeFile(t, dir, "scene.obj", `
mtllib scene.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
o quad
usemtl red
f 1 2 3 4
usemtl glass
f 1/1/1 2/2/1 -2/3/-1
`)

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if mesh.Name != "scene" {
		t.Errorf("Expected mesh name 'scene', got %q", mesh.Name)
	}

	// The quad fans into two triangles plus one explicit triangle
	if len(mesh.Triangles) != 3 {
		t.Fatalf("Expected 3 triangles, got %d", len(mesh.Triangles))
	}

	red := mesh.Triangles[0].Material()
	if red.Name != "red" || red.Color != core.NewColor(1, 0, 0) || red.Shininess != 64 || red.Specular != 0.5 {
		t.Errorf("Unexpected red material: %+v", red)
	}
	if mesh.Triangles[1].V2 != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected second fan triangle to end at vertex 4, got %v", mesh.Triangles[1].V2)
	}

	glass := mesh.Triangles[2]
	mat := glass.Material()
	if mat.RefractionIndex != 1.5 || math.Abs(mat.Transparency-0.9) > 1e-12 || !mat.HasTexture() {
		t.Errorf("Unexpected glass material: %+v", mat)
	}
	if glass.Normals == nil || glass.UVs == nil {
		t.Fatal("Expected normals and UVs on the textured triangle")
	}
	if glass.V2 != core.NewVec3(1, 1, 0) {
		t.Errorf("Expected negative index -2 to resolve to vertex 3, got %v", glass.V2)
	}
}

func TestReadOBJ_SkipsDegenerateFaces(t *testing.T) {
	src := strings.NewReader(`
v 0 0 0
v 1 0 0
v 2 0 0
v 0 1 0
f 1 2 3
f 1 2 4
`)
	mesh, err := ReadOBJ(src, "inline")
	if err != nil {
		t.Fatalf("ReadOBJ failed: %v", err)
	}
	if len(mesh.Triangles) != 1 || mesh.Skipped != 1 {
		t.Errorf("Expected 1 triangle and 1 skipped face, got %d and %d", len(mesh.Triangles), mesh.Skipped)
	}
}

func TestReadOBJ_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n", "out of bounds"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", "out of bounds"},
		{"bad vertex", "v 0 zero 0\n", "invalid syntax"},
		{"unknown material", "usemtl nothing\n", "undefined material"},
		{"too few face vertices", "v 0 0 0\nv 1 0 0\nf 1 2\n", "at least 3 vertices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tt.src), "bad.obj")
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.message) || !strings.Contains(err.Error(), "bad.obj") {
				t.Errorf("Expected error mentioning %q and the file, got %v", tt.message, err)
			}
		})
	}
}

func TestLoadOBJ_MissingTextureIsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m.mtl", "newmtl plain\nKd 0.5 0.5 0.5\nmap_Kd nowhere.png\n")
	path := writeFile(t, dir, "m.obj", "mtllib m.mtl\nusemtl plain\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if mesh.Triangles[0].Material().HasTexture() {
		t.Error("Expected the missing texture to be dropped")
	}
}

func TestLoadOBJ_MaterialErrorsCarryIncludeChain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.mtl", "Kd 1 1 1\n")
	path := writeFile(t, dir, "m.obj", "mtllib bad.mtl\n")

	_, err := LoadOBJ(path)
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !strings.Contains(err.Error(), "without a 'newmtl'") || !strings.Contains(err.Error(), "referenced from") {
		t.Errorf("Expected material error with include frame, got %v", err)
	}
}

func TestMesh_Transform(t *testing.T) {
	mesh, err := ReadOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), "tri")
	if err != nil {
		t.Fatal(err)
	}

	moved := mesh.Transform(geometry.Identity().Translate(0, 0, -5))
	if len(moved.Triangles) != 1 || moved.Triangles[0].V0 != core.NewVec3(0, 0, -5) {
		t.Errorf("Expected translated triangle, got %+v", moved.Triangles)
	}
	if mesh.Triangles[0].V0 != core.NewVec3(0, 0, 0) {
		t.Error("Transform must not modify the source mesh")
	}

	flat := mesh.Transform(geometry.Identity().Scale(0, 1, 1))
	if len(flat.Triangles) != 0 || flat.Skipped != 1 {
		t.Errorf("Expected the collapsed triangle to be skipped, got %d triangles", len(flat.Triangles))
	}
	if len(moved.Primitives()) != 1 {
		t.Errorf("Expected one primitive")
	}
}
