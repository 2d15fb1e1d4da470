package loaders

import (
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
)

func writeTestImage(t *testing.T, path string) {
	t.Helper()

	// 2x2 image: white, red / green, blue
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
}

func TestLoadTexture(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")
	writeTestImage(t, testFile)

	tex, err := LoadTexture(testFile)
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Fatalf("Expected 2x2 texture, got %dx%d", tex.Width, tex.Height)
	}

	colorNear := func(a, b core.Color) bool {
		return math.Abs(a.R-b.R) < 1e-3 && math.Abs(a.G-b.G) < 1e-3 && math.Abs(a.B-b.B) < 1e-3
	}

	expected := []core.Color{
		core.NewColor(1, 1, 1), core.NewColor(1, 0, 0),
		core.NewColor(0, 1, 0), core.NewColor(0, 0, 1),
	}
	for i, want := range expected {
		if !colorNear(tex.Pixels[i], want) {
			t.Errorf("Pixel %d: expected %v, got %v", i, want, tex.Pixels[i])
		}
	}

	// Row 0 of the file is the top of the texture (v near 1)
	if got := tex.Sample(core.NewVec2(0.75, 0.9)); !colorNear(got, core.NewColor(1, 0, 0)) {
		t.Errorf("Expected top-right sample to be red, got %v", got)
	}
}

func TestLoadTexture_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTexture(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected error for a missing file")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(garbage); err == nil {
		t.Error("Expected error for an undecodable file")
	}
}
