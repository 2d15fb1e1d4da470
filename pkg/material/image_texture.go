package material

import (
	"image"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
)

// Texture provides a color for a pair of surface texture coordinates
type Texture interface {
	Sample(uv core.Vec2) core.Color
}

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x], row 0 is the top of the image
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Color) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewImageTextureFromImage copies a decoded image into a texture
func NewImageTextureFromImage(img image.Image) *ImageTexture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels[y*width+x] = core.ColorFromRGBA(img.At(x+bounds.Min.X, y+bounds.Min.Y))
		}
	}

	return NewImageTexture(width, height, pixels)
}

// Sample looks up the nearest texel. Coordinates are clamped to the image and
// V=0 maps to the bottom row.
func (t *ImageTexture) Sample(uv core.Vec2) core.Color {
	if t.Width == 0 || t.Height == 0 {
		return core.Black
	}

	x := int(uv.X * float64(t.Width))
	y := int((1.0 - uv.Y) * float64(t.Height))

	x = max(0, min(t.Width-1, x))
	y = max(0, min(t.Height-1, y))

	return t.Pixels[y*t.Width+x]
}
