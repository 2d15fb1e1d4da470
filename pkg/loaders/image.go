package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder

	"github.com/fogleman/gg"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/material"
)

// LoadTexture decodes a PNG, JPEG, BMP or TIFF image into a texture
func LoadTexture(filename string) (*material.ImageTexture, error) {
	img, err := gg.LoadImage(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", filename, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("texture %s has no pixels", filename)
	}
	return material.NewImageTextureFromImage(img), nil
}

// SavePNG encodes img as a PNG file
func SavePNG(filename string, img image.Image) error {
	if err := gg.SavePNG(filename, img); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
