package core

import (
	"image/color"
	"math"
)

// Color is a linear RGB triple. Channels are nominally in [0, 1].
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

var (
	Black = Color{}
	White = Color{R: 1, G: 1, B: 1}
)

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Scale returns the color multiplied by a scalar
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Mul returns the channel-wise product of two colors
func (c Color) Mul(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Lerp interpolates between c (t=0) and other (t=1)
func (c Color) Lerp(other Color, t float64) Color {
	return c.Scale(1 - t).Add(other.Scale(t))
}

// Clamp returns a color with channels clamped to [0, 1]
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// GammaCorrect raises every channel to 1/gamma. Channels are clamped first so the
// result stays in the display range.
func (c Color) GammaCorrect(gamma float64) Color {
	invGamma := 1.0 / gamma
	c = c.Clamp()
	return Color{
		R: math.Pow(c.R, invGamma),
		G: math.Pow(c.G, invGamma),
		B: math.Pow(c.B, invGamma),
	}
}

// ToRGBA converts to an opaque 8-bit color
func (c Color) ToRGBA() color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: uint8(math.Round(255 * c.R)),
		G: uint8(math.Round(255 * c.G)),
		B: uint8(math.Round(255 * c.B)),
		A: 255,
	}
}

// ColorFromRGBA converts any image color to a linear Color in [0, 1]
func ColorFromRGBA(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	// RGBA returns uint32 in [0, 65535]
	return Color{
		R: float64(r) / 65535.0,
		G: float64(g) / 65535.0,
		B: float64(b) / 65535.0,
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
