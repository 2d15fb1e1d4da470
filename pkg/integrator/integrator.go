package integrator

import (
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// PixelColor computes the display color for a primary ray and its closest hit.
	// The result is gamma corrected and clamped to [0, 1].
	PixelColor(ray core.Ray, hit geometry.Intersection) core.Color
}

// Options controls the Whitted integrator
type Options struct {
	MaxDepth     int     // Recursion budget for reflection and refraction rays
	ShadowBias   float64 // Offset along the normal for secondary ray origins
	SpecularTint float64 // How much of the base color bleeds into highlights
	Gamma        float64 // Display gamma applied by PixelColor
}

// DefaultOptions returns the standard Whitted settings
func DefaultOptions() Options {
	return Options{
		MaxDepth:     5,
		ShadowBias:   1e-4,
		SpecularTint: 0.1,
		Gamma:        2.2,
	}
}
