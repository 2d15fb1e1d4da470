package material

import (
	"errors"
	"fmt"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
)

var ErrInvalidMaterial = errors.New("material: invalid material")

// Material is the shading data bag attached to every primitive.
// It is treated as immutable once the scene has been built.
type Material struct {
	Name            string
	Ambient         float64    // Ambient coefficient, scaled by the scene ambient light
	Specular        float64    // Blinn-Phong specular coefficient
	Shininess       float64    // Blinn-Phong exponent
	Reflectivity    float64    // Mirror reflectivity in [0, 1], weighted by Fresnel
	RefractionIndex float64    // Index of refraction (1 = vacuum)
	Transparency    float64    // Fraction of light transmitted in [0, 1]
	Color           core.Color // Base color used when there is no texture
	Texture         Texture    // Optional texture sampled with surface UVs
}

// DefaultMaterial returns an opaque, mildly glossy grey material
func DefaultMaterial() *Material {
	return &Material{
		Name:            "default",
		Ambient:         0.1,
		Specular:        0.3,
		Shininess:       32,
		RefractionIndex: 1.0,
		Color:           core.NewColor(0.7, 0.7, 0.7),
	}
}

// NewSolid creates an opaque diffuse material with the given color
func NewSolid(color core.Color) *Material {
	m := DefaultMaterial()
	m.Name = ""
	m.Color = color
	return m
}

// HasTexture reports whether the material samples a texture
func (m *Material) HasTexture() bool {
	return m.Texture != nil
}

// ColorAt resolves the surface color for the given texture coordinates
func (m *Material) ColorAt(uv core.Vec2) core.Color {
	if m.Texture == nil {
		return m.Color
	}
	return m.Texture.Sample(uv)
}

// Validate checks that all coefficients are physically meaningful
func (m *Material) Validate() error {
	switch {
	case m.Ambient < 0 || m.Specular < 0 || m.Shininess < 0:
		return fmt.Errorf("%w %q: negative lighting coefficient", ErrInvalidMaterial, m.Name)
	case m.Reflectivity < 0 || m.Reflectivity > 1:
		return fmt.Errorf("%w %q: reflectivity %g outside [0, 1]", ErrInvalidMaterial, m.Name, m.Reflectivity)
	case m.Transparency < 0 || m.Transparency > 1:
		return fmt.Errorf("%w %q: transparency %g outside [0, 1]", ErrInvalidMaterial, m.Name, m.Transparency)
	case m.RefractionIndex < 1:
		return fmt.Errorf("%w %q: refraction index %g below 1", ErrInvalidMaterial, m.Name, m.RefractionIndex)
	}
	return nil
}
