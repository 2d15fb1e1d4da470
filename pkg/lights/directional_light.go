package lights

import (
	"fmt"
	"math"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
)

// DirectionalLight is a light at infinity with a constant direction and intensity.
// It never occludes: no shadow ray is cast for it.
type DirectionalLight struct {
	direction core.Vec3 // Normalized direction the light travels in
	color     core.Color
	intensity float64
}

// NewDirectionalLight creates a light shining along direction
func NewDirectionalLight(direction core.Vec3, color core.Color, intensity float64) (*DirectionalLight, error) {
	if direction.Norm2() == 0 {
		return nil, fmt.Errorf("%w: directional light needs a non-zero direction", ErrInvalidLight)
	}
	if intensity < 0 {
		return nil, fmt.Errorf("%w: negative intensity %g", ErrInvalidLight, intensity)
	}
	return &DirectionalLight{direction: direction.Normalize(), color: color, intensity: intensity}, nil
}

func (l *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Direction points against the travel direction, toward the light
func (l *DirectionalLight) Direction(point core.Vec3) (core.Vec3, float64) {
	return l.direction.Mul(-1), math.Inf(1)
}

// Attenuation is constant and equals the intensity
func (l *DirectionalLight) Attenuation(point core.Vec3) float64 {
	return l.intensity
}

func (l *DirectionalLight) Color() core.Color {
	return l.color
}

func (l *DirectionalLight) CastsShadows() bool {
	return false
}

func (l *DirectionalLight) light() {}
