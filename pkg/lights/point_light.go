package lights

import (
	"fmt"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
)

// Distance falloff coefficients: intensity / (1 + Linear·d + Quadratic·d²)
const (
	DefaultLinearFalloff    = 0.09
	DefaultQuadraticFalloff = 0.032
)

// PointLight emits uniformly in all directions from a single position
type PointLight struct {
	Position  core.Vec3
	Linear    float64
	Quadratic float64
	color     core.Color
	intensity float64
}

// NewPointLight creates a point light with the default distance falloff
func NewPointLight(position core.Vec3, color core.Color, intensity float64) (*PointLight, error) {
	if intensity < 0 {
		return nil, fmt.Errorf("%w: negative intensity %g", ErrInvalidLight, intensity)
	}
	return &PointLight{
		Position:  position,
		Linear:    DefaultLinearFalloff,
		Quadratic: DefaultQuadraticFalloff,
		color:     color,
		intensity: intensity,
	}, nil
}

func (l *PointLight) Type() LightType {
	return LightTypePoint
}

func (l *PointLight) Direction(point core.Vec3) (core.Vec3, float64) {
	toLight := l.Position.Sub(point)
	distance := toLight.Norm()
	if distance == 0 {
		return core.Vec3{}, 0
	}
	return toLight.Mul(1 / distance), distance
}

// Attenuation applies the inverse linear-plus-quadratic falloff
func (l *PointLight) Attenuation(point core.Vec3) float64 {
	d := l.Position.Sub(point).Norm()
	return l.intensity / (1 + l.Linear*d + l.Quadratic*d*d)
}

func (l *PointLight) Color() core.Color {
	return l.color
}

func (l *PointLight) CastsShadows() bool {
	return true
}

func (l *PointLight) light() {}
