package lights

import (
	"fmt"
	"math"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
)

// SpotLight is a point light restricted to a cone. Intensity is full inside the
// inner angle, zero beyond the outer angle, and linear in cosine between them.
type SpotLight struct {
	PointLight
	axis     core.Vec3 // Normalized cone axis (light -> target)
	cosInner float64
	cosOuter float64
}

// NewSpotLight creates a spot light at position aimed at target.
// Angles are half-angles from the cone axis in degrees.
func NewSpotLight(position, target core.Vec3, color core.Color, intensity, innerDegrees, outerDegrees float64) (*SpotLight, error) {
	point, err := NewPointLight(position, color, intensity)
	if err != nil {
		return nil, err
	}

	axis := target.Sub(position)
	if axis.Norm2() == 0 {
		return nil, fmt.Errorf("%w: spot light target equals its position", ErrInvalidLight)
	}
	if innerDegrees < 0 || outerDegrees < innerDegrees || outerDegrees > 180 {
		return nil, fmt.Errorf("%w: cone angles inner=%g outer=%g", ErrInvalidLight, innerDegrees, outerDegrees)
	}

	return &SpotLight{
		PointLight: *point,
		axis:       axis.Normalize(),
		cosInner:   math.Cos(innerDegrees * math.Pi / 180),
		cosOuter:   math.Cos(outerDegrees * math.Pi / 180),
	}, nil
}

func (l *SpotLight) Type() LightType {
	return LightTypeSpot
}

// Attenuation is the point-light falloff scaled by the cone factor
func (l *SpotLight) Attenuation(point core.Vec3) float64 {
	return l.PointLight.Attenuation(point) * l.ConeFactor(point)
}

// ConeFactor returns the angular weight in [0, 1] of point relative to the cone axis
func (l *SpotLight) ConeFactor(point core.Vec3) float64 {
	toPoint := point.Sub(l.Position)
	if toPoint.Norm2() == 0 {
		return 1
	}
	cosTheta := l.axis.Dot(toPoint.Normalize())

	if l.cosInner <= l.cosOuter {
		// Zero-width falloff band: hard edge
		if cosTheta >= l.cosOuter {
			return 1
		}
		return 0
	}

	factor := (cosTheta - l.cosOuter) / (l.cosInner - l.cosOuter)
	return math.Max(0, math.Min(1, factor))
}

func (l *SpotLight) light() {}
