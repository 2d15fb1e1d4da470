package lights

import (
	"errors"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
)

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
	LightTypeSpot        LightType = "spot"
)

var ErrInvalidLight = errors.New("lights: invalid light")

// Light is the capability set shared by every light variant.
// The set is closed: Directional, Point and Spot are the only implementations.
type Light interface {
	Type() LightType

	// Direction returns the unit direction FROM point TO the light and the
	// distance to it. Lights at infinity report +Inf.
	Direction(point core.Vec3) (core.Vec3, float64)

	// Attenuation returns the scalar intensity that reaches point
	Attenuation(point core.Vec3) float64

	// Color returns the light color
	Color() core.Color

	// CastsShadows reports whether shading must run an occlusion test for this light
	CastsShadows() bool

	light()
}
