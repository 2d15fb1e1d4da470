package scene

import (
	"math"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/lights"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB -> LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS -> linear RGB
	return core.NewColor(
		+4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_,
		-1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_,
		-0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_,
	).Clamp()
}

// NewSphereGridScene creates a gridSize×gridSize grid of rainbow spheres with
// increasing reflectivity. It is mostly useful as a BVH workload.
func NewSphereGridScene(gridSize int) (*Scene, *Camera, error) {
	extent := float64(gridSize - 1)
	camera, err := NewCamera(CameraConfig{
		Position: core.NewVec3(extent/2, extent*0.6, extent*1.8),
		LookAt:   core.NewVec3(extent/2, 0, extent/2),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      40,
		Near:     0.001,
		Far:      1e4,
	})
	if err != nil {
		return nil, nil, err
	}

	s := New(core.NewColor(0.05, 0.05, 0.08))

	if err := addQuad(s,
		core.NewVec3(-1, -0.4, extent+1),
		core.NewVec3(extent+1, -0.4, extent+1),
		core.NewVec3(extent+1, -0.4, -1),
		core.NewVec3(-1, -0.4, -1),
		material.NewSolid(core.NewColor(0.5, 0.5, 0.5))); err != nil {
		return nil, nil, err
	}

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			hue := float64(i*gridSize+j) / float64(gridSize*gridSize) * 360
			mat := material.NewSolid(oklchToRGB(0.7, 0.15, hue))
			mat.Reflectivity = float64(j) / float64(max(1, gridSize-1)) * 0.6
			mat.RefractionIndex = 2.5
			mat.Specular = 0.6
			mat.Shininess = 64

			sphere, err := geometry.NewSphere(core.NewVec3(float64(i), 0, float64(j)), 0.4, mat)
			if err != nil {
				return nil, nil, err
			}
			if err := s.Add(sphere); err != nil {
				return nil, nil, err
			}
		}
	}

	light, err := lights.NewPointLight(core.NewVec3(extent/2, extent+2, extent), core.White, 8)
	if err != nil {
		return nil, nil, err
	}
	sun, err := lights.NewDirectionalLight(core.NewVec3(0.3, -1, -0.5), core.White, 0.4)
	if err != nil {
		return nil, nil, err
	}
	for _, l := range []lights.Light{light, sun} {
		if err := s.AddLight(l); err != nil {
			return nil, nil, err
		}
	}

	s.Freeze()
	return s, camera, nil
}
