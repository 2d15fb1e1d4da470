package scene

import (
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/lights"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/material"
)

// NewGlassScene creates a glass sphere flanked by a mirror sphere and a matte
// sphere over a checkered triangle floor, lit by a spot light and a dim sun
func NewGlassScene() (*Scene, *Camera, error) {
	camera, err := NewCamera(CameraConfig{
		Position: core.NewVec3(0, 1.5, 6),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      45,
		Near:     0.001,
		Far:      1000,
	})
	if err != nil {
		return nil, nil, err
	}

	s := New(core.NewColor(0.2, 0.3, 0.5))

	if err := addCheckerFloor(s, -1, 6, 8); err != nil {
		return nil, nil, err
	}

	glass := material.NewSolid(core.NewColor(0.95, 0.95, 1))
	glass.Name = "glass"
	glass.Transparency = 0.9
	glass.RefractionIndex = 1.5
	glass.Reflectivity = 0.2
	glass.Specular = 1
	glass.Shininess = 256

	mirror := material.NewSolid(core.NewColor(0.8, 0.8, 0.8))
	mirror.Name = "mirror"
	mirror.Reflectivity = 0.8
	mirror.RefractionIndex = mirrorIOR
	mirror.Specular = 0.8
	mirror.Shininess = 128

	blue := material.NewSolid(core.NewColor(0.1, 0.2, 0.7))
	blue.Name = "blue"

	spheres := []struct {
		center core.Vec3
		radius float64
		mat    *material.Material
	}{
		{core.NewVec3(0, 0, 0), 1, glass},
		{core.NewVec3(-2.2, 0, -1.5), 1, mirror},
		{core.NewVec3(2.2, -0.3, -1), 0.7, blue},
	}
	for _, sp := range spheres {
		sphere, err := geometry.NewSphere(sp.center, sp.radius, sp.mat)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Add(sphere); err != nil {
			return nil, nil, err
		}
	}

	spot, err := lights.NewSpotLight(core.NewVec3(0, 6, 3), core.NewVec3(0, -1, 0), core.White, 6, 20, 35)
	if err != nil {
		return nil, nil, err
	}
	sun, err := lights.NewDirectionalLight(core.NewVec3(-1, -1, -1), core.NewColor(1, 0.95, 0.85), 0.3)
	if err != nil {
		return nil, nil, err
	}
	for _, l := range []lights.Light{spot, sun} {
		if err := s.AddLight(l); err != nil {
			return nil, nil, err
		}
	}

	s.Freeze()
	return s, camera, nil
}

// addCheckerFloor inserts a horizontal square at height y made of tiles×tiles
// quads alternating between two grey materials
func addCheckerFloor(s *Scene, y, halfSize float64, tiles int) error {
	light := material.NewSolid(core.NewColor(0.8, 0.8, 0.8))
	light.Reflectivity = 0.15
	light.RefractionIndex = 1.5
	dark := material.NewSolid(core.NewColor(0.25, 0.25, 0.25))
	dark.Reflectivity = 0.15
	dark.RefractionIndex = 1.5

	step := 2 * halfSize / float64(tiles)
	for i := 0; i < tiles; i++ {
		for j := 0; j < tiles; j++ {
			x0 := -halfSize + float64(i)*step
			z0 := -halfSize + float64(j)*step
			mat := light
			if (i+j)%2 == 1 {
				mat = dark
			}
			err := addQuad(s,
				core.NewVec3(x0, y, z0+step),
				core.NewVec3(x0+step, y, z0+step),
				core.NewVec3(x0+step, y, z0),
				core.NewVec3(x0, y, z0),
				mat)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
