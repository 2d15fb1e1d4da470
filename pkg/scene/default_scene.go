package scene

import (
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/lights"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/material"
)

// NewDefaultScene creates an opaque red unit sphere at the origin lit by a single
// white point light, on a black background
func NewDefaultScene() (*Scene, *Camera, error) {
	camera, err := NewCamera(DefaultCameraConfig())
	if err != nil {
		return nil, nil, err
	}

	s := New(core.Black)

	red := material.NewSolid(core.NewColor(0.9, 0.1, 0.1))
	red.Name = "red"
	sphere, err := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, red)
	if err != nil {
		return nil, nil, err
	}

	light, err := lights.NewPointLight(core.NewVec3(3, 4, 5), core.White, 3)
	if err != nil {
		return nil, nil, err
	}

	if err := s.Add(sphere); err != nil {
		return nil, nil, err
	}
	if err := s.AddLight(light); err != nil {
		return nil, nil, err
	}

	s.Freeze()
	return s, camera, nil
}

// addQuad inserts the planar quad a-b-c-d as two triangles
func addQuad(s *Scene, a, b, c, d core.Vec3, mat *material.Material) error {
	t1, err := geometry.NewTriangle(a, b, c, mat)
	if err != nil {
		return err
	}
	t2, err := geometry.NewTriangle(a, c, d, mat)
	if err != nil {
		return err
	}
	return s.Add(t1, t2)
}
