package scene

import (
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/lights"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/material"
)

// NewCornellScene creates a Cornell box built from triangles with a mirror
// sphere and a glass sphere, lit by a point light under the ceiling
func NewCornellScene() (*Scene, *Camera, error) {
	camera, err := NewCamera(CameraConfig{
		Position: core.NewVec3(0, 0, 3.4),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      40,
		Near:     0.001,
		Far:      100,
	})
	if err != nil {
		return nil, nil, err
	}

	s := New(core.Black)
	s.Ambient = 0.15

	white := material.NewSolid(core.NewColor(0.73, 0.73, 0.73))
	red := material.NewSolid(core.NewColor(0.65, 0.05, 0.05))
	green := material.NewSolid(core.NewColor(0.12, 0.45, 0.15))

	// Corners of the box spanning [-1, 1] on every axis, open toward +Z
	const b = 1.0
	var (
		lbf = core.NewVec3(-b, -b, b)
		rbf = core.NewVec3(b, -b, b)
		rbb = core.NewVec3(b, -b, -b)
		lbb = core.NewVec3(-b, -b, -b)
		ltf = core.NewVec3(-b, b, b)
		rtf = core.NewVec3(b, b, b)
		rtb = core.NewVec3(b, b, -b)
		ltb = core.NewVec3(-b, b, -b)
	)

	walls := []struct {
		a, b, c, d core.Vec3
		mat        *material.Material
	}{
		{lbf, rbf, rbb, lbb, white}, // Floor
		{ltf, ltb, rtb, rtf, white}, // Ceiling
		{lbb, rbb, rtb, ltb, white}, // Back wall
		{lbf, lbb, ltb, ltf, red},   // Left wall
		{rbf, rtf, rtb, rbb, green}, // Right wall
	}
	for _, w := range walls {
		if err := addQuad(s, w.a, w.b, w.c, w.d, w.mat); err != nil {
			return nil, nil, err
		}
	}

	mirror := material.NewSolid(core.NewColor(0.9, 0.9, 0.9))
	mirror.Reflectivity = 0.9
	mirror.RefractionIndex = mirrorIOR
	mirror.Specular = 0.8
	mirror.Shininess = 128

	glass := material.NewSolid(core.NewColor(1, 1, 1))
	glass.Transparency = 0.9
	glass.RefractionIndex = 1.5
	glass.Reflectivity = 0.1
	glass.Specular = 0.9
	glass.Shininess = 256

	mirrorSphere, err := geometry.NewSphere(core.NewVec3(-0.45, -0.65, -0.35), 0.35, mirror)
	if err != nil {
		return nil, nil, err
	}
	glassSphere, err := geometry.NewSphere(core.NewVec3(0.45, -0.65, 0.3), 0.35, glass)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Add(mirrorSphere, glassSphere); err != nil {
		return nil, nil, err
	}

	light, err := lights.NewPointLight(core.NewVec3(0, 0.9, 0), core.White, 1.6)
	if err != nil {
		return nil, nil, err
	}
	if err := s.AddLight(light); err != nil {
		return nil, nil, err
	}

	s.Freeze()
	return s, camera, nil
}
