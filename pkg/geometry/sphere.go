package geometry

import (
	"fmt"
	"math"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) (*Sphere, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidRadius, radius)
	}
	if mat == nil {
		mat = material.DefaultMaterial()
	}
	return &Sphere{Center: center, Radius: radius, material: mat}, nil
}

// Intersect appends up to two hits using the geometric (tCA) formulation
func (s *Sphere) Intersect(ray core.Ray, hits []Intersection) []Intersection {
	// Vector from ray origin to sphere center, projected on the ray
	l := s.Center.Sub(ray.Origin)
	tca := l.Dot(ray.Direction)
	if tca < 0 {
		// Center is behind the ray
		return hits
	}

	// Squared distance from the center to the ray line
	d2 := l.Dot(l) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return hits
	}

	thc := math.Sqrt(r2 - d2)
	t0 := tca - thc
	t1 := tca + thc

	if t0 > 0 {
		hits = append(hits, s.hitAt(ray, t0))
	}
	if t1 > 0 && t1 != t0 {
		hits = append(hits, s.hitAt(ray, t1))
	}
	return hits
}

func (s *Sphere) hitAt(ray core.Ray, t float64) Intersection {
	point := ray.At(t)
	return Intersection{
		Point:     point,
		T:         t,
		Normal:    point.Sub(s.Center).Normalize(),
		Color:     s.material.Color,
		Primitive: s,
	}
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Sub(radius), s.Center.Add(radius))
}

// Material returns the sphere material
func (s *Sphere) Material() *material.Material {
	return s.material
}

func (s *Sphere) primitive() {}
