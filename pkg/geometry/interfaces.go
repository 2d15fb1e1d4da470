package geometry

import (
	"errors"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/material"
)

var (
	ErrDegenerateTriangle = errors.New("geometry: degenerate triangle")
	ErrInvalidRadius      = errors.New("geometry: sphere radius must be positive")
)

// Primitive is the capability set shared by every renderable shape.
//
// The set of implementations is closed: only Sphere and Triangle satisfy it.
type Primitive interface {
	// Intersect appends every hit of ray against the primitive to hits and
	// returns the extended slice. A miss leaves hits untouched.
	Intersect(ray core.Ray, hits []Intersection) []Intersection

	// BoundingBox returns the axis-aligned bounds of the primitive
	BoundingBox() core.AABB

	// Material returns the shading material of the primitive
	Material() *material.Material

	primitive()
}

// Intersection describes a single ray/primitive hit. Records are transient and
// only live for the duration of one query and the shading calls it spawns.
type Intersection struct {
	Point     core.Vec3  // Hit point in world space
	T         float64    // Signed distance along the ray
	Normal    core.Vec3  // Unit surface normal
	Color     core.Color // Material color or texture sample at the hit
	Primitive Primitive  // Owning primitive
}

// Material is a shortcut for the owning primitive's material
func (h Intersection) Material() *material.Material {
	return h.Primitive.Material()
}
