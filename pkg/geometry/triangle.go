package geometry

import (
	"math"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/material"
)

const (
	// parallelEpsilon bounds the determinant below which the ray lies in the triangle plane
	parallelEpsilon = 1e-9
	// edgeEpsilon widens the barycentric test so hits on shared edges never fall through
	edgeEpsilon = 1e-7
	// minHitDistance rejects hits at or behind the ray origin
	minHitDistance = 1e-9
	// degenerateArea2 is the squared doubled-area below which vertices count as collinear
	degenerateArea2 = 1e-24
)

// Triangle represents a single triangle defined by three vertices.
//
// Normals and UVs are optional per-vertex attributes; when absent the flat face
// normal and the material base color are used.
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	Normals    *[3]core.Vec3
	UVs        *[3]core.Vec2
	material   *material.Material
	normal     core.Vec3 // Cached flat normal
	bbox       core.AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat *material.Material) (*Triangle, error) {
	faceNormal := v1.Sub(v0).Cross(v2.Sub(v0))
	if faceNormal.Norm2() < degenerateArea2 {
		return nil, ErrDegenerateTriangle
	}
	if mat == nil {
		mat = material.DefaultMaterial()
	}

	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		material: mat,
		normal:   faceNormal.Normalize(),
		bbox:     core.NewAABBFromPoints(v0, v1, v2),
	}, nil
}

// WithNormals attaches per-vertex normals used for smooth shading
func (t *Triangle) WithNormals(n0, n1, n2 core.Vec3) *Triangle {
	t.Normals = &[3]core.Vec3{n0.Normalize(), n1.Normalize(), n2.Normalize()}
	return t
}

// WithUVs attaches per-vertex texture coordinates
func (t *Triangle) WithUVs(uv0, uv1, uv2 core.Vec2) *Triangle {
	t.UVs = &[3]core.Vec2{uv0, uv1, uv2}
	return t
}

// Barycentric runs the Möller–Trumbore test and returns the barycentric weights
// (w, v, u) of (V0, V1, V2) together with the hit distance.
//
// With e1 = V1-V0 and e2 = V2-V0 the test uses P = D × e1 and det = e2·P, so u is
// the weight of V2 and v the weight of V1.
func (t *Triangle) Barycentric(ray core.Ray) (w, v, u, dist float64, ok bool) {
	e1 := t.V1.Sub(t.V0)
	e2 := t.V2.Sub(t.V0)

	p := ray.Direction.Cross(e1)
	det := e2.Dot(p)
	if math.Abs(det) < parallelEpsilon {
		return 0, 0, 0, 0, false
	}
	invDet := 1.0 / det

	s := ray.Origin.Sub(t.V0)
	u = s.Dot(p) * invDet
	if u < -edgeEpsilon || u > 1+edgeEpsilon {
		return 0, 0, 0, 0, false
	}

	q := s.Cross(e2)
	v = ray.Direction.Dot(q) * invDet
	if v < -edgeEpsilon || u+v > 1+edgeEpsilon {
		return 0, 0, 0, 0, false
	}

	dist = e1.Dot(q) * invDet
	if dist <= minHitDistance {
		return 0, 0, 0, 0, false
	}

	return 1 - u - v, v, u, dist, true
}

// Intersect appends the hit, if any, using the Möller–Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray, hits []Intersection) []Intersection {
	w, v, u, dist, ok := t.Barycentric(ray)
	if !ok {
		return hits
	}

	normal := t.normal
	if t.Normals != nil {
		n := t.Normals
		normal = n[0].Mul(w).Add(n[1].Mul(v)).Add(n[2].Mul(u)).Normalize()
	}

	color := t.material.Color
	if t.UVs != nil && t.material.HasTexture() {
		uv := t.UVs
		color = t.material.ColorAt(core.Vec2{
			X: uv[0].X*w + uv[1].X*v + uv[2].X*u,
			Y: uv[0].Y*w + uv[1].Y*v + uv[2].Y*u,
		})
	}

	return append(hits, Intersection{
		Point:     ray.At(dist),
		T:         dist,
		Normal:    normal,
		Color:     color,
		Primitive: t,
	})
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Material returns the triangle material
func (t *Triangle) Material() *material.Material {
	return t.material
}

// FaceNormal returns the triangle's flat normal vector
func (t *Triangle) FaceNormal() core.Vec3 {
	return t.normal
}

func (t *Triangle) primitive() {}
