package geometry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
)

// Transform is an affine placement applied to geometry while a scene is built.
// Primitives are stored in world space, so the transform is baked into vertices
// before insertion and never consulted during traversal.
type Transform struct {
	m mgl64.Mat4
}

// Identity returns the transform that leaves geometry unchanged
func Identity() Transform {
	return Transform{m: mgl64.Ident4()}
}

// Translate appends a translation
func (t Transform) Translate(x, y, z float64) Transform {
	return Transform{m: mgl64.Translate3D(x, y, z).Mul4(t.m)}
}

// Scale appends a (possibly non-uniform) scale
func (t Transform) Scale(x, y, z float64) Transform {
	return Transform{m: mgl64.Scale3D(x, y, z).Mul4(t.m)}
}

// RotateX appends a rotation about the X axis, in degrees
func (t Transform) RotateX(deg float64) Transform {
	return Transform{m: mgl64.HomogRotate3DX(mgl64.DegToRad(deg)).Mul4(t.m)}
}

// RotateY appends a rotation about the Y axis, in degrees
func (t Transform) RotateY(deg float64) Transform {
	return Transform{m: mgl64.HomogRotate3DY(mgl64.DegToRad(deg)).Mul4(t.m)}
}

// RotateZ appends a rotation about the Z axis, in degrees
func (t Transform) RotateZ(deg float64) Transform {
	return Transform{m: mgl64.HomogRotate3DZ(mgl64.DegToRad(deg)).Mul4(t.m)}
}

// Compose returns the transform that applies t first and then next
func (t Transform) Compose(next Transform) Transform {
	return Transform{m: next.m.Mul4(t.m)}
}

// ApplyPoint transforms a position
func (t Transform) ApplyPoint(p core.Vec3) core.Vec3 {
	v := t.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return core.NewVec3(v[0], v[1], v[2])
}

// ApplyNormal transforms a surface normal with the inverse transpose and renormalizes it
func (t Transform) ApplyNormal(n core.Vec3) core.Vec3 {
	nm := t.m.Inv().Transpose().Mat3()
	v := nm.Mul3x1(mgl64.Vec3{n.X, n.Y, n.Z})
	return core.NewVec3(v[0], v[1], v[2]).Normalize()
}

// ApplyTriangle returns a transformed copy of tri sharing its material and UVs.
// A transform that collapses the triangle yields ErrDegenerateTriangle.
func (t Transform) ApplyTriangle(tri *Triangle) (*Triangle, error) {
	out, err := NewTriangle(t.ApplyPoint(tri.V0), t.ApplyPoint(tri.V1), t.ApplyPoint(tri.V2), tri.Material())
	if err != nil {
		return nil, err
	}
	if tri.Normals != nil {
		n := tri.Normals
		out.WithNormals(t.ApplyNormal(n[0]), t.ApplyNormal(n[1]), t.ApplyNormal(n[2]))
	}
	if tri.UVs != nil {
		uv := *tri.UVs
		out.UVs = &uv
	}
	return out, nil
}
