package loaders

import (
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
)

// Mesh is a named list of world-space triangles produced by a model reader
type Mesh struct {
	Name      string
	Triangles []*geometry.Triangle
	Skipped   int // Faces dropped because they were degenerate
}

// Primitives returns the triangles as scene primitives in file order
func (m *Mesh) Primitives() []geometry.Primitive {
	primitives := make([]geometry.Primitive, len(m.Triangles))
	for i, tri := range m.Triangles {
		primitives[i] = tri
	}
	return primitives
}

// Transform returns a copy of the mesh with every triangle placed by t.
// Triangles that the transform collapses are dropped and counted as skipped.
func (m *Mesh) Transform(t geometry.Transform) *Mesh {
	out := &Mesh{Name: m.Name, Skipped: m.Skipped, Triangles: make([]*geometry.Triangle, 0, len(m.Triangles))}
	for _, tri := range m.Triangles {
		placed, err := t.ApplyTriangle(tri)
		if err != nil {
			out.Skipped++
			continue
		}
		out.Triangles = append(out.Triangles, placed)
	}
	return out
}
