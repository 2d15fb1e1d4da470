package loaders

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/material"
)

// LoadGLTF reads every triangle primitive of a glTF or GLB file.
// Materials carry the PBR base color factor; textures are not read.
func LoadGLTF(filename string) (*Mesh, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := &Mesh{Name: strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))}
	materials := make(map[int]*material.Material)

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if err := readPrimitive(doc, prim, mesh, materials); err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
		}
	}

	logger.Infof("loaded %s: %d triangles, %d degenerate faces skipped", filename, len(mesh.Triangles), mesh.Skipped)
	return mesh, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh, materials map[int]*material.Material) error {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		// Lines and points have no surface
		return nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	positions, err := readVec3Accessor(doc, posIdx)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals []core.Vec3
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = readVec3Accessor(doc, idx); err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs []core.Vec2
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = readVec2Accessor(doc, idx); err != nil {
			return fmt.Errorf("read uvs: %w", err)
		}
	}

	var indices []int
	if prim.Indices != nil {
		if indices, err = readIndices(doc, *prim.Indices); err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}

	mat := primitiveMaterial(doc, prim, materials)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a >= len(positions) || b >= len(positions) || c >= len(positions) {
			return fmt.Errorf("index out of range at face %d", i/3)
		}

		tri, err := geometry.NewTriangle(positions[a], positions[b], positions[c], mat)
		if err != nil {
			mesh.Skipped++
			continue
		}
		if len(normals) == len(positions) {
			tri.WithNormals(normals[a], normals[b], normals[c])
		}
		if len(uvs) == len(positions) {
			tri.WithUVs(uvs[a], uvs[b], uvs[c])
		}
		mesh.Triangles = append(mesh.Triangles, tri)
	}
	return nil
}

// primitiveMaterial resolves (and caches) the material referenced by prim
func primitiveMaterial(doc *gltf.Document, prim *gltf.Primitive, cache map[int]*material.Material) *material.Material {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return material.DefaultMaterial()
	}
	if mat, ok := cache[*prim.Material]; ok {
		return mat
	}

	src := doc.Materials[*prim.Material]
	mat := material.DefaultMaterial()
	mat.Name = src.Name
	if pbr := src.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		f := pbr.BaseColorFactor
		mat.Color = core.NewColor(f[0], f[1], f[2])
		if f[3] < 1 {
			mat.Transparency = 1 - f[3]
		}
	}

	cache[*prim.Material] = mat
	return mat
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}

	data, start, stride, err := accessorView(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]core.Vec3, accessor.Count)
	for i := range result {
		offset := start + i*stride
		result[i] = core.NewVec3(
			readFloat32(data[offset:]),
			readFloat32(data[offset+4:]),
			readFloat32(data[offset+8:]),
		)
	}
	return result, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC2, got %v/%v", accessor.Type, accessor.ComponentType)
	}

	data, start, stride, err := accessorView(doc, accessor, 8)
	if err != nil {
		return nil, err
	}

	result := make([]core.Vec2, accessor.Count)
	for i := range result {
		offset := start + i*stride
		// glTF puts V=0 at the top of the image; textures here sample V=0 at the bottom
		result[i] = core.NewVec2(readFloat32(data[offset:]), 1-readFloat32(data[offset+4:]))
	}
	return result, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index component type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorView(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		offset := start + i*stride
		switch size {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return result, nil
}

// accessorView returns the buffer bytes, the first element offset and the element
// stride for accessor, checking that every element lies inside the buffer.
func accessorView(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	view := doc.BufferViews[*accessor.BufferView]
	data := doc.Buffers[view.Buffer].Data
	if data == nil {
		return nil, 0, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	start := view.ByteOffset + accessor.ByteOffset
	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if accessor.Count > 0 && start+(accessor.Count-1)*stride+elemSize > len(data) {
		return nil, 0, 0, fmt.Errorf("accessor reads past the end of buffer %d", view.Buffer)
	}
	return data, start, stride, nil
}

func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
