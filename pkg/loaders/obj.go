package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/geometry"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/log"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/material"
)

var logger = log.New("loaders")

// objReader parses Wavefront OBJ geometry and its MTL material libraries
type objReader struct {
	mesh *Mesh

	materials map[string]*material.Material
	current   *material.Material

	vertices []core.Vec3
	normals  []core.Vec3
	uvs      []core.Vec2

	// Frames describing the include chain (mtllib) for error messages
	errStack []string
}

// faceVertex holds resolved list offsets for one face corner; -1 means absent
type faceVertex struct {
	v, vt, vn int
}

// LoadOBJ reads a Wavefront OBJ file. Material libraries and textures are
// resolved relative to the OBJ file.
func LoadOBJ(filename string) (*Mesh, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer f.Close()

	start := time.Now()
	r := newOBJReader(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if err := r.parse(f, filename); err != nil {
		return nil, err
	}

	logger.Infof("parsed %s in %d ms: %d triangles, %d degenerate faces skipped",
		filename, time.Since(start).Milliseconds(), len(r.mesh.Triangles), r.mesh.Skipped)
	return r.mesh, nil
}

// ReadOBJ parses OBJ data from src. name labels the mesh and error messages;
// relative mtllib paths resolve against its directory.
func ReadOBJ(src io.Reader, name string) (*Mesh, error) {
	r := newOBJReader(name)
	if err := r.parse(src, name); err != nil {
		return nil, err
	}
	return r.mesh, nil
}

func newOBJReader(name string) *objReader {
	return &objReader{
		mesh:      &Mesh{Name: name},
		materials: make(map[string]*material.Material),
	}
}

// emitError formats an error tagged with the file position and include chain
func (r *objReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	return errors.New(strings.TrimRight(
		fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n")),
		"\n",
	))
}

func (r *objReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

func (r *objReader) popFrame() {
	r.errStack = r.errStack[1:]
}

func (r *objReader) parse(src io.Reader, path string) error {
	lineNum := 0
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		switch tokens[0] {
		case "v", "vn":
			v, err := parseVec3(tokens)
			if err != nil {
				return r.emitError(path, lineNum, "%s", err)
			}
			if tokens[0] == "v" {
				r.vertices = append(r.vertices, v)
			} else {
				r.normals = append(r.normals, v)
			}
		case "vt":
			uv, err := parseVec2(tokens)
			if err != nil {
				return r.emitError(path, lineNum, "%s", err)
			}
			r.uvs = append(r.uvs, uv)
		case "f":
			if err := r.parseFace(tokens); err != nil {
				return r.emitError(path, lineNum, "%s", err)
			}
		case "mtllib":
			if len(tokens) != 2 {
				return r.emitError(path, lineNum, "unsupported syntax for 'mtllib'; expected 1 argument; got %d", len(tokens)-1)
			}
			libPath := resolvePath(path, tokens[1])

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [mtllib]", path, lineNum))
			f, err := os.Open(libPath)
			if err != nil {
				return r.emitError(path, lineNum, "%s", err)
			}
			err = r.parseMaterials(f, libPath)
			f.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "usemtl":
			if len(tokens) != 2 {
				return r.emitError(path, lineNum, "unsupported syntax for 'usemtl'; expected 1 argument; got %d", len(tokens)-1)
			}
			mat, exists := r.materials[tokens[1]]
			if !exists {
				return r.emitError(path, lineNum, "undefined material with name '%s'", tokens[1])
			}
			r.current = mat
		case "o", "g", "s":
			// Grouping and smoothing groups do not affect a flat triangle list
		default:
			logger.Debugf("%s:%d: ignoring unsupported statement '%s'", path, lineNum, tokens[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(path, lineNum, "%s", err)
	}
	return nil
}

// parseFace fan-triangulates a polygon. Each corner is one of v, v/vt, v//vn
// or v/vt/vn with 1-based or negative (relative) indices.
func (r *objReader) parseFace(tokens []string) error {
	if len(tokens) < 4 {
		return fmt.Errorf("unsupported syntax for 'f'; expected at least 3 vertices; got %d", len(tokens)-1)
	}

	corners := make([]faceVertex, len(tokens)-1)
	for i, token := range tokens[1:] {
		corner, err := r.parseFaceVertex(token)
		if err != nil {
			return fmt.Errorf("face vertex %d: %w", i, err)
		}
		corners[i] = corner
	}

	if r.current == nil {
		r.current = material.DefaultMaterial()
	}

	for i := 1; i+1 < len(corners); i++ {
		r.addTriangle(corners[0], corners[i], corners[i+1])
	}
	return nil
}

func (r *objReader) parseFaceVertex(token string) (faceVertex, error) {
	parts := strings.Split(token, "/")
	if len(parts) > 3 || parts[0] == "" {
		return faceVertex{}, fmt.Errorf("malformed face vertex '%s'", token)
	}

	corner := faceVertex{v: -1, vt: -1, vn: -1}
	var err error
	if corner.v, err = selectFaceCoordIndex(parts[0], len(r.vertices)); err != nil {
		return faceVertex{}, fmt.Errorf("vertex index: %w", err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if corner.vt, err = selectFaceCoordIndex(parts[1], len(r.uvs)); err != nil {
			return faceVertex{}, fmt.Errorf("texture coordinate index: %w", err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if corner.vn, err = selectFaceCoordIndex(parts[2], len(r.normals)); err != nil {
			return faceVertex{}, fmt.Errorf("normal index: %w", err)
		}
	}
	return corner, nil
}

func (r *objReader) addTriangle(a, b, c faceVertex) {
	tri, err := geometry.NewTriangle(r.vertices[a.v], r.vertices[b.v], r.vertices[c.v], r.current)
	if err != nil {
		r.mesh.Skipped++
		logger.Warningf("%s: skipping degenerate face", r.mesh.Name)
		return
	}

	if a.vn >= 0 && b.vn >= 0 && c.vn >= 0 {
		tri.WithNormals(r.normals[a.vn], r.normals[b.vn], r.normals[c.vn])
	}
	if a.vt >= 0 && b.vt >= 0 && c.vt >= 0 {
		tri.WithUVs(r.uvs[a.vt], r.uvs[b.vt], r.uvs[c.vt])
	}
	r.mesh.Triangles = append(r.mesh.Triangles, tri)
}

// parseMaterials reads an MTL library into the material table
func (r *objReader) parseMaterials(src io.Reader, path string) error {
	lineNum := 0
	var mat *material.Material

	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		if tokens[0] == "newmtl" {
			if len(tokens) != 2 {
				return r.emitError(path, lineNum, "unsupported syntax for 'newmtl'; expected 1 argument; got %d", len(tokens)-1)
			}
			if err := validateMaterial(mat); err != nil {
				return r.emitError(path, lineNum, "%s", err)
			}
			if _, exists := r.materials[tokens[1]]; exists {
				return r.emitError(path, lineNum, "material '%s' already defined", tokens[1])
			}
			mat = material.DefaultMaterial()
			mat.Name = tokens[1]
			r.materials[mat.Name] = mat
			continue
		}

		if mat == nil {
			return r.emitError(path, lineNum, "got '%s' without a 'newmtl'", tokens[0])
		}

		var err error
		switch tokens[0] {
		case "Kd":
			var v core.Vec3
			if v, err = parseVec3(tokens); err == nil {
				mat.Color = core.NewColor(v.X, v.Y, v.Z)
			}
		case "Ka", "Ks":
			var v core.Vec3
			if v, err = parseVec3(tokens); err == nil {
				coefficient := (v.X + v.Y + v.Z) / 3
				if tokens[0] == "Ka" {
					mat.Ambient = coefficient
				} else {
					mat.Specular = coefficient
				}
			}
		case "Ns":
			mat.Shininess, err = parseFloat(tokens)
		case "Ni":
			mat.RefractionIndex, err = parseFloat(tokens)
		case "Pm":
			mat.Reflectivity, err = parseFloat(tokens)
		case "d":
			var d float64
			if d, err = parseFloat(tokens); err == nil {
				mat.Transparency = 1 - d
			}
		case "Tr":
			mat.Transparency, err = parseFloat(tokens)
		case "map_Kd":
			if len(tokens) < 2 {
				err = fmt.Errorf("unsupported syntax for 'map_Kd'; expected a file name")
				break
			}
			texPath := resolvePath(path, tokens[len(tokens)-1])
			tex, texErr := LoadTexture(texPath)
			if texErr != nil {
				if errors.Is(texErr, os.ErrNotExist) {
					logger.Warningf("ignoring missing texture %s", texPath)
					break
				}
				err = texErr
				break
			}
			mat.Texture = tex
		default:
			logger.Debugf("%s:%d: ignoring unsupported material statement '%s'", path, lineNum, tokens[0])
		}

		if err != nil {
			return r.emitError(path, lineNum, "%s", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(path, lineNum, "%s", err)
	}
	if err := validateMaterial(mat); err != nil {
		return r.emitError(path, lineNum, "%s", err)
	}
	return nil
}

func validateMaterial(mat *material.Material) error {
	if mat == nil {
		return nil
	}
	// MTL files commonly leave Ni at 0 for opaque materials
	if mat.RefractionIndex < 1 && mat.Transparency == 0 {
		mat.RefractionIndex = 1
	}
	return mat.Validate()
}

// resolvePath interprets ref relative to the directory of the referencing file
func resolvePath(from, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(from), ref)
}

// selectFaceCoordIndex converts a 1-based (or negative, end-relative) OBJ index
// into an offset into a list of the given length.
func selectFaceCoordIndex(indexToken string, listLen int) (int, error) {
	index, err := strconv.Atoi(indexToken)
	if err != nil {
		return -1, err
	}

	offset := index - 1
	if index < 0 {
		offset = listLen + index
	}
	if index == 0 || offset < 0 || offset >= listLen {
		return -1, fmt.Errorf("index %d out of bounds", index)
	}
	return offset, nil
}

func parseFloat(tokens []string) (float64, error) {
	if len(tokens) < 2 {
		return 0, fmt.Errorf("unsupported syntax for '%s'; expected 1 argument; got %d", tokens[0], len(tokens)-1)
	}
	return strconv.ParseFloat(tokens[1], 64)
}

func parseVec2(tokens []string) (core.Vec2, error) {
	if len(tokens) < 3 {
		return core.Vec2{}, fmt.Errorf("unsupported syntax for '%s'; expected 2 arguments; got %d", tokens[0], len(tokens)-1)
	}
	u, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	v, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	return core.NewVec2(u, v), nil
}

func parseVec3(tokens []string) (core.Vec3, error) {
	if len(tokens) < 4 {
		return core.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", tokens[0], len(tokens)-1)
	}
	var xyz [3]float64
	for i := range xyz {
		val, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		xyz[i] = val
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}
