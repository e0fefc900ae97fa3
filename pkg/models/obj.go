package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/polyfacet/facet/pkg/math3d"
)

var (
	// ErrOBJSyntax is returned for malformed v or f lines.
	ErrOBJSyntax = errors.New("models: malformed OBJ content")

	// ErrOBJIndex is returned when a face references a vertex outside
	// the file's vertex list.
	ErrOBJIndex = errors.New("models: OBJ face index out of range")

	// ErrOBJEmpty is returned when the input contains no usable
	// geometry.
	ErrOBJEmpty = errors.New("models: OBJ contains no geometry")

	// ErrOBJLookup is returned when export fails to resolve a vertex
	// back to its deduplicated index.
	ErrOBJLookup = errors.New("models: OBJ export index lookup failed")
)

// LoadOBJ reads a Wavefront OBJ file into a mesh.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ: %w", err)
	}
	defer f.Close()
	return ReadOBJ(f)
}

// ReadOBJ parses Wavefront OBJ geometry from a reader. Only v and f
// records are consumed; vt, vn, vp, comments and grouping directives are
// skipped. Face indices are 1-based, and negative indices count back
// from the most recently read vertex. Normals and texture coordinates
// are regenerated rather than read, so round-tripping preserves geometry
// but not imported shading attributes.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	var vertices []math3d.Point3
	var polygons []Polygon

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates: %w", lineNo, ErrOBJSyntax)
			}
			var coords [3]float64
			for i := 0; i < 3; i++ {
				c, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %q: %w", lineNo, fields[i+1], ErrOBJSyntax)
				}
				coords[i] = c
			}
			vertices = append(vertices, math3d.P3(coords[0], coords[1], coords[2]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs 3 vertices: %w", lineNo, ErrOBJSyntax)
			}
			indices := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				// Face tokens may carry /vt/vn references; only the
				// leading vertex index is used.
				vertTok, _, _ := strings.Cut(tok, "/")
				raw, err := strconv.Atoi(vertTok)
				if err != nil || raw == 0 {
					return nil, fmt.Errorf("line %d: face index %q: %w", lineNo, tok, ErrOBJSyntax)
				}
				idx := raw - 1
				if raw < 0 {
					idx = len(vertices) + raw
				}
				if idx < 0 || idx >= len(vertices) {
					return nil, fmt.Errorf("line %d: face index %d of %d vertices: %w", lineNo, raw, len(vertices), ErrOBJIndex)
				}
				indices = append(indices, idx)
			}
			polygons = append(polygons, Poly(indices...))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ: %w", err)
	}

	if len(vertices) == 0 || len(polygons) == 0 {
		return nil, ErrOBJEmpty
	}

	m, err := NewMesh(vertices, polygons)
	if err != nil {
		return nil, err
	}
	m.GenerateNormals()
	m.GenerateTextureCoords()
	return m, nil
}

// SaveOBJ writes the mesh to a Wavefront OBJ file.
func SaveOBJ(m *Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create OBJ: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteOBJ(m, w); err != nil {
		return err
	}
	return w.Flush()
}

// objKey quantizes a vertex to the 4-decimal precision used by the
// exporter, so lookups match what was written.
func objKey(p math3d.Point3) string {
	return fmt.Sprintf("%.4f %.4f %.4f", p.X, p.Y, p.Z)
}

// WriteOBJ writes the mesh's local-space geometry as Wavefront OBJ.
// Coordinates are written with 4 decimal places, and vertices that
// coincide at that precision are merged into one v record.
func WriteOBJ(m *Mesh, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "# exported by facet"); err != nil {
		return fmt.Errorf("failed to write OBJ: %w", err)
	}

	index := make(map[string]int, len(m.Vertices))
	for _, v := range m.Vertices {
		key := objKey(v)
		if _, seen := index[key]; seen {
			continue
		}
		index[key] = len(index) + 1 // OBJ indices are 1-based
		if _, err := fmt.Fprintf(w, "v %s\n", key); err != nil {
			return fmt.Errorf("failed to write OBJ: %w", err)
		}
	}

	for i, p := range m.Polygons {
		line := make([]string, 0, len(p.Indices)+1)
		line = append(line, "f")
		for _, vi := range p.Indices {
			objIdx, ok := index[objKey(m.Vertices[vi])]
			if !ok {
				return fmt.Errorf("polygon %d vertex %d: %w", i, vi, ErrOBJLookup)
			}
			line = append(line, strconv.Itoa(objIdx))
		}
		if _, err := fmt.Fprintln(w, strings.Join(line, " ")); err != nil {
			return fmt.Errorf("failed to write OBJ: %w", err)
		}
	}
	return nil
}
