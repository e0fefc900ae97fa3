// Package models provides the polygonal data model for facet: meshes and
// polygons, shape generators, materials, textures, and model interchange.
package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/polyfacet/facet/pkg/math3d"
)

var (
	// ErrDegeneratePolygon is returned for polygons with fewer than 3
	// vertices.
	ErrDegeneratePolygon = errors.New("models: polygon needs at least 3 vertices")

	// ErrIndexOutOfRange is returned when a polygon references a vertex
	// index outside its mesh's vertex array.
	ErrIndexOutOfRange = errors.New("models: polygon vertex index out of range")
)

// Polygon is an ordered list of vertex indices into its owning mesh's
// vertex array. Polygons reference the mesh by index only; they hold no
// back-pointer to it.
type Polygon struct {
	Indices []int
}

// Poly creates a polygon from vertex indices.
func Poly(indices ...int) Polygon {
	return Polygon{Indices: indices}
}

// IsValid reports whether the polygon has enough vertices to be
// rasterized.
func (p Polygon) IsValid() bool {
	return len(p.Indices) >= 3
}

// IsQuad reports whether the polygon is a candidate for the bilinear
// quad fill fast path.
func (p Polygon) IsQuad() bool {
	return len(p.Indices) == 4
}

// Mesh is a polygonal surface: vertices in local coordinates, polygons
// indexing into them, optional per-vertex normals and texture
// coordinates, and an owned coordinate frame. Vertices stay in local
// space permanently; position, orientation and scale live in the frame.
type Mesh struct {
	Vertices []math3d.Point3
	Polygons []Polygon

	// Normals holds per-vertex outward unit normals; empty or the same
	// length as Vertices.
	Normals []math3d.UVec3

	// UVs holds per-vertex texture coordinates in [0,1]; empty or the
	// same length as Vertices.
	UVs []math3d.Vec2

	Frame math3d.CoordFrame
}

// NewMesh creates a mesh from explicit vertex and polygon lists,
// validating that every polygon has at least 3 vertices and that all
// indices are in range.
func NewMesh(vertices []math3d.Point3, polygons []Polygon) (*Mesh, error) {
	for i, p := range polygons {
		if !p.IsValid() {
			return nil, fmt.Errorf("polygon %d: %w", i, ErrDegeneratePolygon)
		}
		for _, idx := range p.Indices {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("polygon %d index %d: %w", i, idx, ErrIndexOutOfRange)
			}
		}
	}
	return &Mesh{
		Vertices: vertices,
		Polygons: polygons,
		Frame:    math3d.DefaultFrame(),
	}, nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// PolygonCount returns the number of polygons.
func (m *Mesh) PolygonCount() int {
	return len(m.Polygons)
}

// HasNormals reports whether per-vertex normals are present.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) == len(m.Vertices) && len(m.Normals) > 0
}

// HasUVs reports whether per-vertex texture coordinates are present.
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) == len(m.Vertices) && len(m.UVs) > 0
}

// Centroid returns the average of all vertex positions (local space).
func (m *Mesh) Centroid() math3d.Point3 {
	if len(m.Vertices) == 0 {
		return math3d.Origin3()
	}
	var sum math3d.Vec3
	for _, v := range m.Vertices {
		sum = sum.Add(v.Vec3())
	}
	return math3d.Origin3().Add(sum.Scale(1 / float64(len(m.Vertices))))
}

// polygonCentroid returns the average position of one polygon's vertices.
func (m *Mesh) polygonCentroid(p Polygon) math3d.Point3 {
	var sum math3d.Vec3
	for _, idx := range p.Indices {
		sum = sum.Add(m.Vertices[idx].Vec3())
	}
	return math3d.Origin3().Add(sum.Scale(1 / float64(len(p.Indices))))
}

// faceNormal returns the polygon's plane normal oriented outward relative
// to the mesh centroid, or false for a degenerate polygon.
func (m *Mesh) faceNormal(p Polygon, centroid math3d.Point3) (math3d.Vec3, bool) {
	v0 := m.Vertices[p.Indices[0]]
	e1 := m.Vertices[p.Indices[1]].Sub(v0)
	e2 := m.Vertices[p.Indices[2]].Sub(v0)

	n := e1.Cross(e2)
	if n.LenSq() == 0 {
		return math3d.Zero3(), false
	}

	// Flip inward-pointing normals.
	outward := m.polygonCentroid(p).Sub(centroid)
	if n.Dot(outward) < 0 {
		n = n.Negate()
	}
	return n, true
}

// GenerateNormals computes per-vertex unit normals by averaging the
// outward-oriented plane normals of every polygon touching each vertex.
// Vertices whose accumulated normal cancels to zero fall back to +Z
// instead of producing NaN.
func (m *Mesh) GenerateNormals() {
	accum := make([]math3d.Vec3, len(m.Vertices))
	centroid := m.Centroid()

	for _, p := range m.Polygons {
		n, ok := m.faceNormal(p, centroid)
		if !ok {
			continue
		}
		u, err := n.Unit()
		if err != nil {
			continue
		}
		for _, idx := range p.Indices {
			accum[idx] = accum[idx].Add(u.Vec3())
		}
	}

	m.Normals = make([]math3d.UVec3, len(m.Vertices))
	for i, a := range accum {
		m.Normals[i] = a.UnitOr(math3d.UnitZ())
	}
}

// GenerateTextureCoords assigns per-vertex UVs by planar projection: each
// polygon projects onto the axis plane most orthogonal to its normal, each
// vertex gets its normalized position within the polygon's bounding
// rectangle in that plane, and vertices shared between polygons receive
// the running mean of their per-polygon coordinates. All results lie in
// [0,1].
func (m *Mesh) GenerateTextureCoords() {
	m.UVs = make([]math3d.Vec2, len(m.Vertices))
	counts := make([]int, len(m.Vertices))
	centroid := m.Centroid()

	for _, p := range m.Polygons {
		n, ok := m.faceNormal(p, centroid)
		if !ok {
			continue
		}

		// Project onto the plane of the two axes orthogonal to the
		// dominant normal axis.
		ax, ay := dominantPlaneAxes(n)

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, idx := range p.Indices {
			u, v := pointAxis(m.Vertices[idx], ax), pointAxis(m.Vertices[idx], ay)
			minU, maxU = math.Min(minU, u), math.Max(maxU, u)
			minV, maxV = math.Min(minV, v), math.Max(maxV, v)
		}

		spanU, spanV := maxU-minU, maxV-minV
		for _, idx := range p.Indices {
			u, v := 0.0, 0.0
			if spanU > 0 {
				u = clamp01((pointAxis(m.Vertices[idx], ax) - minU) / spanU)
			}
			if spanV > 0 {
				v = clamp01((pointAxis(m.Vertices[idx], ay) - minV) / spanV)
			}

			// Running mean over all polygons sharing this vertex.
			c := float64(counts[idx])
			m.UVs[idx] = math3d.V2(
				(m.UVs[idx].X*c+u)/(c+1),
				(m.UVs[idx].Y*c+v)/(c+1),
			)
			counts[idx]++
		}
	}
}

// dominantPlaneAxes returns the two axis indices (0=X, 1=Y, 2=Z)
// orthogonal to the axis most aligned with n.
func dominantPlaneAxes(n math3d.Vec3) (int, int) {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ax >= ay && ax >= az:
		return 1, 2
	case ay >= ax && ay >= az:
		return 0, 2
	default:
		return 0, 1
	}
}

func pointAxis(p math3d.Point3, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Translate displaces the mesh frame's origin (global coordinates).
func (m *Mesh) Translate(v math3d.Vec3) {
	m.Frame.Translate(v)
}

// RotateX rotates the mesh frame around the world X axis.
func (m *Mesh) RotateX(angle float64) {
	m.Frame.Rotate(math3d.RotationX(angle))
}

// RotateY rotates the mesh frame around the world Y axis.
func (m *Mesh) RotateY(angle float64) {
	m.Frame.Rotate(math3d.RotationY(angle))
}

// RotateZ rotates the mesh frame around the world Z axis.
func (m *Mesh) RotateZ(angle float64) {
	m.Frame.Rotate(math3d.RotationZ(angle))
}

// RotateAroundLine rotates the mesh frame around an arbitrary world line.
// The frame origin orbits the line while the basis spins with it.
func (m *Mesh) RotateAroundLine(line math3d.Line3, angle float64) {
	tr := math3d.RotationAroundLine(line, angle)
	m.Frame.Origin = tr.ApplyToPoint(m.Frame.Origin)
	m.Frame.Rotate(math3d.RotationAxis(line.Dir, angle))
}

// ScaleBy multiplies the mesh frame's per-axis scale.
func (m *Mesh) ScaleBy(v math3d.Vec3) {
	m.Frame.ScaleBy(v)
}

// ReflectXY mirrors the mesh through its local XY plane.
func (m *Mesh) ReflectXY() { m.Frame.ReflectXY() }

// ReflectXZ mirrors the mesh through its local XZ plane.
func (m *Mesh) ReflectXZ() { m.Frame.ReflectXZ() }

// ReflectYZ mirrors the mesh through its local YZ plane.
func (m *Mesh) ReflectYZ() { m.Frame.ReflectYZ() }

// Bounds returns the local-space axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() (min, max math3d.Point3) {
	if len(m.Vertices) == 0 {
		return math3d.Origin3(), math3d.Origin3()
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min = math3d.P3(math.Min(min.X, v.X), math.Min(min.Y, v.Y), math.Min(min.Z, v.Z))
		max = math3d.P3(math.Max(max.X, v.X), math.Max(max.Y, v.Y), math.Max(max.Z, v.Z))
	}
	return min, max
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Vertices: make([]math3d.Point3, len(m.Vertices)),
		Polygons: make([]Polygon, len(m.Polygons)),
		Frame:    m.Frame,
	}
	copy(clone.Vertices, m.Vertices)
	for i, p := range m.Polygons {
		clone.Polygons[i] = Poly(append([]int(nil), p.Indices...)...)
	}
	if m.Normals != nil {
		clone.Normals = append([]math3d.UVec3(nil), m.Normals...)
	}
	if m.UVs != nil {
		clone.UVs = append([]math3d.Vec2(nil), m.UVs...)
	}
	return clone
}
