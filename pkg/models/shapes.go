package models

import (
	"math"

	"github.com/polyfacet/facet/pkg/math3d"
)

// phi is the golden ratio, used by the icosahedron and dodecahedron
// constructions.
var phi = (1 + math.Sqrt(5)) / 2

// newSolid builds a platonic solid mesh from raw vertex positions,
// normalizing every vertex onto the unit circumsphere and generating
// normals and texture coordinates. The constructions below are the
// standard symmetric coordinate sets, so normalization cannot fail and
// polygon indices are always in range.
func newSolid(raw []math3d.Vec3, polygons []Polygon) *Mesh {
	vertices := make([]math3d.Point3, len(raw))
	for i, v := range raw {
		u, err := v.Unit()
		if err != nil {
			panic("models: solid construction produced a zero vertex")
		}
		vertices[i] = math3d.Origin3().Add(u.Vec3())
	}
	m, err := NewMesh(vertices, polygons)
	if err != nil {
		panic("models: solid construction produced invalid polygons: " + err.Error())
	}
	m.GenerateNormals()
	m.GenerateTextureCoords()
	return m
}

// NewTetrahedron creates a regular tetrahedron inscribed in the unit
// sphere: 4 vertices, 4 triangular faces.
func NewTetrahedron() *Mesh {
	verts := []math3d.Vec3{
		math3d.V3(1, 1, 1),
		math3d.V3(1, -1, -1),
		math3d.V3(-1, 1, -1),
		math3d.V3(-1, -1, 1),
	}
	faces := []Polygon{
		Poly(0, 1, 2),
		Poly(0, 3, 1),
		Poly(0, 2, 3),
		Poly(1, 3, 2),
	}
	return newSolid(verts, faces)
}

// NewHexahedron creates a cube inscribed in the unit sphere: 8 vertices,
// 6 quadrilateral faces.
func NewHexahedron() *Mesh {
	verts := []math3d.Vec3{
		math3d.V3(-1, -1, -1),
		math3d.V3(1, -1, -1),
		math3d.V3(1, 1, -1),
		math3d.V3(-1, 1, -1),
		math3d.V3(-1, -1, 1),
		math3d.V3(1, -1, 1),
		math3d.V3(1, 1, 1),
		math3d.V3(-1, 1, 1),
	}
	faces := []Polygon{
		Poly(0, 1, 2, 3), // back
		Poly(5, 4, 7, 6), // front
		Poly(4, 0, 3, 7), // left
		Poly(1, 5, 6, 2), // right
		Poly(3, 2, 6, 7), // top
		Poly(4, 5, 1, 0), // bottom
	}
	return newSolid(verts, faces)
}

// NewOctahedron creates a regular octahedron inscribed in the unit
// sphere: 6 vertices, 8 triangular faces.
func NewOctahedron() *Mesh {
	verts := []math3d.Vec3{
		math3d.V3(1, 0, 0),
		math3d.V3(-1, 0, 0),
		math3d.V3(0, 1, 0),
		math3d.V3(0, -1, 0),
		math3d.V3(0, 0, 1),
		math3d.V3(0, 0, -1),
	}
	faces := []Polygon{
		Poly(0, 2, 4),
		Poly(2, 1, 4),
		Poly(1, 3, 4),
		Poly(3, 0, 4),
		Poly(2, 0, 5),
		Poly(1, 2, 5),
		Poly(3, 1, 5),
		Poly(0, 3, 5),
	}
	return newSolid(verts, faces)
}

// NewIcosahedron creates a regular icosahedron inscribed in the unit
// sphere: 12 vertices, 20 triangular faces.
func NewIcosahedron() *Mesh {
	verts := []math3d.Vec3{
		math3d.V3(-1, phi, 0),
		math3d.V3(1, phi, 0),
		math3d.V3(-1, -phi, 0),
		math3d.V3(1, -phi, 0),
		math3d.V3(0, -1, phi),
		math3d.V3(0, 1, phi),
		math3d.V3(0, -1, -phi),
		math3d.V3(0, 1, -phi),
		math3d.V3(phi, 0, -1),
		math3d.V3(phi, 0, 1),
		math3d.V3(-phi, 0, -1),
		math3d.V3(-phi, 0, 1),
	}
	faces := []Polygon{
		Poly(0, 11, 5), Poly(0, 5, 1), Poly(0, 1, 7), Poly(0, 7, 10), Poly(0, 10, 11),
		Poly(1, 5, 9), Poly(5, 11, 4), Poly(11, 10, 2), Poly(10, 7, 6), Poly(7, 1, 8),
		Poly(3, 9, 4), Poly(3, 4, 2), Poly(3, 2, 6), Poly(3, 6, 8), Poly(3, 8, 9),
		Poly(4, 9, 5), Poly(2, 4, 11), Poly(6, 2, 10), Poly(8, 6, 7), Poly(9, 8, 1),
	}
	return newSolid(verts, faces)
}

// NewDodecahedron creates a regular dodecahedron inscribed in the unit
// sphere: 20 vertices, 12 pentagonal faces.
func NewDodecahedron() *Mesh {
	b := 1 / phi
	verts := []math3d.Vec3{
		math3d.V3(1, 1, 1),    // 0
		math3d.V3(1, 1, -1),   // 1
		math3d.V3(1, -1, 1),   // 2
		math3d.V3(1, -1, -1),  // 3
		math3d.V3(-1, 1, 1),   // 4
		math3d.V3(-1, 1, -1),  // 5
		math3d.V3(-1, -1, 1),  // 6
		math3d.V3(-1, -1, -1), // 7
		math3d.V3(0, b, phi),  // 8
		math3d.V3(0, b, -phi), // 9
		math3d.V3(0, -b, phi), // 10
		math3d.V3(0, -b, -phi), // 11
		math3d.V3(b, phi, 0),  // 12
		math3d.V3(b, -phi, 0), // 13
		math3d.V3(-b, phi, 0), // 14
		math3d.V3(-b, -phi, 0), // 15
		math3d.V3(phi, 0, b),  // 16
		math3d.V3(phi, 0, -b), // 17
		math3d.V3(-phi, 0, b), // 18
		math3d.V3(-phi, 0, -b), // 19
	}
	faces := []Polygon{
		Poly(0, 8, 10, 2, 16),
		Poly(0, 16, 17, 1, 12),
		Poly(0, 12, 14, 4, 8),
		Poly(1, 17, 3, 11, 9),
		Poly(1, 9, 5, 14, 12),
		Poly(2, 10, 6, 15, 13),
		Poly(2, 13, 3, 17, 16),
		Poly(3, 13, 15, 7, 11),
		Poly(4, 14, 5, 19, 18),
		Poly(4, 18, 6, 10, 8),
		Poly(5, 9, 11, 7, 19),
		Poly(6, 18, 19, 7, 15),
	}
	return newSolid(verts, faces)
}
