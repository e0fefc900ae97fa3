package models

import (
	"math"
	"testing"
)

func TestPlatonicSolids(t *testing.T) {
	tests := []struct {
		name      string
		mesh      *Mesh
		wantVerts int
		wantPolys int
		faceSize  int
	}{
		{"tetrahedron", NewTetrahedron(), 4, 4, 3},
		{"hexahedron", NewHexahedron(), 8, 6, 4},
		{"octahedron", NewOctahedron(), 6, 8, 3},
		{"icosahedron", NewIcosahedron(), 12, 20, 3},
		{"dodecahedron", NewDodecahedron(), 20, 12, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.mesh
			if got := m.VertexCount(); got != tc.wantVerts {
				t.Errorf("vertices = %d, want %d", got, tc.wantVerts)
			}
			if got := m.PolygonCount(); got != tc.wantPolys {
				t.Errorf("polygons = %d, want %d", got, tc.wantPolys)
			}
			for i, p := range m.Polygons {
				if len(p.Indices) != tc.faceSize {
					t.Errorf("polygon %d has %d vertices, want %d", i, len(p.Indices), tc.faceSize)
				}
			}

			// All vertices lie on the unit circumsphere.
			for i, v := range m.Vertices {
				if r := v.Vec3().Len(); math.Abs(r-1) > 1e-12 {
					t.Errorf("vertex %d radius = %v", i, r)
				}
			}

			if !m.HasNormals() {
				t.Error("missing normals")
			}
			if !m.HasUVs() {
				t.Error("missing texture coordinates")
			}

			// Euler's formula V - E + F = 2; each edge is shared by
			// exactly two faces.
			edges := tc.wantPolys * tc.faceSize / 2
			if tc.wantVerts-edges+tc.wantPolys != 2 {
				t.Errorf("euler characteristic violated: V=%d E=%d F=%d", tc.wantVerts, edges, tc.wantPolys)
			}
		})
	}
}

func TestSolidEdgesUniform(t *testing.T) {
	// Every edge of a platonic solid has the same length.
	for name, m := range map[string]*Mesh{
		"tetrahedron":  NewTetrahedron(),
		"hexahedron":   NewHexahedron(),
		"octahedron":   NewOctahedron(),
		"icosahedron":  NewIcosahedron(),
		"dodecahedron": NewDodecahedron(),
	} {
		t.Run(name, func(t *testing.T) {
			ref := -1.0
			for _, p := range m.Polygons {
				n := len(p.Indices)
				for i := 0; i < n; i++ {
					a := m.Vertices[p.Indices[i]]
					b := m.Vertices[p.Indices[(i+1)%n]]
					l := b.Sub(a).Len()
					if ref < 0 {
						ref = l
						continue
					}
					if math.Abs(l-ref) > 1e-9 {
						t.Fatalf("edge length %v differs from %v", l, ref)
					}
				}
			}
		})
	}
}
