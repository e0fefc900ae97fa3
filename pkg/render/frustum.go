package render

import (
	"math"

	"github.com/polyfacet/facet/pkg/math3d"
)

// clipPlane is a half-space Ax + By + Cz + D >= 0; frustum planes keep
// their normals pointing inward.
type clipPlane struct {
	Normal math3d.Vec3
	D      float64
}

// distanceToPoint returns the signed distance from the plane to a point.
// Positive = inside (same side as normal).
func (p clipPlane) distanceToPoint(point math3d.Point3) float64 {
	return p.Normal.X*point.X + p.Normal.Y*point.Y + p.Normal.Z*point.Z + p.D
}

// Frustum is the set of 6 inward-facing planes bounding the visible
// volume, extracted from a combined world-to-clip transform.
type Frustum struct {
	planes [6]clipPlane
}

// ExtractFrustum derives the frustum planes from a view-projection
// transform using the Gribb/Hartmann method. With the row-vector
// convention the clip coordinates of a point are [p 1] times the matrix,
// so each plane is a sum or difference of matrix columns. The depth
// planes follow the near=+1/far=-1 NDC convention.
func ExtractFrustum(m math3d.Transform3D) Frustum {
	// Column c lives at m[c], m[4+c], m[8+c], m[12+c].
	col := func(c int, sign float64) clipPlane {
		return clipPlane{
			Normal: math3d.V3(m[3]+sign*m[c], m[7]+sign*m[4+c], m[11]+sign*m[8+c]),
			D:      m[15] + sign*m[12+c],
		}
	}

	f := Frustum{planes: [6]clipPlane{
		col(0, 1),  // left:   w + x >= 0
		col(0, -1), // right:  w - x >= 0
		col(1, 1),  // bottom: w + y >= 0
		col(1, -1), // top:    w - y >= 0
		col(2, -1), // near:   w - z >= 0 (near plane is NDC z = +1)
		col(2, 1),  // far:    w + z >= 0
	}}

	for i := range f.planes {
		l := f.planes[i].Normal.Len()
		if l > 0 {
			f.planes[i].Normal = f.planes[i].Normal.Scale(1 / l)
			f.planes[i].D /= l
		}
	}
	return f
}

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min math3d.Point3
	Max math3d.Point3
}

// TransformAABB bounds the 8 transformed corners of a box, yielding the
// world-space AABB of a local-space box under an affine transform.
func TransformAABB(b AABB, m math3d.Transform3D) AABB {
	corners := [8]math3d.Point3{
		math3d.P3(b.Min.X, b.Min.Y, b.Min.Z),
		math3d.P3(b.Max.X, b.Min.Y, b.Min.Z),
		math3d.P3(b.Min.X, b.Max.Y, b.Min.Z),
		math3d.P3(b.Max.X, b.Max.Y, b.Min.Z),
		math3d.P3(b.Min.X, b.Min.Y, b.Max.Z),
		math3d.P3(b.Max.X, b.Min.Y, b.Max.Z),
		math3d.P3(b.Min.X, b.Max.Y, b.Max.Z),
		math3d.P3(b.Max.X, b.Max.Y, b.Max.Z),
	}

	first := m.ApplyToPoint(corners[0])
	out := AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := m.ApplyToPoint(c)
		out.Min = math3d.P3(math.Min(out.Min.X, p.X), math.Min(out.Min.Y, p.Y), math.Min(out.Min.Z, p.Z))
		out.Max = math3d.P3(math.Max(out.Max.X, p.X), math.Max(out.Max.Y, p.Y), math.Max(out.Max.Z, p.Z))
	}
	return out
}

// IntersectsAABB reports whether any part of the box is inside the
// frustum, using the positive-vertex rejection test.
func (f Frustum) IntersectsAABB(box AABB) bool {
	for i := range f.planes {
		plane := f.planes[i]

		// The corner furthest along the plane normal; if even it is
		// outside, the whole box is.
		pVertex := math3d.P3(
			pick(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			pick(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			pick(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.distanceToPoint(pVertex) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether a world point is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Point3) bool {
	for i := range f.planes {
		if f.planes[i].distanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
