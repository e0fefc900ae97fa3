// Package math3d provides the linear algebra primitives for the facet engine.
//
// The package distinguishes positions (Point3), free directions (Vec3) and
// unit directions (UVec3). Unit length is an invariant maintained by the
// constructor sites, not by the type system: every UVec3 comes from a
// normalizing constructor or from an operation documented to preserve
// length.
package math3d

import (
	"errors"
	"math"
)

// ErrZeroVector is returned when a zero-length vector is normalized.
var ErrZeroVector = errors.New("math3d: cannot normalize zero-length vector")

// Vec3 represents a free 3D direction or displacement.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Mul returns the component-wise product a * b.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the length (magnitude) of the vector.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// LenSq returns the squared length (faster, no sqrt).
func (a Vec3) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Unit returns the unit vector in the same direction.
// Normalizing the zero vector is an error, never a silent zero result.
func (a Vec3) Unit() (UVec3, error) {
	l := a.Len()
	if l == 0 {
		return UVec3{}, ErrZeroVector
	}
	return UVec3{a.X / l, a.Y / l, a.Z / l}, nil
}

// UnitOr returns the normalized vector, or fallback when a has zero length.
// Used where a degenerate input must degrade gracefully (e.g. averaged
// normals that cancelled out).
func (a Vec3) UnitOr(fallback UVec3) UVec3 {
	u, err := a.Unit()
	if err != nil {
		return fallback
	}
	return u
}

// Point3 represents a position in 3D space. Positions have no algebra of
// their own beyond point-point difference and point+vector displacement.
type Point3 struct {
	X, Y, Z float64
}

// P3 creates a new Point3.
func P3(x, y, z float64) Point3 {
	return Point3{x, y, z}
}

// Origin3 returns the origin point.
func Origin3() Point3 {
	return Point3{}
}

// Add returns the point displaced by v.
func (p Point3) Add(v Vec3) Point3 {
	return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Sub returns the displacement from q to p.
func (p Point3) Sub(q Point3) Vec3 {
	return Vec3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Vec3 returns the displacement of p from the origin.
func (p Point3) Vec3() Vec3 {
	return Vec3{p.X, p.Y, p.Z}
}

// UVec3 represents a direction of unit length. Produced only by normalizing
// constructors; operations that could perturb the length re-normalize.
type UVec3 struct {
	X, Y, Z float64
}

// UnitX returns the unit vector along +X.
func UnitX() UVec3 { return UVec3{1, 0, 0} }

// UnitY returns the unit vector along +Y.
func UnitY() UVec3 { return UVec3{0, 1, 0} }

// UnitZ returns the unit vector along +Z.
func UnitZ() UVec3 { return UVec3{0, 0, 1} }

// Vec3 returns the direction as a plain Vec3.
func (u UVec3) Vec3() Vec3 {
	return Vec3{u.X, u.Y, u.Z}
}

// Dot returns the dot product u · v.
func (u UVec3) Dot(v UVec3) float64 {
	return u.X*v.X + u.Y*v.Y + u.Z*v.Z
}

// DotVec returns the dot product with a plain vector.
func (u UVec3) DotVec(v Vec3) float64 {
	return u.X*v.X + u.Y*v.Y + u.Z*v.Z
}

// Negate returns the opposite direction.
func (u UVec3) Negate() UVec3 {
	return UVec3{-u.X, -u.Y, -u.Z}
}

// Scale returns the direction scaled to an arbitrary length.
func (u UVec3) Scale(s float64) Vec3 {
	return Vec3{u.X * s, u.Y * s, u.Z * s}
}

// UnitCross returns the normalized cross product a × b.
// Parallel inputs have a zero cross product and yield an error.
func UnitCross(a, b UVec3) (UVec3, error) {
	return a.Vec3().Cross(b.Vec3()).Unit()
}
