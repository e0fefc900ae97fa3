package math3d

import "errors"

// ErrDirectionToPoint is returned when a direction-valued homogeneous
// vector (W == 0) is converted to a point.
var ErrDirectionToPoint = errors.New("math3d: homogeneous direction has no point representation")

// HVec represents a homogeneous 4-vector for projective math.
// W = 1 encodes a point, W = 0 encodes a pure direction.
type HVec struct {
	X, Y, Z, W float64
}

// HPoint creates a homogeneous point (W = 1).
func HPoint(p Point3) HVec {
	return HVec{p.X, p.Y, p.Z, 1}
}

// HDir creates a homogeneous direction (W = 0).
func HDir(v Vec3) HVec {
	return HVec{v.X, v.Y, v.Z, 0}
}

// Point converts back to a Point3, performing the perspective divide.
// Converting a direction (W == 0) is an error.
func (h HVec) Point() (Point3, error) {
	if h.W == 0 {
		return Point3{}, ErrDirectionToPoint
	}
	return Point3{h.X / h.W, h.Y / h.W, h.Z / h.W}, nil
}

// Vec3 returns the spatial components, ignoring W.
func (h HVec) Vec3() Vec3 {
	return Vec3{h.X, h.Y, h.Z}
}

// Add returns the component-wise sum.
func (h HVec) Add(o HVec) HVec {
	return HVec{h.X + o.X, h.Y + o.Y, h.Z + o.Z, h.W + o.W}
}

// Scale returns the scalar product.
func (h HVec) Scale(s float64) HVec {
	return HVec{h.X * s, h.Y * s, h.Z * s, h.W * s}
}

// Dot returns the 4-component dot product.
func (h HVec) Dot(o HVec) float64 {
	return h.X*o.X + h.Y*o.Y + h.Z*o.Z + h.W*o.W
}
