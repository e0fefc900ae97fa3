package math3d

import (
	"errors"
	"math"
)

// ErrSingularTransform is returned when a transform with a near-zero
// determinant is inverted.
var ErrSingularTransform = errors.New("math3d: transform is singular, cannot invert")

// Transform3D is a 4x4 matrix stored in row-major order, applied to row
// vectors: p' = [p 1] · M. With this convention a chain
// A.Mul(B).Mul(C) applies A first, then B, then C, matching the pipeline
// order object -> world -> view -> projection -> viewport.
//
// Memory layout (indices):
// | 0  1  2  3  |
// | 4  5  6  7  |
// | 8  9  10 11 |
// | 12 13 14 15 |
//
// For an affine transform the upper-left 3x3 holds rotation/scale, row 3
// holds the translation, and column 3 is (0, 0, 0, 1).
type Transform3D [16]float64

// Identity returns the identity transform.
func Identity() Transform3D {
	return Transform3D{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation creates a translation transform.
func Translation(v Vec3) Transform3D {
	return Transform3D{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scaling creates a per-axis scaling transform.
func Scaling(v Vec3) Transform3D {
	return Transform3D{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// ScalingUniform creates a uniform scaling transform.
func ScalingUniform(s float64) Transform3D {
	return Scaling(V3(s, s, s))
}

// RotationX creates a rotation around the X axis (radians, right-handed).
func RotationX(angle float64) Transform3D {
	c, s := math.Cos(angle), math.Sin(angle)
	return Transform3D{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY creates a rotation around the Y axis (radians, right-handed).
func RotationY(angle float64) Transform3D {
	c, s := math.Cos(angle), math.Sin(angle)
	return Transform3D{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationZ creates a rotation around the Z axis (radians, right-handed).
func RotationZ(angle float64) Transform3D {
	c, s := math.Cos(angle), math.Sin(angle)
	return Transform3D{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotationAxis creates a rotation around an arbitrary axis through the
// origin, using the Rodrigues closed form.
func RotationAxis(axis UVec3, angle float64) Transform3D {
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Transform3D{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// RotationAroundLine creates a rotation around an arbitrary line: translate
// the line's origin to the world origin, rotate around its direction, then
// translate back. This supports pivot points other than the origin.
func RotationAroundLine(line Line3, angle float64) Transform3D {
	return Translation(line.Origin.Vec3().Negate()).
		Mul(RotationAxis(line.Dir, angle)).
		Mul(Translation(line.Origin.Vec3()))
}

// LookAt creates a view transform looking from eye towards target.
// Fails when target coincides with eye or up is parallel to the view
// direction.
func LookAt(eye, target Point3, up Vec3) (Transform3D, error) {
	f, err := target.Sub(eye).Unit() // forward
	if err != nil {
		return Transform3D{}, err
	}
	s, err := f.Vec3().Cross(up).Unit() // right
	if err != nil {
		return Transform3D{}, err
	}
	u := s.Vec3().Cross(f.Vec3()) // up (recomputed, already unit)

	e := eye.Vec3()
	return Transform3D{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.DotVec(e), -u.Dot(e), f.DotVec(e), 1,
	}, nil
}

// Perspective creates a perspective projection.
// fovy is the vertical field of view in radians, aspect is width/height.
// View space is right-handed with the camera looking down -Z; the near
// plane (z = -near) maps to NDC z = +1 and the far plane (z = -far) to
// NDC z = -1.
func Perspective(fovy, aspect, near, far float64) Transform3D {
	f := 1.0 / math.Tan(fovy/2)
	fn := 1.0 / (far - near)

	return Transform3D{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * fn, -1,
		0, 0, 2 * far * near * fn, 0,
	}
}

// Parallel creates a parallel (orthographic) projection with the same NDC
// depth convention as Perspective: z = -near maps to +1, z = -far to -1.
// halfWidth is half the view volume width; aspect is width/height.
func Parallel(halfWidth, aspect, near, far float64) Transform3D {
	fn := 1.0 / (far - near)

	return Transform3D{
		1 / halfWidth, 0, 0, 0,
		0, aspect / halfWidth, 0, 0,
		0, 0, 2 * fn, 0,
		0, 0, (far + near) * fn, 1,
	}
}

// Mul returns the matrix product m · o: m applied first, then o.
func (m Transform3D) Mul(o Transform3D) Transform3D {
	var r Transform3D
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += m[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// ApplyToPoint transforms a position (implicit w = 1), dividing by the
// resulting w when the transform is projective (w not 0 or 1).
func (m Transform3D) ApplyToPoint(p Point3) Point3 {
	x := p.X*m[0] + p.Y*m[4] + p.Z*m[8] + m[12]
	y := p.X*m[1] + p.Y*m[5] + p.Z*m[9] + m[13]
	z := p.X*m[2] + p.Y*m[6] + p.Z*m[10] + m[14]
	w := p.X*m[3] + p.Y*m[7] + p.Z*m[11] + m[15]
	if w != 0 && w != 1 {
		return Point3{x / w, y / w, z / w}
	}
	return Point3{x, y, z}
}

// ApplyToVector transforms a free direction (implicit w = 0): the
// rotation/scale part only, translation ignored, no divide.
func (m Transform3D) ApplyToVector(v Vec3) Vec3 {
	return Vec3{
		v.X*m[0] + v.Y*m[4] + v.Z*m[8],
		v.X*m[1] + v.Y*m[5] + v.Z*m[9],
		v.X*m[2] + v.Y*m[6] + v.Z*m[10],
	}
}

// ApplyToH transforms a full homogeneous vector without any divide.
// Used where the raw clip-space w is needed (behind-camera tests,
// perspective-correct interpolation).
func (m Transform3D) ApplyToH(h HVec) HVec {
	return HVec{
		h.X*m[0] + h.Y*m[4] + h.Z*m[8] + h.W*m[12],
		h.X*m[1] + h.Y*m[5] + h.Z*m[9] + h.W*m[13],
		h.X*m[2] + h.Y*m[6] + h.Z*m[10] + h.W*m[14],
		h.X*m[3] + h.Y*m[7] + h.Z*m[11] + h.W*m[15],
	}
}

// Transpose returns the transposed matrix.
func (m Transform3D) Transpose() Transform3D {
	return Transform3D{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Determinant returns the determinant of the matrix.
func (m Transform3D) Determinant() float64 {
	return m[0]*(m[5]*(m[10]*m[15]-m[14]*m[11])-m[9]*(m[6]*m[15]-m[14]*m[7])+m[13]*(m[6]*m[11]-m[10]*m[7])) -
		m[4]*(m[1]*(m[10]*m[15]-m[14]*m[11])-m[9]*(m[2]*m[15]-m[14]*m[3])+m[13]*(m[2]*m[11]-m[10]*m[3])) +
		m[8]*(m[1]*(m[6]*m[15]-m[14]*m[7])-m[5]*(m[2]*m[15]-m[14]*m[3])+m[13]*(m[2]*m[7]-m[6]*m[3])) -
		m[12]*(m[1]*(m[6]*m[11]-m[10]*m[7])-m[5]*(m[2]*m[11]-m[10]*m[3])+m[9]*(m[2]*m[7]-m[6]*m[3]))
}

// Inverse returns the inverse of the matrix, or an error when the matrix
// is singular. Well defined for the affine subset; projective transforms
// with a vanishing determinant cannot be inverted.
func (m Transform3D) Inverse() (Transform3D, error) {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 {
		return Transform3D{}, ErrSingularTransform
	}

	invDet := 1.0 / det
	var inv Transform3D

	inv[0] = (m[5]*(m[10]*m[15]-m[14]*m[11]) - m[9]*(m[6]*m[15]-m[14]*m[7]) + m[13]*(m[6]*m[11]-m[10]*m[7])) * invDet
	inv[1] = -(m[1]*(m[10]*m[15]-m[14]*m[11]) - m[9]*(m[2]*m[15]-m[14]*m[3]) + m[13]*(m[2]*m[11]-m[10]*m[3])) * invDet
	inv[2] = (m[1]*(m[6]*m[15]-m[14]*m[7]) - m[5]*(m[2]*m[15]-m[14]*m[3]) + m[13]*(m[2]*m[7]-m[6]*m[3])) * invDet
	inv[3] = -(m[1]*(m[6]*m[11]-m[10]*m[7]) - m[5]*(m[2]*m[11]-m[10]*m[3]) + m[9]*(m[2]*m[7]-m[6]*m[3])) * invDet

	inv[4] = -(m[4]*(m[10]*m[15]-m[14]*m[11]) - m[8]*(m[6]*m[15]-m[14]*m[7]) + m[12]*(m[6]*m[11]-m[10]*m[7])) * invDet
	inv[5] = (m[0]*(m[10]*m[15]-m[14]*m[11]) - m[8]*(m[2]*m[15]-m[14]*m[3]) + m[12]*(m[2]*m[11]-m[10]*m[3])) * invDet
	inv[6] = -(m[0]*(m[6]*m[15]-m[14]*m[7]) - m[4]*(m[2]*m[15]-m[14]*m[3]) + m[12]*(m[2]*m[7]-m[6]*m[3])) * invDet
	inv[7] = (m[0]*(m[6]*m[11]-m[10]*m[7]) - m[4]*(m[2]*m[11]-m[10]*m[3]) + m[8]*(m[2]*m[7]-m[6]*m[3])) * invDet

	inv[8] = (m[4]*(m[9]*m[15]-m[13]*m[11]) - m[8]*(m[5]*m[15]-m[13]*m[7]) + m[12]*(m[5]*m[11]-m[9]*m[7])) * invDet
	inv[9] = -(m[0]*(m[9]*m[15]-m[13]*m[11]) - m[8]*(m[1]*m[15]-m[13]*m[3]) + m[12]*(m[1]*m[11]-m[9]*m[3])) * invDet
	inv[10] = (m[0]*(m[5]*m[15]-m[13]*m[7]) - m[4]*(m[1]*m[15]-m[13]*m[3]) + m[12]*(m[1]*m[7]-m[5]*m[3])) * invDet
	inv[11] = -(m[0]*(m[5]*m[11]-m[9]*m[7]) - m[4]*(m[1]*m[11]-m[9]*m[3]) + m[8]*(m[1]*m[7]-m[5]*m[3])) * invDet

	inv[12] = -(m[4]*(m[9]*m[14]-m[13]*m[10]) - m[8]*(m[5]*m[14]-m[13]*m[6]) + m[12]*(m[5]*m[10]-m[9]*m[6])) * invDet
	inv[13] = (m[0]*(m[9]*m[14]-m[13]*m[10]) - m[8]*(m[1]*m[14]-m[13]*m[2]) + m[12]*(m[1]*m[10]-m[9]*m[2])) * invDet
	inv[14] = -(m[0]*(m[5]*m[14]-m[13]*m[6]) - m[4]*(m[1]*m[14]-m[13]*m[2]) + m[12]*(m[1]*m[6]-m[5]*m[2])) * invDet
	inv[15] = (m[0]*(m[5]*m[10]-m[9]*m[6]) - m[4]*(m[1]*m[10]-m[9]*m[2]) + m[8]*(m[1]*m[6]-m[5]*m[2])) * invDet

	return inv, nil
}
