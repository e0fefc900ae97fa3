package math3d

import (
	"errors"
	"math"
)

// ErrNonOrthonormalBasis is returned when a coordinate frame is constructed
// from basis vectors that are not mutually orthogonal unit vectors.
var ErrNonOrthonormalBasis = errors.New("math3d: basis vectors are not orthonormal")

const orthoEps = 1e-6

// CoordFrame is an orthonormal local coordinate system: three mutually
// orthogonal unit basis vectors, an origin, and a per-axis scale. Cameras
// and meshes each own one by value to track position, orientation and
// scale; the basis stays orthonormal at all times.
//
// Local +X maps to Right, +Y to Up and +Z to Forward.
type CoordFrame struct {
	Right   UVec3
	Up      UVec3
	Forward UVec3
	Origin  Point3
	Scale   Vec3
}

// DefaultFrame returns the frame aligned with the world axes at the origin
// with unit scale.
func DefaultFrame() CoordFrame {
	return CoordFrame{
		Right:   UnitX(),
		Up:      UnitY(),
		Forward: UnitZ(),
		Origin:  Origin3(),
		Scale:   V3(1, 1, 1),
	}
}

// NewCoordFrame constructs a frame from three explicit basis vectors,
// rejecting non-unit or non-orthogonal inputs. The basis invariant is
// load-bearing for all downstream matrix math, so it fails eagerly here
// rather than building an invalid frame.
func NewCoordFrame(right, up, forward Vec3, origin Point3) (CoordFrame, error) {
	for _, v := range []Vec3{right, up, forward} {
		if math.Abs(v.Len()-1) > orthoEps {
			return CoordFrame{}, ErrNonOrthonormalBasis
		}
	}
	if math.Abs(right.Dot(up)) > orthoEps ||
		math.Abs(up.Dot(forward)) > orthoEps ||
		math.Abs(forward.Dot(right)) > orthoEps {
		return CoordFrame{}, ErrNonOrthonormalBasis
	}
	return CoordFrame{
		Right:   UVec3{right.X, right.Y, right.Z},
		Up:      UVec3{up.X, up.Y, up.Z},
		Forward: UVec3{forward.X, forward.Y, forward.Z},
		Origin:  origin,
		Scale:   V3(1, 1, 1),
	}, nil
}

// FrameFrom2 constructs a frame from forward and up directions, deriving
// the right axis via cross product and re-deriving up so the basis is
// exactly orthonormal. Parallel inputs are an error.
func FrameFrom2(forward, up Vec3, origin Point3) (CoordFrame, error) {
	f, err := forward.Unit()
	if err != nil {
		return CoordFrame{}, err
	}
	r, err := up.Cross(f.Vec3()).Unit()
	if err != nil {
		return CoordFrame{}, ErrNonOrthonormalBasis
	}
	u, err := UnitCross(f, r)
	if err != nil {
		return CoordFrame{}, ErrNonOrthonormalBasis
	}
	return CoordFrame{
		Right:   r,
		Up:      u,
		Forward: f,
		Origin:  origin,
		Scale:   V3(1, 1, 1),
	}, nil
}

// Rotate applies a rotation-only transform to the three basis vectors and
// then re-orthonormalizes. The re-orthonormalization is mandatory:
// repeated rotations accumulate floating-point skew otherwise. One axis is
// recomputed as the cross of the other two, with the sign chosen to keep
// the frame's handedness (a reflected frame stays reflected).
func (f *CoordFrame) Rotate(t Transform3D) {
	fwd := t.ApplyToVector(f.Forward.Vec3()).UnitOr(f.Forward)
	upApplied := t.ApplyToVector(f.Up.Vec3()).UnitOr(f.Up)
	rightApplied := t.ApplyToVector(f.Right.Vec3())

	right := upApplied.Vec3().Cross(fwd.Vec3()).UnitOr(f.Right)
	if right.DotVec(rightApplied) < 0 {
		right = right.Negate()
	}
	up := fwd.Vec3().Cross(right.Vec3()).UnitOr(upApplied)
	if up.Dot(upApplied) < 0 {
		up = up.Negate()
	}

	f.Forward = fwd
	f.Right = right
	f.Up = up
}

// Translate displaces the frame origin by v (global coordinates).
func (f *CoordFrame) Translate(v Vec3) {
	f.Origin = f.Origin.Add(v)
}

// ScaleBy multiplies the per-axis scale component-wise.
func (f *CoordFrame) ScaleBy(v Vec3) {
	f.Scale = f.Scale.Mul(v)
}

// ReflectXY mirrors the frame through its local XY plane (flips Forward).
func (f *CoordFrame) ReflectXY() {
	f.Forward = f.Forward.Negate()
}

// ReflectXZ mirrors the frame through its local XZ plane (flips Up).
func (f *CoordFrame) ReflectXZ() {
	f.Up = f.Up.Negate()
}

// ReflectYZ mirrors the frame through its local YZ plane (flips Right).
func (f *CoordFrame) ReflectYZ() {
	f.Right = f.Right.Negate()
}

// basisRotation returns the rotation mapping local axes onto the frame
// basis (rows are Right, Up, Forward under the row-vector convention).
func (f CoordFrame) basisRotation() Transform3D {
	return Transform3D{
		f.Right.X, f.Right.Y, f.Right.Z, 0,
		f.Up.X, f.Up.Y, f.Up.Z, 0,
		f.Forward.X, f.Forward.Y, f.Forward.Z, 0,
		0, 0, 0, 1,
	}
}

// LocalToGlobal returns the transform lifting local coordinates into the
// global frame: scale, then rotate onto the basis, then translate to the
// origin.
func (f CoordFrame) LocalToGlobal() Transform3D {
	return Scaling(f.Scale).
		Mul(f.basisRotation()).
		Mul(Translation(f.Origin.Vec3()))
}

// GlobalToLocal returns the inverse chain of LocalToGlobal: translate
// back, rotate onto the local axes, un-scale. The basis rotation inverts
// by transposition because it is orthonormal.
func (f CoordFrame) GlobalToLocal() Transform3D {
	return Translation(f.Origin.Vec3().Negate()).
		Mul(f.basisRotation().Transpose()).
		Mul(Scaling(V3(1/f.Scale.X, 1/f.Scale.Y, 1/f.Scale.Z)))
}
