package math3d

import (
	"errors"
	"math"
	"testing"
)

func checkOrthonormal(t *testing.T, f CoordFrame, eps float64) {
	t.Helper()

	for name, v := range map[string]Vec3{
		"right":   f.Right.Vec3(),
		"up":      f.Up.Vec3(),
		"forward": f.Forward.Vec3(),
	} {
		if math.Abs(v.Len()-1) > eps {
			t.Errorf("%s not unit length: %v", name, v.Len())
		}
	}
	if d := f.Right.Dot(f.Up); math.Abs(d) > eps {
		t.Errorf("right . up = %v", d)
	}
	if d := f.Up.Dot(f.Forward); math.Abs(d) > eps {
		t.Errorf("up . forward = %v", d)
	}
	if d := f.Forward.Dot(f.Right); math.Abs(d) > eps {
		t.Errorf("forward . right = %v", d)
	}
}

func TestNewCoordFrameValidation(t *testing.T) {
	tests := []struct {
		name              string
		right, up, fwd    Vec3
		wantErr           bool
	}{
		{"world axes", V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1), false},
		{"non-unit", V3(2, 0, 0), V3(0, 1, 0), V3(0, 0, 1), true},
		{"non-orthogonal", V3(1, 0, 0), V3(0.7, 0.7, 0).Scale(1 / V3(0.7, 0.7, 0).Len()), V3(0, 0, 1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCoordFrame(tc.right, tc.up, tc.fwd, Origin3())
			if tc.wantErr && !errors.Is(err, ErrNonOrthonormalBasis) {
				t.Errorf("err = %v, want ErrNonOrthonormalBasis", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFrameFrom2(t *testing.T) {
	f, err := FrameFrom2(V3(0, 0, 2), V3(0, 5, 0.1), P3(1, 2, 3))
	if err != nil {
		t.Fatalf("FrameFrom2: %v", err)
	}
	checkOrthonormal(t, f, 1e-12)
	if !vecAlmostEqual(f.Forward.Vec3(), V3(0, 0, 1), 1e-12) {
		t.Errorf("forward = %v", f.Forward)
	}

	if _, err := FrameFrom2(V3(0, 1, 0), V3(0, -3, 0), Origin3()); err == nil {
		t.Error("parallel forward/up should fail")
	}
}

func TestFrameRoundTrip(t *testing.T) {
	f := DefaultFrame()
	f.Translate(V3(3, -1, 4))
	f.ScaleBy(V3(2, 0.5, 3))
	f.Rotate(RotationY(0.8))
	f.Rotate(RotationX(-0.3))

	points := []Point3{
		Origin3(),
		P3(1, 2, 3),
		P3(-5, 0.25, 7),
	}

	l2g := f.LocalToGlobal()
	g2l := f.GlobalToLocal()

	for _, p := range points {
		back := g2l.ApplyToPoint(l2g.ApplyToPoint(p))
		if !pointAlmostEqual(back, p, 1e-6) {
			t.Errorf("round-trip %v = %v", p, back)
		}
	}
}

func TestFrameOrthonormalityUnderRotation(t *testing.T) {
	f := DefaultFrame()

	// Many small rotations around varying axes accumulate drift unless
	// the frame re-orthonormalizes after each.
	for i := range 500 {
		angle := 0.013 * float64(i%7+1)
		switch i % 3 {
		case 0:
			f.Rotate(RotationX(angle))
		case 1:
			f.Rotate(RotationY(-angle))
		default:
			f.Rotate(RotationZ(angle / 2))
		}
	}

	checkOrthonormal(t, f, 1e-9)
}

func TestFrameRotatePreservesReflection(t *testing.T) {
	f := DefaultFrame()
	f.ReflectYZ() // left-handed now

	f.Rotate(RotationY(0.6))
	checkOrthonormal(t, f, 1e-12)

	// Handedness: right . (up x forward) is -1 for a reflected frame.
	h := f.Right.DotVec(f.Up.Vec3().Cross(f.Forward.Vec3()))
	if !almostEqual(h, -1, 1e-9) {
		t.Errorf("handedness = %v, want -1", h)
	}
}

func TestFrameReflect(t *testing.T) {
	f := DefaultFrame()
	f.ReflectXY()
	if f.Forward != UnitZ().Negate() {
		t.Errorf("forward after ReflectXY = %v", f.Forward)
	}
	f.ReflectXZ()
	if f.Up != UnitY().Negate() {
		t.Errorf("up after ReflectXZ = %v", f.Up)
	}
	f.ReflectYZ()
	if f.Right != UnitX().Negate() {
		t.Errorf("right after ReflectYZ = %v", f.Right)
	}
}

func TestLocalToGlobalOrder(t *testing.T) {
	// Scale must apply before rotation and translation: a local +X point
	// on a frame rotated 90deg around Y with scale 2 ends up at
	// origin + 2*rotated-X.
	f := DefaultFrame()
	f.ScaleBy(V3(2, 1, 1))
	f.Rotate(RotationY(math.Pi / 2))
	f.Translate(V3(10, 0, 0))

	got := f.LocalToGlobal().ApplyToPoint(P3(1, 0, 0))
	want := P3(10, 0, -2)
	if !pointAlmostEqual(got, want, 1e-9) {
		t.Errorf("local +X lifts to %v, want %v", got, want)
	}
}
