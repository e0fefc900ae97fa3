package math3d

import (
	"testing"
)

func BenchmarkTransformMul(b *testing.B) {
	m1 := Translation(V3(1, 2, 3))
	m2 := RotationY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkTransformApplyToPoint(b *testing.B) {
	m := Translation(V3(1, 2, 3)).Mul(RotationY(0.5))
	p := P3(1, 2, 3)

	for b.Loop() {
		_ = m.ApplyToPoint(p)
	}
}

func BenchmarkTransformApplyToH(b *testing.B) {
	m := Perspective(1.0, 1.333, 0.1, 100.0)
	h := HPoint(P3(1, 2, 3))

	for b.Loop() {
		_ = m.ApplyToH(h)
	}
}

func BenchmarkTransformInverse(b *testing.B) {
	m := Translation(V3(1, 2, 3)).Mul(RotationY(0.5)).Mul(Scaling(V3(2, 2, 2)))

	for b.Loop() {
		_, _ = m.Inverse()
	}
}

func BenchmarkVec3Unit(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_, _ = v.Unit()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkFrameLocalToGlobal(b *testing.B) {
	f := DefaultFrame()
	f.Translate(V3(1, 2, 3))
	f.Rotate(RotationY(0.5))

	for b.Loop() {
		_ = f.LocalToGlobal()
	}
}

func BenchmarkGlobalToScreenChain(b *testing.B) {
	// Simulate building the per-frame combined transform like the
	// renderer does.
	view, _ := LookAt(P3(0, 0, 10), Origin3(), V3(0, 1, 0))
	proj := Perspective(1.0, 1.333, 0.1, 100.0)

	for b.Loop() {
		_ = view.Mul(proj)
	}
}
