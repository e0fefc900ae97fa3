package render

import (
	"math"
	"testing"

	"github.com/polyfacet/facet/pkg/math3d"
)

func testFrustum(t *testing.T) Frustum {
	t.Helper()
	cam := MustCamera()
	return ExtractFrustum(cam.ViewMatrix().Mul(cam.ProjectionMatrix()))
}

func TestFrustumContainsPoint(t *testing.T) {
	f := testFrustum(t)

	tests := []struct {
		name  string
		point math3d.Point3
		want  bool
	}{
		{"in front", math3d.P3(0, 0, -5), true},
		{"behind camera", math3d.P3(0, 0, 5), false},
		{"before near plane", math3d.P3(0, 0, -0.05), false},
		{"beyond far plane", math3d.P3(0, 0, -2000), false},
		{"far left", math3d.P3(-100, 0, -5), false},
		{"far above", math3d.P3(0, 100, -5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ContainsPoint(tt.point); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestFrustumIntersectsAABB(t *testing.T) {
	f := testFrustum(t)

	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{"centered in view", AABB{Min: math3d.P3(-1, -1, -6), Max: math3d.P3(1, 1, -4)}, true},
		{"straddles near plane", AABB{Min: math3d.P3(-1, -1, -1), Max: math3d.P3(1, 1, 1)}, true},
		{"entirely behind camera", AABB{Min: math3d.P3(-1, -1, 4), Max: math3d.P3(1, 1, 6)}, false},
		{"far off to the side", AABB{Min: math3d.P3(100, -1, -6), Max: math3d.P3(102, 1, -4)}, false},
		{"encloses the frustum", AABB{Min: math3d.P3(-5000, -5000, -5000), Max: math3d.P3(5000, 5000, 5000)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IntersectsAABB(tt.box); got != tt.want {
				t.Errorf("IntersectsAABB(%v) = %v, want %v", tt.box, got, tt.want)
			}
		})
	}
}

func TestTransformAABBTranslation(t *testing.T) {
	box := AABB{Min: math3d.P3(-1, -1, -1), Max: math3d.P3(1, 1, 1)}
	moved := TransformAABB(box, math3d.Translation(math3d.V3(10, 0, 0)))

	if moved.Min.X != 9 || moved.Max.X != 11 {
		t.Errorf("translated box x = [%v, %v], want [9, 11]", moved.Min.X, moved.Max.X)
	}
	if moved.Min.Y != -1 || moved.Max.Y != 1 {
		t.Errorf("translated box y = [%v, %v], want [-1, 1]", moved.Min.Y, moved.Max.Y)
	}
}

func TestTransformAABBRotationGrowsBounds(t *testing.T) {
	box := AABB{Min: math3d.P3(-1, -1, -1), Max: math3d.P3(1, 1, 1)}
	rotated := TransformAABB(box, math3d.RotationZ(math.Pi/4))

	// A rotated unit cube needs a wider axis-aligned box.
	if rotated.Max.X <= 1 {
		t.Errorf("rotated box max x = %v, want > 1", rotated.Max.X)
	}
}
