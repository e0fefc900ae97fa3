package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/polyfacet/facet/pkg/math3d"
)

func TestLightAccum(t *testing.T) {
	surface := math3d.Origin3()
	up := math3d.UnitZ()

	tests := []struct {
		name   string
		lights []Light
		want   float64 // expected white-channel accumulator
	}{
		{
			"head-on",
			[]Light{NewLight(math3d.P3(0, 0, 10), 1)},
			1,
		},
		{
			"at 60 degrees",
			[]Light{NewLight(math3d.P3(0, math.Sqrt(3), 1), 1)},
			0.5,
		},
		{
			"behind the surface",
			[]Light{NewLight(math3d.P3(0, 0, -10), 1)},
			0,
		},
		{
			"grazing",
			[]Light{NewLight(math3d.P3(10, 0, 0), 1)},
			0,
		},
		{
			"two lights sum",
			[]Light{
				NewLight(math3d.P3(0, 0, 10), 1),
				NewLight(math3d.P3(0, 0, 5), 0.5),
			},
			1.5,
		},
		{
			"intensity scales",
			[]Light{NewLight(math3d.P3(0, 0, 10), 2)},
			2,
		},
		{"no lights", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := lightAccum(tt.lights, surface, up)
			for ch := 0; ch < 3; ch++ {
				if math.Abs(acc[ch]-tt.want) > 1e-9 {
					t.Errorf("channel %d = %v, want %v", ch, acc[ch], tt.want)
				}
			}
		})
	}
}

func TestLightAtSurfacePoint(t *testing.T) {
	// A light exactly on the surface point has no direction; it must
	// contribute nothing rather than blow up.
	p := math3d.P3(1, 2, 3)
	acc := lightAccum([]Light{NewLight(p, 1)}, p, math3d.UnitZ())
	if acc != ([3]float64{}) {
		t.Errorf("coincident light contributed %v", acc)
	}
}

func TestColoredLight(t *testing.T) {
	l := NewLight(math3d.P3(0, 0, 10), 1)
	l.Color = ColorRed

	acc := lightAccum([]Light{l}, math3d.Origin3(), math3d.UnitZ())
	if acc[0] != 1 || acc[1] != 0 || acc[2] != 0 {
		t.Errorf("red light accumulated %v, want [1 0 0]", acc)
	}
}

func TestApplyLighting(t *testing.T) {
	tests := []struct {
		name string
		base color.RGBA
		acc  [3]float64
		want color.RGBA
	}{
		{"full light", color.RGBA{200, 100, 50, 255}, [3]float64{1, 1, 1}, color.RGBA{200, 100, 50, 255}},
		{"half light", color.RGBA{200, 100, 50, 255}, [3]float64{0.5, 0.5, 0.5}, color.RGBA{100, 50, 25, 255}},
		{"dark", color.RGBA{200, 100, 50, 255}, [3]float64{0, 0, 0}, color.RGBA{0, 0, 0, 255}},
		{"clamps at white", color.RGBA{200, 200, 200, 255}, [3]float64{3, 3, 3}, color.RGBA{255, 255, 255, 255}},
		{"alpha preserved", color.RGBA{10, 10, 10, 128}, [3]float64{1, 1, 1}, color.RGBA{10, 10, 10, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyLighting(tt.base, tt.acc); got != tt.want {
				t.Errorf("applyLighting(%v, %v) = %v, want %v", tt.base, tt.acc, got, tt.want)
			}
		})
	}
}

func TestQuantizeColorBandCount(t *testing.T) {
	const bands = 4
	seen := map[uint8]bool{}
	for v := 0; v < 256; v++ {
		q := quantizeColor(color.RGBA{R: uint8(v), A: 255}, bands)
		seen[q.R] = true
	}
	if len(seen) != bands {
		t.Errorf("quantization produced %d levels, want %d", len(seen), bands)
	}
}
