package render

import (
	"image/color"

	"github.com/polyfacet/facet/pkg/math3d"
)

// Light is a point light with Lambertian (cosine) falloff and no
// distance attenuation.
type Light struct {
	Position  math3d.Point3
	Color     color.RGBA
	Intensity float64
}

// NewLight creates a white point light.
func NewLight(position math3d.Point3, intensity float64) Light {
	return Light{
		Position:  position,
		Color:     ColorWhite,
		Intensity: intensity,
	}
}

// contribute adds this light's diffuse contribution at a surface point
// into the per-channel accumulator. Points coincident with the light
// position contribute nothing.
func (l Light) contribute(point math3d.Point3, normal math3d.UVec3, acc *[3]float64) {
	toLight, err := l.Position.Sub(point).Unit()
	if err != nil {
		return
	}
	lambert := normal.Dot(toLight)
	if lambert <= 0 {
		return
	}
	scale := l.Intensity * lambert / 255
	acc[0] += float64(l.Color.R) * scale
	acc[1] += float64(l.Color.G) * scale
	acc[2] += float64(l.Color.B) * scale
}

// lightAccum sums the diffuse contribution of every light at a surface
// point, as per-channel multipliers.
func lightAccum(lights []Light, point math3d.Point3, normal math3d.UVec3) [3]float64 {
	var acc [3]float64
	for _, l := range lights {
		l.contribute(point, normal, &acc)
	}
	return acc
}

// applyLighting multiplies a base color by per-channel light factors,
// clamping at white.
func applyLighting(base color.RGBA, acc [3]float64) color.RGBA {
	return color.RGBA{
		R: clampChannel(float64(base.R) * acc[0]),
		G: clampChannel(float64(base.G) * acc[1]),
		B: clampChannel(float64(base.B) * acc[2]),
		A: base.A,
	}
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
