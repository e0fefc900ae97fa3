package render

import (
	"image/color"
	"math"

	"github.com/polyfacet/facet/pkg/math3d"
	"github.com/polyfacet/facet/pkg/models"
)

// ShadingMode selects how solid fills are lit.
type ShadingMode int

const (
	// ShadeFlat writes the material's surface color without lighting.
	ShadeFlat ShadingMode = iota

	// ShadeGouraud lights each vertex with Lambertian diffuse and
	// interpolates the lit color across the polygon.
	ShadeGouraud

	// ShadeToon interpolates position and normal to each pixel, lights
	// there, and quantizes the result into discrete brightness bands.
	ShadeToon
)

// String returns the mode name for status displays.
func (m ShadingMode) String() string {
	switch m {
	case ShadeGouraud:
		return "gouraud"
	case ShadeToon:
		return "toon"
	default:
		return "flat"
	}
}

// polygonSurface carries one polygon's per-vertex attributes through
// shading. All slices are indexed by polygon-vertex position and match
// the projected point order handed to fillPolygon.
type polygonSurface struct {
	material    models.Material
	uvs         []math3d.Vec2
	positions   []math3d.Point3 // global space
	normals     []math3d.UVec3  // global space
	vertexLight [][3]float64    // per-vertex light accumulators (Gouraud)
	lights      []Light
	bands       int
}

// polygonShader turns interpolation weights into a pixel color. The set
// of shaders is closed: one per shading mode.
type polygonShader interface {
	fragment(s *polygonSurface, weights []float64) (color.RGBA, bool)
}

func shaderFor(mode ShadingMode) polygonShader {
	switch mode {
	case ShadeGouraud:
		return gouraudShader{}
	case ShadeToon:
		return toonShader{}
	default:
		return solidShader{}
	}
}

func (s *polygonSurface) uvAt(weights []float64) (u, v float64) {
	for i, w := range weights {
		u += w * s.uvs[i].X
		v += w * s.uvs[i].Y
	}
	return u, v
}

// solidShader writes the material's UV color unlit.
type solidShader struct{}

func (solidShader) fragment(s *polygonSurface, weights []float64) (color.RGBA, bool) {
	return s.material.ColorAt(s.uvAt(weights)), true
}

// gouraudShader interpolates precomputed per-vertex lighting and
// multiplies it into the surface color.
type gouraudShader struct{}

func (gouraudShader) fragment(s *polygonSurface, weights []float64) (color.RGBA, bool) {
	var acc [3]float64
	for i, w := range weights {
		acc[0] += w * s.vertexLight[i][0]
		acc[1] += w * s.vertexLight[i][1]
		acc[2] += w * s.vertexLight[i][2]
	}
	return applyLighting(s.material.ColorAt(s.uvAt(weights)), acc), true
}

// toonShader lights each pixel from interpolated position and normal,
// then quantizes the channels into discrete bands.
type toonShader struct{}

func (toonShader) fragment(s *polygonSurface, weights []float64) (color.RGBA, bool) {
	var px, py, pz float64
	var n math3d.Vec3
	for i, w := range weights {
		px += w * s.positions[i].X
		py += w * s.positions[i].Y
		pz += w * s.positions[i].Z
		n = n.Add(s.normals[i].Scale(w))
	}

	normal, err := n.Unit()
	if err != nil {
		return color.RGBA{}, false
	}

	acc := lightAccum(s.lights, math3d.P3(px, py, pz), normal)
	lit := applyLighting(s.material.ColorAt(s.uvAt(weights)), acc)
	return quantizeColor(lit, s.bands), true
}

// quantizeColor snaps each channel down to one of bands discrete levels.
func quantizeColor(c color.RGBA, bands int) color.RGBA {
	if bands < 1 {
		return c
	}
	step := 255.0 / float64(bands)
	q := func(v uint8) uint8 {
		idx := math.Floor(float64(v) / step)
		// A fully saturated channel lands on the band boundary; keep it
		// in the top band so exactly bands levels exist.
		if idx > float64(bands-1) {
			idx = float64(bands - 1)
		}
		return uint8(idx * step)
	}
	return color.RGBA{R: q(c.R), G: q(c.G), B: q(c.B), A: c.A}
}
