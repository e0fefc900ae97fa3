package models

import (
	"image/color"
	"math"
)

// BlendMode selects how a texture sample combines with a material's base
// color.
type BlendMode int

const (
	// BlendModulate multiplies the texture sample with the base color
	// per channel. This is the default.
	BlendModulate BlendMode = iota

	// BlendReplace uses the texture sample unchanged.
	BlendReplace

	// BlendAdditive adds the texture sample to the base color, clamping
	// each channel at 255.
	BlendAdditive
)

// Material describes the surface appearance of a model: a base color, an
// optional texture, and the blend mode combining the two.
type Material struct {
	Color   color.RGBA
	Texture *Texture
	Blend   BlendMode
}

// NewMaterial creates an untextured material with the given base color
// and the default modulate blend mode.
func NewMaterial(c color.RGBA) Material {
	return Material{Color: c}
}

// WithTexture returns a copy of the material with the texture attached.
func (m Material) WithTexture(t *Texture) Material {
	m.Texture = t
	return m
}

// ColorAt resolves the surface color at the given texture coordinates.
// Without a texture the base color is returned as-is.
func (m Material) ColorAt(u, v float64) color.RGBA {
	if m.Texture == nil {
		return m.Color
	}
	sample := m.Texture.Sample(u, v)
	switch m.Blend {
	case BlendReplace:
		return sample
	case BlendAdditive:
		return AddColor(m.Color, sample)
	default:
		return ModulateColor(m.Color, sample)
	}
}

// LerpColor linearly interpolates between two colors.
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}

// ModulateColor multiplies two colors per channel.
func ModulateColor(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((int(a.R) * int(b.R)) / 255),
		G: uint8((int(a.G) * int(b.G)) / 255),
		B: uint8((int(a.B) * int(b.B)) / 255),
		A: uint8((int(a.A) * int(b.A)) / 255),
	}
}

// AddColor adds two colors per channel, clamping at 255. Alpha follows
// the first operand.
func AddColor(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: clampChan(int(a.R) + int(b.R)),
		G: clampChan(int(a.G) + int(b.G)),
		B: clampChan(int(a.B) + int(b.B)),
		A: a.A,
	}
}

// ScaleColor multiplies a color by a scalar intensity, clamping at 255.
// Alpha is preserved.
func ScaleColor(c color.RGBA, intensity float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Min(255, math.Max(0, float64(c.R)*intensity))),
		G: uint8(math.Min(255, math.Max(0, float64(c.G)*intensity))),
		B: uint8(math.Min(255, math.Max(0, float64(c.B)*intensity))),
		A: c.A,
	}
}

// ComplementColor returns the RGB complement, preserving alpha.
func ComplementColor(c color.RGBA) color.RGBA {
	return color.RGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A}
}

func clampChan(v int) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
