package models

import "image/color"

// Model pairs a mesh with its surface material. The mesh carries the
// geometry and coordinate frame; the material carries color, texture and
// blend mode.
type Model struct {
	Name     string
	Mesh     *Mesh
	Material Material
}

// NewModel wraps a mesh with a plain white material.
func NewModel(mesh *Mesh) *Model {
	return &Model{
		Mesh:     mesh,
		Material: NewMaterial(color.RGBA{R: 255, G: 255, B: 255, A: 255}),
	}
}

// SetColor replaces the material's base color.
func (m *Model) SetColor(c color.RGBA) {
	m.Material.Color = c
}

// SetTexture attaches a texture, leaving the blend mode unchanged.
func (m *Model) SetTexture(t *Texture) {
	m.Material.Texture = t
}
