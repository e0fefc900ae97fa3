package render

import (
	"image/color"

	"github.com/polyfacet/facet/pkg/models"
)

// Scene is everything the renderer needs for one frame: the models in
// draw order, the camera, the lights, and the background color.
type Scene struct {
	Models     []*models.Model
	Camera     *Camera
	Lights     []Light
	Background color.RGBA
}

// NewScene creates an empty scene with a black background.
func NewScene(camera *Camera) *Scene {
	return &Scene{
		Camera:     camera,
		Background: ColorBlack,
	}
}

// AddModel appends a model; models render in insertion order.
func (s *Scene) AddModel(m *models.Model) {
	s.Models = append(s.Models, m)
}

// AddLight appends a point light.
func (s *Scene) AddLight(l Light) {
	s.Lights = append(s.Lights, l)
}
