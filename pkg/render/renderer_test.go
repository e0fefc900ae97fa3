package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/polyfacet/facet/pkg/math3d"
	"github.com/polyfacet/facet/pkg/models"
)

// cubeScene builds a scene with one unit cube at the origin, viewed from
// the given camera position.
func cubeScene(t *testing.T, camPos math3d.Point3) *Scene {
	t.Helper()
	cam := MustCamera()
	cam.Aspect = 1
	cam.Frame.Origin = camPos
	if err := cam.LookAt(math3d.Origin3()); err != nil {
		t.Fatalf("LookAt: %v", err)
	}

	scene := NewScene(cam)
	scene.AddModel(models.NewModel(models.NewHexahedron()))
	scene.AddLight(NewLight(camPos, 1))
	return scene
}

func TestRenderWithoutCamera(t *testing.T) {
	r := NewSceneRenderer()
	scene := &Scene{}
	if _, err := r.Render(scene, NewCanvas(10, 10)); !errors.Is(err, ErrNoCamera) {
		t.Errorf("err = %v, want ErrNoCamera", err)
	}
}

func TestBackfaceCullingCube(t *testing.T) {
	tests := []struct {
		name   string
		camPos math3d.Point3
		cull   bool
		want   int
	}{
		{"corner view culled", math3d.P3(3, 3, 3), true, 3},
		{"face-on view culled", math3d.P3(0, 0, 5), true, 1},
		{"corner view unculled", math3d.P3(3, 3, 3), false, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := cubeScene(t, tt.camPos)
			r := NewSceneRenderer()
			r.BackfaceCulling = tt.cull

			got, err := r.Render(scene, NewCanvas(64, 64))
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if got != tt.want {
				t.Errorf("rendered %d polygons, want %d", got, tt.want)
			}
		})
	}
}

func TestPolygonCountAccumulatesAcrossModels(t *testing.T) {
	scene := cubeScene(t, math3d.P3(0, 0, 6))
	second := models.NewModel(models.NewHexahedron())
	second.Mesh.Translate(math3d.V3(2.5, 0, 0))
	scene.AddModel(second)

	r := NewSceneRenderer()
	r.BackfaceCulling = false

	got, err := r.Render(scene, NewCanvas(64, 64))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != 12 {
		t.Errorf("rendered %d polygons across two cubes, want 12", got)
	}
}

func TestFrustumCullingSkipsOffscreenModel(t *testing.T) {
	scene := cubeScene(t, math3d.P3(0, 0, 5))
	scene.Models[0].Mesh.Translate(math3d.V3(500, 0, 0))

	r := NewSceneRenderer()
	got, err := r.Render(scene, NewCanvas(64, 64))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != 0 {
		t.Errorf("rendered %d polygons for a model far outside the view, want 0", got)
	}
}

func TestSolidFillWritesPixels(t *testing.T) {
	scene := cubeScene(t, math3d.P3(0, 0, 4))
	scene.Models[0].SetColor(ColorRed)

	r := NewSceneRenderer()
	r.Shading = ShadeFlat

	canvas := NewCanvas(64, 64)
	if _, err := r.Render(scene, canvas); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if got := canvas.PixelAt(32, 32); got != ColorRed {
		t.Errorf("canvas center = %v, want flat red cube face", got)
	}
	if got := canvas.PixelAt(1, 1); got != ColorBlack {
		t.Errorf("canvas corner = %v, want background", got)
	}
}

func TestDepthBufferBeatsDrawOrder(t *testing.T) {
	// A near triangle added before a far one: the far one draws second
	// but must not overwrite.
	tri := func(z float64) *models.Mesh {
		m, err := models.NewMesh(
			[]math3d.Point3{
				math3d.P3(-2, -2, z),
				math3d.P3(2, -2, z),
				math3d.P3(0, 2, z),
			},
			[]models.Polygon{models.Poly(0, 1, 2)},
		)
		if err != nil {
			t.Fatalf("NewMesh: %v", err)
		}
		return m
	}

	near := models.NewModel(tri(0))
	near.SetColor(ColorRed)
	far := models.NewModel(tri(-2))
	far.SetColor(ColorBlue)

	cam := MustCamera()
	cam.Aspect = 1
	cam.Frame.Origin = math3d.P3(0, 0, 5)

	scene := NewScene(cam)
	scene.AddModel(near)
	scene.AddModel(far)

	r := NewSceneRenderer()
	r.Shading = ShadeFlat
	r.BackfaceCulling = false

	canvas := NewCanvas(64, 64)
	if _, err := r.Render(scene, canvas); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := canvas.PixelAt(32, 32); got != ColorRed {
		t.Errorf("center pixel = %v, want near triangle's red", got)
	}
}

func TestGouraudBrightestFacingLight(t *testing.T) {
	scene := cubeScene(t, math3d.P3(0, 0, 4))
	scene.Models[0].SetColor(ColorWhite)

	r := NewSceneRenderer()
	canvas := NewCanvas(64, 64)
	if _, err := r.Render(scene, canvas); err != nil {
		t.Fatalf("Render: %v", err)
	}

	center := canvas.PixelAt(32, 32)
	if center.R == 0 {
		t.Fatal("lit face rendered black")
	}
	// Cube vertex normals point along the corner diagonals, so even the
	// face center interpolates below full brightness.
	if center.R == 255 {
		t.Errorf("center = %v, want dimmer than full white under diagonal normals", center)
	}
	if center.R != center.G || center.G != center.B {
		t.Errorf("white light on white cube produced tinted pixel %v", center)
	}
}

func TestToonShadingBandLimit(t *testing.T) {
	scene := cubeScene(t, math3d.P3(2, 2, 4))
	scene.Models[0].SetColor(ColorWhite)

	r := NewSceneRenderer()
	r.Shading = ShadeToon
	r.ToonBands = 4

	canvas := NewCanvas(64, 64)
	if _, err := r.Render(scene, canvas); err != nil {
		t.Fatalf("Render: %v", err)
	}

	levels := map[uint8]bool{}
	for y := 0; y < canvas.Height; y++ {
		for x := 0; x < canvas.Width; x++ {
			px := canvas.PixelAt(x, y)
			if px == ColorBlack {
				continue // background
			}
			levels[px.R] = true
		}
	}
	if len(levels) == 0 {
		t.Fatal("toon render produced no pixels")
	}
	if len(levels) > r.ToonBands {
		t.Errorf("toon shading produced %d brightness levels, want at most %d", len(levels), r.ToonBands)
	}
}

func TestToonWithoutLightsDrawsNothing(t *testing.T) {
	scene := cubeScene(t, math3d.P3(0, 0, 4))
	scene.Lights = nil

	r := NewSceneRenderer()
	r.Shading = ShadeToon

	canvas := NewCanvas(64, 64)
	count, err := r.Render(scene, canvas)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if count == 0 {
		t.Error("polygons should still be counted when the toon fill is skipped")
	}
	if got := canvas.PixelAt(32, 32); got != ColorBlack {
		t.Errorf("toon fill with no lights wrote %v", got)
	}
}

func TestWireframeUsesComplementColor(t *testing.T) {
	scene := cubeScene(t, math3d.P3(0, 0, 4))
	scene.Models[0].SetColor(color.RGBA{R: 255, A: 255})

	r := NewSceneRenderer()
	r.Solid = false
	r.Wireframe = true

	canvas := NewCanvas(64, 64)
	if _, err := r.Render(scene, canvas); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := models.ComplementColor(color.RGBA{R: 255, A: 255})
	found := false
	for _, px := range canvas.Pixels {
		if px == want {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("no wireframe pixels in complement color %v", want)
	}
}

func TestMeshWithoutNormalsRendersUnlit(t *testing.T) {
	m, err := models.NewMesh(
		[]math3d.Point3{
			math3d.P3(-2, -2, 0),
			math3d.P3(2, -2, 0),
			math3d.P3(0, 2, 0),
		},
		[]models.Polygon{models.Poly(0, 1, 2)},
	)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	model := models.NewModel(m)
	model.SetColor(ColorGreen)

	cam := MustCamera()
	cam.Aspect = 1
	cam.Frame.Origin = math3d.P3(0, 0, 5)

	scene := NewScene(cam)
	scene.AddModel(model)
	scene.AddLight(NewLight(math3d.P3(0, 0, 10), 1))

	r := NewSceneRenderer() // Gouraud requested, but no normals available
	canvas := NewCanvas(64, 64)
	count, err := r.Render(scene, canvas)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if count != 1 {
		t.Fatalf("rendered %d polygons, want 1", count)
	}
	if got := canvas.PixelAt(32, 32); got != ColorGreen {
		t.Errorf("unlit fallback rendered %v, want solid green", got)
	}
}

func TestGeometryAboveCenterRendersInTopHalf(t *testing.T) {
	// A triangle entirely above the view center must land in the top
	// half of the finished canvas.
	m, err := models.NewMesh(
		[]math3d.Point3{
			math3d.P3(-1, 1.5, 0),
			math3d.P3(1, 1.5, 0),
			math3d.P3(0, 2.5, 0),
		},
		[]models.Polygon{models.Poly(0, 1, 2)},
	)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	model := models.NewModel(m)
	model.SetColor(ColorRed)

	cam := MustCamera()
	cam.Aspect = 1
	cam.Frame.Origin = math3d.P3(0, 0, 6)

	scene := NewScene(cam)
	scene.AddModel(model)

	r := NewSceneRenderer()
	r.Shading = ShadeFlat
	r.BackfaceCulling = false

	canvas := NewCanvas(64, 64)
	if _, err := r.Render(scene, canvas); err != nil {
		t.Fatalf("Render: %v", err)
	}

	topHalf, bottomHalf := 0, 0
	for y := 0; y < canvas.Height; y++ {
		for x := 0; x < canvas.Width; x++ {
			if canvas.PixelAt(x, y) != ColorRed {
				continue
			}
			if y < canvas.Height/2 {
				topHalf++
			} else {
				bottomHalf++
			}
		}
	}
	if topHalf == 0 {
		t.Fatal("triangle above the view center produced no pixels in the top half")
	}
	if bottomHalf != 0 {
		t.Errorf("triangle above the view center leaked %d pixels into the bottom half", bottomHalf)
	}
}

func TestParallelProjectionSkipsGeometryBehindCamera(t *testing.T) {
	m, err := models.NewMesh(
		[]math3d.Point3{
			math3d.P3(-2, -2, 10),
			math3d.P3(2, -2, 10),
			math3d.P3(0, 2, 10),
		},
		[]models.Polygon{models.Poly(0, 1, 2)},
	)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	model := models.NewModel(m)
	model.SetColor(ColorRed)

	cam := MustCamera()
	cam.Projection = ProjectionParallel
	cam.Aspect = 1
	cam.Frame.Origin = math3d.P3(0, 0, 5)

	scene := NewScene(cam)
	scene.AddModel(model)

	r := NewSceneRenderer()
	r.Shading = ShadeFlat
	r.BackfaceCulling = false
	r.FrustumCulling = false

	canvas := NewCanvas(64, 64)
	count, err := r.Render(scene, canvas)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if count != 0 {
		t.Errorf("rendered %d polygons behind the camera, want 0", count)
	}
	if got := canvas.PixelAt(32, 32); got != ColorBlack {
		t.Errorf("behind-camera triangle wrote %v", got)
	}
}

func TestRenderWithAxisDrawsOverlay(t *testing.T) {
	scene := cubeScene(t, math3d.P3(0, 0, 5))
	scene.Models = nil // overlay only

	r := NewSceneRenderer()
	canvas := NewCanvas(64, 64)
	if _, err := r.RenderWithAxis(scene, canvas, math3d.P3(0, -1, 0), math3d.P3(0, 1, 0)); err != nil {
		t.Fatalf("RenderWithAxis: %v", err)
	}

	found := false
	for _, px := range canvas.Pixels {
		if px == ColorGray {
			found = true
			break
		}
	}
	if !found {
		t.Error("axis line not drawn")
	}
}
