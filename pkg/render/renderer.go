package render

import (
	"errors"
	"image/color"

	"github.com/polyfacet/facet/pkg/math3d"
	"github.com/polyfacet/facet/pkg/models"
)

// ErrNoCamera is returned when a scene is rendered without a camera.
var ErrNoCamera = errors.New("render: scene has no camera")

const (
	// axisLength is the world-space length of the debug axis segments.
	axisLength = 1.5

	// axisExtend is how far a custom rotation-axis line is extended past
	// its two defining points so it stays visible across the scene.
	axisExtend = 25.0

	// normalLength is the world-space length of normal overlay lines.
	normalLength = 0.25
)

// SceneRenderer rasterizes scenes onto a canvas. All options are plain
// fields, toggled by the caller between frames.
type SceneRenderer struct {
	Solid           bool // fill polygons
	Wireframe       bool // draw polygon edges and vertex markers
	ShowNormals     bool // draw vertex and face normal overlays
	ShowAxes        bool // draw world axis segments at the origin
	ShowLights      bool // draw markers at light positions
	BackfaceCulling bool // drop polygons facing away from the camera
	DepthTest       bool // closer-wins z-buffer; draw-order overwrite when off
	FrustumCulling  bool // skip models entirely outside the view volume

	Shading   ShadingMode
	ToonBands int
}

// NewSceneRenderer creates a renderer with the standard configuration:
// solid Gouraud-shaded fill with backface culling, depth testing and
// frustum culling.
func NewSceneRenderer() *SceneRenderer {
	return &SceneRenderer{
		Solid:           true,
		BackfaceCulling: true,
		DepthTest:       true,
		FrustumCulling:  true,
		Shading:         ShadeGouraud,
		ToonBands:       4,
	}
}

// Render draws the scene onto the canvas and returns the total number of
// polygons rasterized across all models (polygons removed by culling are
// not counted).
func (r *SceneRenderer) Render(scene *Scene, canvas *Canvas) (int, error) {
	return r.renderFrame(scene, canvas, false, math3d.Point3{}, math3d.Point3{})
}

// RenderWithAxis renders the scene with an extra debug line through the
// two given points, extended well past both so the axis of a rotation
// stays visible.
func (r *SceneRenderer) RenderWithAxis(scene *Scene, canvas *Canvas, p1, p2 math3d.Point3) (int, error) {
	return r.renderFrame(scene, canvas, true, p1, p2)
}

func (r *SceneRenderer) renderFrame(scene *Scene, canvas *Canvas, showAxis bool, axisP1, axisP2 math3d.Point3) (int, error) {
	if scene.Camera == nil {
		return 0, ErrNoCamera
	}

	canvas.Clear(scene.Background)

	g2s := scene.Camera.GlobalToScreen(canvas.Width, canvas.Height)

	r.drawOverlays(scene, canvas, g2s, showAxis, axisP1, axisP2)

	var frustum Frustum
	if r.FrustumCulling {
		frustum = ExtractFrustum(scene.Camera.ViewMatrix().Mul(scene.Camera.ProjectionMatrix()))
	}

	count := 0
	for _, model := range scene.Models {
		count += r.renderModel(scene, canvas, g2s, frustum, model)
	}

	// Rasterization runs bottom-up (row 0 at the bottom); flip once so
	// row 0 is the top of the finished image.
	canvas.FlipVertical()
	return count, nil
}

// drawOverlays draws the world axes, the optional custom axis line, and
// light markers. Overlays render before models so geometry draws over
// them.
func (r *SceneRenderer) drawOverlays(scene *Scene, canvas *Canvas, g2s math3d.Transform3D, showAxis bool, axisP1, axisP2 math3d.Point3) {
	if r.ShowAxes {
		o := math3d.Origin3()
		drawLine3D(canvas, g2s, o, o.Add(math3d.V3(axisLength, 0, 0)), ColorRed)
		drawLine3D(canvas, g2s, o, o.Add(math3d.V3(0, axisLength, 0)), ColorGreen)
		drawLine3D(canvas, g2s, o, o.Add(math3d.V3(0, 0, axisLength)), ColorBlue)
	}

	if showAxis {
		if dir, err := axisP2.Sub(axisP1).Unit(); err == nil {
			a := axisP1.Add(dir.Scale(-axisExtend))
			b := axisP2.Add(dir.Scale(axisExtend))
			drawLine3D(canvas, g2s, a, b, ColorGray)
		}
	}

	if r.ShowLights {
		for _, l := range scene.Lights {
			if sp, ok := projectPoint(g2s, l.Position); ok {
				canvas.DrawMarker(int(sp.X), int(sp.Y), ColorYellow)
			}
		}
	}
}

// renderModel draws one model and returns the number of polygons
// rasterized.
func (r *SceneRenderer) renderModel(scene *Scene, canvas *Canvas, g2s math3d.Transform3D, frustum Frustum, model *models.Model) int {
	mesh := model.Mesh
	if mesh == nil || len(mesh.Polygons) == 0 {
		return 0
	}

	l2g := mesh.Frame.LocalToGlobal()

	if r.FrustumCulling {
		lmin, lmax := mesh.Bounds()
		if !frustum.IntersectsAABB(TransformAABB(AABB{Min: lmin, Max: lmax}, l2g)) {
			return 0
		}
	}

	// Lift vertices and normals to global space once per model. Normal
	// directions go through the linear part and are re-normalized, which
	// keeps them usable under non-uniform frame scale.
	gverts := make([]math3d.Point3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		gverts[i] = l2g.ApplyToPoint(v)
	}

	var gnormals []math3d.UVec3
	if mesh.HasNormals() {
		gnormals = make([]math3d.UVec3, len(mesh.Normals))
		for i, n := range mesh.Normals {
			gnormals[i] = l2g.ApplyToVector(n.Vec3()).UnitOr(n)
		}
	}

	spts := make([]screenPoint, len(gverts))
	visible := make([]bool, len(gverts))
	for i, p := range gverts {
		spts[i], visible[i] = projectPoint(g2s, p)
	}

	// Lighting shaders need normals; fall back to the unlit shader when
	// the mesh carries none.
	mode := r.Shading
	if gnormals == nil {
		mode = ShadeFlat
	}
	shader := shaderFor(mode)

	// A toon fill with no lights contributes nothing.
	fillEnabled := r.Solid && !(mode == ShadeToon && len(scene.Lights) == 0)

	wireColor := models.ComplementColor(model.Material.Color)

	count := 0
	for _, poly := range mesh.Polygons {
		if !poly.IsValid() {
			continue
		}
		if r.BackfaceCulling && r.cullBackface(poly, gverts, gnormals, scene.Camera) {
			continue
		}
		if !projectable(poly, visible) {
			continue
		}
		count++

		surf := r.buildSurface(scene, model, mesh, poly, gverts, gnormals, mode)
		ppts := make([]screenPoint, len(poly.Indices))
		for i, idx := range poly.Indices {
			ppts[i] = spts[idx]
		}

		if fillEnabled {
			fillPolygon(canvas, ppts, r.DepthTest, func(weights []float64) (color.RGBA, bool) {
				return shader.fragment(surf, weights)
			})
		}

		if r.Wireframe {
			for i := range ppts {
				a, b := ppts[i], ppts[(i+1)%len(ppts)]
				canvas.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), wireColor)
			}
			for _, p := range ppts {
				canvas.DrawMarker(int(p.X), int(p.Y), wireColor)
			}
		}

		if r.ShowNormals && gnormals != nil {
			r.drawNormals(canvas, g2s, poly, gverts, gnormals)
		}
	}
	return count
}

// cullBackface reports whether a polygon faces away from the camera.
// The polygon's averaged vertex normal is tested against the fixed view
// direction for parallel projection, or against the direction from the
// camera to the polygon centroid for perspective. A polygon facing the
// camera has a negative dot product. Degenerate normals keep the
// polygon.
func (r *SceneRenderer) cullBackface(poly models.Polygon, gverts []math3d.Point3, gnormals []math3d.UVec3, cam *Camera) bool {
	if gnormals == nil {
		return false
	}

	var avg math3d.Vec3
	for _, idx := range poly.Indices {
		avg = avg.Add(gnormals[idx].Vec3())
	}
	if avg.LenSq() == 0 {
		return false
	}

	var view math3d.Vec3
	if cam.Projection == ProjectionParallel {
		view = cam.ViewDirection().Vec3()
	} else {
		var centroid math3d.Vec3
		for _, idx := range poly.Indices {
			centroid = centroid.Add(gverts[idx].Vec3())
		}
		centroid = centroid.Scale(1 / float64(len(poly.Indices)))
		view = centroid.Sub(cam.Position().Vec3())
	}

	return avg.Dot(view) >= 0
}

// buildSurface gathers one polygon's per-vertex attributes, including
// precomputed vertex lighting for Gouraud shading.
func (r *SceneRenderer) buildSurface(scene *Scene, model *models.Model, mesh *models.Mesh, poly models.Polygon, gverts []math3d.Point3, gnormals []math3d.UVec3, mode ShadingMode) *polygonSurface {
	n := len(poly.Indices)
	surf := &polygonSurface{
		material:  model.Material,
		uvs:       make([]math3d.Vec2, n),
		positions: make([]math3d.Point3, n),
		lights:    scene.Lights,
		bands:     r.ToonBands,
	}

	hasUVs := mesh.HasUVs()
	for i, idx := range poly.Indices {
		surf.positions[i] = gverts[idx]
		if hasUVs {
			surf.uvs[i] = mesh.UVs[idx]
		}
	}

	if gnormals != nil {
		surf.normals = make([]math3d.UVec3, n)
		for i, idx := range poly.Indices {
			surf.normals[i] = gnormals[idx]
		}
	}

	if mode == ShadeGouraud {
		surf.vertexLight = make([][3]float64, n)
		for i := range poly.Indices {
			surf.vertexLight[i] = lightAccum(scene.Lights, surf.positions[i], surf.normals[i])
		}
	}
	return surf
}

// drawNormals draws a short line along each vertex normal and one along
// the polygon's averaged normal from its centroid.
func (r *SceneRenderer) drawNormals(canvas *Canvas, g2s math3d.Transform3D, poly models.Polygon, gverts []math3d.Point3, gnormals []math3d.UVec3) {
	var centroid, avg math3d.Vec3
	for _, idx := range poly.Indices {
		p := gverts[idx]
		drawLine3D(canvas, g2s, p, p.Add(gnormals[idx].Scale(normalLength)), ColorYellow)
		centroid = centroid.Add(p.Vec3())
		avg = avg.Add(gnormals[idx].Vec3())
	}

	c := math3d.Origin3().Add(centroid.Scale(1 / float64(len(poly.Indices))))
	if u, err := avg.Unit(); err == nil {
		drawLine3D(canvas, g2s, c, c.Add(u.Scale(normalLength)), ColorMagenta)
	}
}

// projectable reports whether every vertex of the polygon projected in
// front of the camera.
func projectable(poly models.Polygon, visible []bool) bool {
	for _, idx := range poly.Indices {
		if !visible[idx] {
			return false
		}
	}
	return true
}

// projectPoint carries a world point through the combined transform,
// reporting false for points that cannot land on screen: at or behind
// the camera plane (w <= 0, perspective only), or closer than the near
// plane (NDC z > 1). The near-plane check is what rejects behind-camera
// geometry under parallel projection, where w stays 1.
func projectPoint(g2s math3d.Transform3D, p math3d.Point3) (screenPoint, bool) {
	h := g2s.ApplyToH(math3d.HPoint(p))
	if h.W <= 0 {
		return screenPoint{}, false
	}
	inv := 1 / h.W
	sp := screenPoint{X: h.X * inv, Y: h.Y * inv, Z: h.Z * inv}
	if sp.Z > 1 {
		return screenPoint{}, false
	}
	return sp, true
}

// drawLine3D projects a world-space segment and draws it with Bresenham.
// Segments with an endpoint behind the camera are skipped rather than
// clipped.
func drawLine3D(canvas *Canvas, g2s math3d.Transform3D, a, b math3d.Point3, col color.RGBA) {
	sa, ok := projectPoint(g2s, a)
	if !ok {
		return
	}
	sb, ok := projectPoint(g2s, b)
	if !ok {
		return
	}
	canvas.DrawLine(int(sa.X), int(sa.Y), int(sb.X), int(sb.Y), col)
}
