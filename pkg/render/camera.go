package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/polyfacet/facet/pkg/math3d"
)

// ErrCameraParam is returned for out-of-range camera parameters.
var ErrCameraParam = errors.New("render: invalid camera parameter")

// Projection selects how the camera maps view space to NDC.
type Projection int

const (
	// ProjectionPerspective is a perspective frustum projection.
	ProjectionPerspective Projection = iota

	// ProjectionParallel is an orthographic projection.
	ProjectionParallel
)

// Camera views the scene through an owned coordinate frame. The camera
// looks along the frame's Forward axis with the frame's Up as the screen
// up direction; view space is right-handed with the scene in front of
// the camera at negative z.
type Camera struct {
	Frame math3d.CoordFrame

	FOV    float64 // Vertical field of view in radians (perspective)
	Aspect float64 // Width / height
	Near   float64 // Near clipping plane distance
	Far    float64 // Far clipping plane distance

	// HalfWidth is the horizontal half-extent of the view volume for
	// parallel projection.
	HalfWidth float64

	Projection Projection
}

// NewCamera creates a perspective camera at the given position looking
// down the world -Z axis, after validating the projection parameters.
func NewCamera(fov, aspect, near, far float64) (*Camera, error) {
	if fov <= 0 || fov >= math.Pi {
		return nil, fmt.Errorf("fov %v not in (0, pi): %w", fov, ErrCameraParam)
	}
	if aspect <= 0 {
		return nil, fmt.Errorf("aspect %v: %w", aspect, ErrCameraParam)
	}
	if near <= 0 || far <= near {
		return nil, fmt.Errorf("clip planes near=%v far=%v: %w", near, far, ErrCameraParam)
	}

	frame := math3d.DefaultFrame()
	// Face the scene at -Z. Right stays +X so the frame's right axis
	// matches screen right; camera bases use right = forward x up.
	frame.Forward = math3d.UnitZ().Negate()

	return &Camera{
		Frame:     frame,
		FOV:       fov,
		Aspect:    aspect,
		Near:      near,
		Far:       far,
		HalfWidth: 2,
	}, nil
}

// MustCamera creates a camera with the standard 60-degree perspective
// setup, panicking on invalid parameters. Intended for tests and
// examples where the parameters are constants.
func MustCamera() *Camera {
	c, err := NewCamera(math.Pi/3, 16.0/9.0, 0.1, 1000)
	if err != nil {
		panic(err)
	}
	return c
}

// Position returns the camera's world position.
func (c *Camera) Position() math3d.Point3 {
	return c.Frame.Origin
}

// ViewDirection returns the direction the camera faces.
func (c *Camera) ViewDirection() math3d.UVec3 {
	return c.Frame.Forward
}

// MoveForward moves the camera along its view direction.
func (c *Camera) MoveForward(distance float64) {
	c.Frame.Translate(c.Frame.Forward.Scale(distance))
}

// MoveRight strafes the camera along its right axis.
func (c *Camera) MoveRight(distance float64) {
	c.Frame.Translate(c.Frame.Right.Scale(distance))
}

// MoveUp moves the camera along its up axis.
func (c *Camera) MoveUp(distance float64) {
	c.Frame.Translate(c.Frame.Up.Scale(distance))
}

// Rotate applies a rotation-only transform to the camera's orientation.
func (c *Camera) Rotate(t math3d.Transform3D) {
	c.Frame.Rotate(t)
}

// LookAt orients the camera toward a target point, keeping the current
// up direction where possible and falling back to world up when the
// target is directly above or below. The basis is rebuilt with
// right = forward x up so the frame's right axis matches screen right.
func (c *Camera) LookAt(target math3d.Point3) error {
	forward, err := target.Sub(c.Frame.Origin).Unit()
	if err != nil {
		return fmt.Errorf("look at %v: %w", target, err)
	}

	// Fall back through world axes when the view direction is parallel
	// to the reference up.
	var right math3d.UVec3
	for _, up := range []math3d.UVec3{c.Frame.Up, math3d.UnitY(), math3d.UnitZ()} {
		right, err = forward.Vec3().Cross(up.Vec3()).Unit()
		if err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("look at %v: %w", target, err)
	}
	up, err := right.Vec3().Cross(forward.Vec3()).Unit()
	if err != nil {
		return fmt.Errorf("look at %v: %w", target, err)
	}

	c.Frame.Forward = forward
	c.Frame.Right = right
	c.Frame.Up = up
	return nil
}

// ViewMatrix returns the world-to-view transform. The scene in front of
// the camera lands on the negative z axis.
func (c *Camera) ViewMatrix() math3d.Transform3D {
	eye := c.Frame.Origin
	target := eye.Add(c.Frame.Forward.Vec3())
	view, err := math3d.LookAt(eye, target, c.Frame.Up.Vec3())
	if err != nil {
		// Forward is a unit vector, so eye != target; unreachable.
		return math3d.Identity()
	}
	return view
}

// ProjectionMatrix returns the view-to-NDC transform for the configured
// projection mode.
func (c *Camera) ProjectionMatrix() math3d.Transform3D {
	if c.Projection == ProjectionParallel {
		return math3d.Parallel(c.HalfWidth, c.Aspect, c.Near, c.Far)
	}
	return math3d.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// ScreenTransform maps NDC to pixel coordinates for a canvas of the
// given size. Rows are laid out bottom-up during rasterization (NDC
// y = +1 lands on the highest row index); the renderer flips the
// finished frame once so row 0 is the top of the image. NDC z passes
// through unchanged for the depth buffer.
func (c *Camera) ScreenTransform(width, height int) math3d.Transform3D {
	w := float64(width)
	h := float64(height)
	return math3d.Scaling(math3d.V3(w/2, h/2, 1)).
		Mul(math3d.Translation(math3d.V3(w/2, h/2, 0)))
}

// GlobalToScreen returns the full world-to-pixel transform: view, then
// projection, then viewport.
func (c *Camera) GlobalToScreen(width, height int) math3d.Transform3D {
	return c.ViewMatrix().
		Mul(c.ProjectionMatrix()).
		Mul(c.ScreenTransform(width, height))
}
