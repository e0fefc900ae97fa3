package models

import (
	"errors"
	"math"

	"github.com/polyfacet/facet/pkg/math3d"
)

var (
	// ErrLatheProfile is returned when a lathe profile has fewer than 2
	// points.
	ErrLatheProfile = errors.New("models: lathe profile needs at least 2 points")

	// ErrLatheSegments is returned when a lathe is requested with fewer
	// than 3 revolution steps.
	ErrLatheSegments = errors.New("models: lathe needs at least 3 segments")

	// ErrGridResolution is returned when a surface grid is requested with
	// zero cells along either axis.
	ErrGridResolution = errors.New("models: surface grid needs at least 1 cell per axis")

	// ErrGridDomain is returned when a surface grid domain is empty or
	// inverted.
	ErrGridDomain = errors.New("models: surface grid domain must have positive extent")
)

// Lathe creates a surface of revolution: the profile polyline is swept
// around the axis in the given number of equal angular steps, adjacent
// copies are stitched with quads, and the first and last profile points
// trace n-gon caps closing the surface at both ends.
func Lathe(profile []math3d.Point3, axis math3d.Line3, segments int) (*Mesh, error) {
	if len(profile) < 2 {
		return nil, ErrLatheProfile
	}
	if segments < 3 {
		return nil, ErrLatheSegments
	}

	np := len(profile)
	vertices := make([]math3d.Point3, 0, segments*np)
	for k := 0; k < segments; k++ {
		angle := 2 * math.Pi * float64(k) / float64(segments)
		rot := math3d.RotationAroundLine(axis, angle)
		for _, p := range profile {
			vertices = append(vertices, rot.ApplyToPoint(p))
		}
	}

	polygons := make([]Polygon, 0, segments*(np-1)+2)
	for k := 0; k < segments; k++ {
		k1 := (k + 1) % segments
		for j := 0; j < np-1; j++ {
			polygons = append(polygons, Poly(
				k*np+j,
				k1*np+j,
				k1*np+j+1,
				k*np+j+1,
			))
		}
	}

	// End caps: the rings traced by the first and last profile points.
	top := make([]int, segments)
	bottom := make([]int, segments)
	for k := 0; k < segments; k++ {
		top[k] = k * np
		bottom[segments-1-k] = k*np + np - 1
	}
	polygons = append(polygons, Poly(top...), Poly(bottom...))

	m, err := NewMesh(vertices, polygons)
	if err != nil {
		return nil, err
	}
	m.GenerateNormals()
	m.GenerateTextureCoords()
	return m, nil
}

// SurfaceGrid samples f over the rectangular domain [x0,x1]x[y0,y1] on a
// regular (nx+1)x(ny+1) vertex grid and triangulates each cell with two
// triangles. Non-finite samples are clamped to z=0 so a partially
// undefined function still yields a renderable surface.
func SurfaceGrid(f func(x, y float64) float64, x0, x1, y0, y1 float64, nx, ny int) (*Mesh, error) {
	if nx < 1 || ny < 1 {
		return nil, ErrGridResolution
	}
	if x1 <= x0 || y1 <= y0 {
		return nil, ErrGridDomain
	}

	cols := nx + 1
	rows := ny + 1
	vertices := make([]math3d.Point3, 0, cols*rows)
	for j := 0; j < rows; j++ {
		y := y0 + (y1-y0)*float64(j)/float64(ny)
		for i := 0; i < cols; i++ {
			x := x0 + (x1-x0)*float64(i)/float64(nx)
			z := f(x, y)
			if math.IsNaN(z) || math.IsInf(z, 0) {
				z = 0
			}
			vertices = append(vertices, math3d.P3(x, y, z))
		}
	}

	polygons := make([]Polygon, 0, 2*nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a := j*cols + i
			b := a + 1
			c := a + cols
			d := c + 1
			polygons = append(polygons, Poly(a, b, d), Poly(a, d, c))
		}
	}

	m, err := NewMesh(vertices, polygons)
	if err != nil {
		return nil, err
	}
	m.GenerateNormals()
	m.GenerateTextureCoords()
	return m, nil
}
