package math3d

import "errors"

// ErrCoincidentPoints is returned when a line is constructed from two equal
// points.
var ErrCoincidentPoints = errors.New("math3d: cannot build a line through coincident points")

// Plane represents an infinite plane as an origin point plus a unit normal.
type Plane struct {
	Origin Point3
	Normal UVec3
}

// NewPlane creates a plane from an origin and a (not necessarily unit)
// normal. A zero normal is an error.
func NewPlane(origin Point3, normal Vec3) (Plane, error) {
	n, err := normal.Unit()
	if err != nil {
		return Plane{}, err
	}
	return Plane{Origin: origin, Normal: n}, nil
}

// SignedDistance returns the distance of p from the plane, positive on the
// side the normal points to.
func (pl Plane) SignedDistance(p Point3) float64 {
	return pl.Normal.DotVec(p.Sub(pl.Origin))
}

// Line3 represents an infinite line as an origin point plus a unit
// direction.
type Line3 struct {
	Origin Point3
	Dir    UVec3
}

// NewLine3 creates a line from an origin and a (not necessarily unit)
// direction. A zero direction is an error.
func NewLine3(origin Point3, dir Vec3) (Line3, error) {
	d, err := dir.Unit()
	if err != nil {
		return Line3{}, err
	}
	return Line3{Origin: origin, Dir: d}, nil
}

// LineThrough creates the line passing through p and q.
// Coincident points are an error.
func LineThrough(p, q Point3) (Line3, error) {
	d, err := q.Sub(p).Unit()
	if err != nil {
		return Line3{}, ErrCoincidentPoints
	}
	return Line3{Origin: p, Dir: d}, nil
}

// At returns the point at parameter t along the line.
func (l Line3) At(t float64) Point3 {
	return l.Origin.Add(l.Dir.Scale(t))
}
