package render

import (
	"image/color"
	"math"
)

// screenPoint is a polygon vertex projected to pixel coordinates, with
// its NDC depth for the z-buffer (larger z = closer).
type screenPoint struct {
	X, Y float64
	Z    float64
}

// degenerateEps rejects near-singular bilinear solves and zero-area
// triangles.
const degenerateEps = 1e-12

// fragmentFunc resolves the color of one covered pixel from the
// polygon's per-vertex interpolation weights. The weights slice is
// reused between pixels and must not be retained. Returning false skips
// the pixel.
type fragmentFunc func(weights []float64) (color.RGBA, bool)

// fillPolygon rasterizes a projected polygon. Four-vertex polygons take
// the bilinear quad path; everything else fan-triangulates with
// barycentric coverage. Both paths express each covered pixel as a
// per-vertex weight vector, so depth here and any attribute in the
// fragment callback interpolate by the same rule. Depth is compared
// closer-wins when depthTest is set; otherwise later writes overwrite
// earlier ones.
func fillPolygon(c *Canvas, pts []screenPoint, depthTest bool, frag fragmentFunc) {
	switch {
	case len(pts) == 4:
		fillQuad(c, pts, depthTest, frag)
	case len(pts) >= 3:
		fillFan(c, pts, depthTest, frag)
	}
}

// writeFragment applies bounds check, depth test and the fragment
// callback for one pixel.
func writeFragment(c *Canvas, x, y int, z float64, depthTest bool, weights []float64, frag fragmentFunc) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	if depthTest && z <= c.Depth[y*c.Width+x] {
		return
	}
	col, ok := frag(weights)
	if !ok {
		return
	}
	c.Pixels[y*c.Width+x] = col
	c.Depth[y*c.Width+x] = z
}

// fillQuad covers a 4-vertex polygon by inverting the bilinear map at
// every pixel of its bounding box: solve p - p0 = a*(p1-p0) + b*(p3-p0)
// and reject pixels whose (a, b) fall outside the unit square. A
// near-zero determinant means the quad is degenerate in screen space
// and produces no pixels.
func fillQuad(c *Canvas, pts []screenPoint, depthTest bool, frag fragmentFunc) {
	e1x, e1y := pts[1].X-pts[0].X, pts[1].Y-pts[0].Y
	e2x, e2y := pts[3].X-pts[0].X, pts[3].Y-pts[0].Y

	det := e1x*e2y - e1y*e2x
	if math.Abs(det) < degenerateEps {
		return
	}
	invDet := 1 / det

	minX, minY, maxX, maxY := boundsOf(pts, c)
	weights := make([]float64, 4)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) - pts[0].X
			dy := float64(y) - pts[0].Y

			a := (dx*e2y - dy*e2x) * invDet
			b := (e1x*dy - e1y*dx) * invDet
			if a < 0 || a > 1 || b < 0 || b > 1 {
				continue
			}

			weights[0] = (1 - a) * (1 - b)
			weights[1] = a * (1 - b)
			weights[2] = a * b
			weights[3] = (1 - a) * b

			z := weights[0]*pts[0].Z + weights[1]*pts[1].Z +
				weights[2]*pts[2].Z + weights[3]*pts[3].Z
			writeFragment(c, x, y, z, depthTest, weights, frag)
		}
	}
}

// fillFan fan-triangulates an n-gon from vertex 0 and covers each
// triangle with barycentric coordinates via the edge-function formula.
// Pixels with any negative coordinate lie outside the triangle.
func fillFan(c *Canvas, pts []screenPoint, depthTest bool, frag fragmentFunc) {
	weights := make([]float64, len(pts))

	for i := 1; i < len(pts)-1; i++ {
		a, b, d := pts[0], pts[i], pts[i+1]

		denom := (b.Y-d.Y)*(a.X-d.X) + (d.X-b.X)*(a.Y-d.Y)
		if math.Abs(denom) < degenerateEps {
			continue
		}
		invDenom := 1 / denom

		minX, minY, maxX, maxY := boundsOf([]screenPoint{a, b, d}, c)

		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				px, py := float64(x), float64(y)

				wa := ((b.Y-d.Y)*(px-d.X) + (d.X-b.X)*(py-d.Y)) * invDenom
				wb := ((d.Y-a.Y)*(px-d.X) + (a.X-d.X)*(py-d.Y)) * invDenom
				wd := 1 - wa - wb
				if wa < 0 || wb < 0 || wd < 0 {
					continue
				}

				for j := range weights {
					weights[j] = 0
				}
				weights[0] = wa
				weights[i] = wb
				weights[i+1] = wd

				z := wa*a.Z + wb*b.Z + wd*d.Z
				writeFragment(c, x, y, z, depthTest, weights, frag)
			}
		}
	}
}

// boundsOf returns the integer bounding box of the points clamped to the
// canvas.
func boundsOf(pts []screenPoint, c *Canvas) (minX, minY, maxX, maxY int) {
	fMinX, fMinY := pts[0].X, pts[0].Y
	fMaxX, fMaxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		fMinX = math.Min(fMinX, p.X)
		fMinY = math.Min(fMinY, p.Y)
		fMaxX = math.Max(fMaxX, p.X)
		fMaxY = math.Max(fMaxY, p.Y)
	}
	minX = max(0, int(math.Floor(fMinX)))
	minY = max(0, int(math.Floor(fMinY)))
	maxX = min(c.Width-1, int(math.Ceil(fMaxX)))
	maxY = min(c.Height-1, int(math.Ceil(fMaxY)))
	return minX, minY, maxX, maxY
}
