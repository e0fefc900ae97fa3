// Package render provides the software rasterization pipeline for facet:
// canvas and depth buffer, camera, lights, scene graph, and the scene
// renderer with its shading strategies.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"
	xdraw "golang.org/x/image/draw"
)

// Canvas is a 2D color buffer paired with a depth buffer. Depth holds
// NDC z values where larger is closer to the camera; unwritten pixels
// hold -Inf.
type Canvas struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major pixel data
	Depth  []float64    // Row-major depth data
}

// NewCanvas creates a canvas with the given dimensions, cleared to
// transparent black and far depth.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		Depth:  make([]float64, width*height),
	}
	c.Clear(color.RGBA{})
	return c
}

// Clear fills the color buffer with a solid color and resets every depth
// sample to far.
func (c *Canvas) Clear(bg color.RGBA) {
	for i := range c.Pixels {
		c.Pixels[i] = bg
		c.Depth[i] = math.Inf(-1)
	}
}

// SetPixel sets a pixel at (x, y). Out-of-bounds writes are ignored.
func (c *Canvas) SetPixel(x, y int, col color.RGBA) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.Pixels[y*c.Width+x] = col
}

// PixelAt returns the color at (x, y), or transparent black out of
// bounds.
func (c *Canvas) PixelAt(x, y int) color.RGBA {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return color.RGBA{}
	}
	return c.Pixels[y*c.Width+x]
}

// SetDepth records the depth at (x, y). Out-of-bounds writes are
// ignored.
func (c *Canvas) SetDepth(x, y int, z float64) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.Depth[y*c.Width+x] = z
}

// DepthAt returns the depth at (x, y), or -Inf out of bounds.
func (c *Canvas) DepthAt(x, y int) float64 {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return math.Inf(-1)
	}
	return c.Depth[y*c.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Lines ignore the depth buffer.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.SetPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawMarker draws a small cross centered at (x, y).
func (c *Canvas) DrawMarker(x, y int, col color.RGBA) {
	c.SetPixel(x, y, col)
	c.SetPixel(x-1, y, col)
	c.SetPixel(x+1, y, col)
	c.SetPixel(x, y-1, col)
	c.SetPixel(x, y+1, col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// FlipVertical mirrors the color and depth buffers top-to-bottom in
// place.
func (c *Canvas) FlipVertical() {
	for y := 0; y < c.Height/2; y++ {
		top := y * c.Width
		bot := (c.Height - 1 - y) * c.Width
		for x := 0; x < c.Width; x++ {
			c.Pixels[top+x], c.Pixels[bot+x] = c.Pixels[bot+x], c.Pixels[top+x]
			c.Depth[top+x], c.Depth[bot+x] = c.Depth[bot+x], c.Depth[top+x]
		}
	}
}

// ToImage converts the color buffer to a standard Go image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, c.Pixels[y*c.Width+x])
		}
	}
	return img
}

// SavePNG saves the canvas as a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	defer f.Close()
	return png.Encode(f, c.ToImage())
}

// SaveWebP saves the canvas as a lossless WebP file.
func (c *Canvas) SaveWebP(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	defer f.Close()
	return nativewebp.Encode(f, c.ToImage(), nil)
}

// Downsample scales the canvas down by an integer factor using
// Catmull-Rom resampling and returns the result as a new canvas. Useful
// for antialiasing: render supersampled, then downsample. Depth is not
// carried over.
func (c *Canvas) Downsample(factor int) *Canvas {
	if factor <= 1 {
		out := NewCanvas(c.Width, c.Height)
		copy(out.Pixels, c.Pixels)
		copy(out.Depth, c.Depth)
		return out
	}

	dst := image.NewRGBA(image.Rect(0, 0, c.Width/factor, c.Height/factor))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), c.ToImage(), c.ToImage().Bounds(), xdraw.Src, nil)

	out := NewCanvas(dst.Bounds().Dx(), dst.Bounds().Dy())
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			out.Pixels[y*out.Width+x] = dst.RGBAAt(x, y)
		}
	}
	return out
}
