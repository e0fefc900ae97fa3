package render

import (
	"image/color"
	"math"
	"testing"
)

func TestClearResetsPixelsAndDepth(t *testing.T) {
	c := NewCanvas(4, 3)
	c.SetPixel(1, 1, ColorRed)
	c.SetDepth(1, 1, 0.5)

	c.Clear(ColorBlue)

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if got := c.PixelAt(x, y); got != ColorBlue {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, got)
			}
			if d := c.DepthAt(x, y); !math.IsInf(d, -1) {
				t.Fatalf("depth (%d,%d) = %v, want -Inf", x, y, d)
			}
		}
	}
}

func TestSetPixelOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	// Must not panic or wrap around.
	c.SetPixel(-1, 0, ColorRed)
	c.SetPixel(0, -1, ColorRed)
	c.SetPixel(2, 0, ColorRed)
	c.SetPixel(0, 2, ColorRed)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := c.PixelAt(x, y); got != (color.RGBA{}) {
				t.Errorf("pixel (%d,%d) = %v after out-of-bounds writes", x, y, got)
			}
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
	}{
		{"horizontal", 1, 2, 8, 2},
		{"vertical", 3, 0, 3, 7},
		{"diagonal", 0, 0, 9, 9},
		{"steep", 2, 1, 4, 8},
		{"reversed", 8, 6, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 10)
			c.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1, ColorWhite)
			if got := c.PixelAt(tt.x0, tt.y0); got != ColorWhite {
				t.Errorf("start (%d,%d) = %v", tt.x0, tt.y0, got)
			}
			if got := c.PixelAt(tt.x1, tt.y1); got != ColorWhite {
				t.Errorf("end (%d,%d) = %v", tt.x1, tt.y1, got)
			}
		})
	}
}

func TestDrawLineClipsToCanvas(t *testing.T) {
	c := NewCanvas(5, 5)
	// Endpoints far outside must not panic.
	c.DrawLine(-20, 2, 20, 2, ColorWhite)
	if got := c.PixelAt(2, 2); got != ColorWhite {
		t.Errorf("interior pixel not drawn: %v", got)
	}
}

func TestFlipVertical(t *testing.T) {
	c := NewCanvas(3, 4)
	c.SetPixel(1, 0, ColorRed)
	c.SetDepth(1, 0, 0.25)
	c.SetPixel(2, 3, ColorGreen)

	c.FlipVertical()

	if got := c.PixelAt(1, 3); got != ColorRed {
		t.Errorf("pixel (1,0) did not move to (1,3): %v", got)
	}
	if got := c.DepthAt(1, 3); got != 0.25 {
		t.Errorf("depth (1,0) did not move to (1,3): %v", got)
	}
	if got := c.PixelAt(2, 0); got != ColorGreen {
		t.Errorf("pixel (2,3) did not move to (2,0): %v", got)
	}
}

func TestDownsample(t *testing.T) {
	c := NewCanvas(8, 8)
	c.Clear(ColorWhite)

	small := c.Downsample(4)
	if small.Width != 2 || small.Height != 2 {
		t.Fatalf("downsampled size = %dx%d, want 2x2", small.Width, small.Height)
	}
	if got := small.PixelAt(0, 0); got.R < 250 {
		t.Errorf("uniform white image downsampled to %v", got)
	}
}
