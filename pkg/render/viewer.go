package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalViewer displays canvases on a terminal. Each terminal cell
// shows two vertically stacked pixels, so the canvas runs at twice the
// terminal's row count.
type TerminalViewer struct {
	term   *uv.Terminal
	width  int
	height int
}

// NewTerminalViewer creates a viewer for a terminal of the given cell
// dimensions.
func NewTerminalViewer(term *uv.Terminal, width, height int) *TerminalViewer {
	return &TerminalViewer{term: term, width: width, height: height}
}

// CanvasSize returns the pixel dimensions a canvas needs to fill the
// terminal: one column per cell, two rows per cell.
func (v *TerminalViewer) CanvasSize() (int, int) {
	return v.width, v.height * 2
}

// Display draws the canvas onto the terminal and flushes it.
func (v *TerminalViewer) Display(c *Canvas) error {
	c.Draw(v.term, uv.Rect(0, 0, v.width, v.height))
	return v.term.Display()
}
