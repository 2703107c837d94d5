package canvas

import (
	"image/color"

	"shape-canvas/geom"
)

// DrawBackgroundGrid renders evenly spaced one-pixel grid lines across the
// whole surface. A non-positive size draws nothing.
func DrawBackgroundGrid(s Surface, size float64, gridColor color.Color) {
	if size <= 0 {
		return
	}
	w, h := s.Size()

	// Vertical lines
	for x := size; x < w; x += size {
		s.FillRect(geom.Rect{X: x, Y: 0, Width: 1, Height: h}, gridColor)
	}

	// Horizontal lines
	for y := size; y < h; y += size {
		s.FillRect(geom.Rect{X: 0, Y: y, Width: w, Height: 1}, gridColor)
	}
}
