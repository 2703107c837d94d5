// Package canvas holds the drawing surfaces shapes are rendered onto and the
// pointer mapping from window coordinates into surface coordinates.
package canvas

import (
	"image/color"

	"shape-canvas/geom"
)

// Surface is the rendering target shapes draw themselves on.
// Coordinates are surface pixels with the origin at the top-left corner.
type Surface interface {
	Size() (width, height float64)
	Clear()
	FillRect(r geom.Rect, c color.Color)
	StrokeRect(r geom.Rect, width float64, c color.Color)
	FillPolygon(pts []geom.Point, c color.Color)
	StrokePolygon(pts []geom.Point, width float64, c color.Color)
	Label(s string, at geom.Point, c color.Color)
}

// Corners returns the closed vertex loop of r in TL, TR, BR, BL order.
func Corners(r geom.Rect) []geom.Point {
	return []geom.Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}
