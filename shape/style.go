package shape

import (
	"image/color"

	"shape-canvas/canvas"
	"shape-canvas/geom"
)

// FillAlpha is the opacity shapes are filled with.
const FillAlpha = 0.6

// Style controls how the selection overlay is drawn.
type Style struct {
	SelectionColor color.Color
	SelectionWidth float64
	HandleSize     float64
	HandleFill     color.Color
	// LabelColor draws the shape name above the shape when set.
	LabelColor color.Color
}

// DefaultStyle returns the stock overlay style.
func DefaultStyle() Style {
	return Style{
		SelectionColor: color.Black,
		SelectionWidth: 0.5,
		HandleSize:     6,
		HandleFill:     color.White,
	}
}

func fillColor(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(FillAlpha * 255)}
}

// drawHandles paints a bordered square centred on every point.
func drawHandles(s canvas.Surface, st Style, pts []geom.Point) {
	half := st.HandleSize / 2
	fill := st.HandleFill
	if fill == nil {
		fill = color.White
	}
	for _, p := range pts {
		r := geom.Rect{X: p.X - half, Y: p.Y - half, Width: st.HandleSize, Height: st.HandleSize}
		s.FillRect(r, fill)
		s.StrokeRect(r, 1, st.SelectionColor)
	}
}

func drawLabel(s canvas.Surface, st Style, name string, bounds geom.Rect) {
	if st.LabelColor == nil || name == "" {
		return
	}
	s.Label(name, geom.Point{X: bounds.X, Y: bounds.Y - 4}, st.LabelColor)
}
