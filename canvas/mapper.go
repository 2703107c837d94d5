package canvas

import "shape-canvas/geom"

// Mapper converts window coordinates into surface coordinates, correcting for
// where the surface sits inside the window: its offset, padding and border,
// plus any fixed-position chrome in front of it.
type Mapper struct {
	OffsetX, OffsetY        float64
	PaddingLeft, PaddingTop float64
	BorderLeft, BorderTop   float64
	ChromeLeft, ChromeTop   float64
}

func (m Mapper) totalX() float64 {
	return m.OffsetX + m.PaddingLeft + m.BorderLeft + m.ChromeLeft
}

func (m Mapper) totalY() float64 {
	return m.OffsetY + m.PaddingTop + m.BorderTop + m.ChromeTop
}

// Map returns the surface position of a window position.
func (m Mapper) Map(wx, wy float64) geom.Point {
	return geom.Point{X: wx - m.totalX(), Y: wy - m.totalY()}
}

// Unmap is the inverse of Map.
func (m Mapper) Unmap(p geom.Point) (float64, float64) {
	return p.X + m.totalX(), p.Y + m.totalY()
}
