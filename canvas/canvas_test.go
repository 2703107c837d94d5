package canvas

import (
	"image/color"
	"testing"

	"shape-canvas/geom"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

func TestMapperRoundTrip(t *testing.T) {
	m := Mapper{OffsetX: 10, OffsetY: 20, PaddingLeft: 2, PaddingTop: 3, BorderLeft: 1, BorderTop: 1, ChromeTop: 40}

	p := m.Map(100, 100)
	if p.X != 87 || p.Y != 36 {
		t.Fatalf("Map(100,100) = %v, want (87,36)", p)
	}
	wx, wy := m.Unmap(p)
	if wx != 100 || wy != 100 {
		t.Fatalf("Unmap(Map(100,100)) = (%v,%v)", wx, wy)
	}
}

func TestImageFillRect(t *testing.T) {
	im := NewImage(40, 40, white, nil)
	im.FillRect(geom.Rect{X: 10, Y: 10, Width: 10, Height: 10}, red)

	if got := im.RGBA().RGBAAt(15, 15); got != red {
		t.Errorf("inside pixel = %v, want %v", got, red)
	}
	if got := im.RGBA().RGBAAt(5, 5); got != white {
		t.Errorf("outside pixel = %v, want %v", got, white)
	}
}

func TestImageClipsOffSurface(t *testing.T) {
	im := NewImage(20, 20, white, nil)
	// Straddles the left edge; must not panic and must paint the visible part.
	im.FillRect(geom.Rect{X: -10, Y: 0, Width: 15, Height: 10}, red)
	if got := im.RGBA().RGBAAt(2, 5); got != red {
		t.Errorf("visible part = %v, want %v", got, red)
	}
	// Entirely off surface.
	im.FillRect(geom.Rect{X: 100, Y: 100, Width: 5, Height: 5}, red)
}

func TestImageStrokeLeavesInterior(t *testing.T) {
	im := NewImage(40, 40, white, nil)
	im.StrokeRect(geom.Rect{X: 10, Y: 10, Width: 20, Height: 20}, 2, red)

	if got := im.RGBA().RGBAAt(20, 20); got != white {
		t.Errorf("interior = %v, want untouched", got)
	}
	if got := im.RGBA().RGBAAt(20, 10); got == white {
		t.Error("top edge was not stroked")
	}
}

func TestImageClear(t *testing.T) {
	im := NewImage(10, 10, white, nil)
	im.FillRect(geom.Rect{Width: 10, Height: 10}, red)
	im.Clear()
	if got := im.RGBA().RGBAAt(5, 5); got != white {
		t.Errorf("after Clear = %v, want background", got)
	}
}

type recordingSurface struct {
	w, h  float64
	fills []geom.Rect
}

func (r *recordingSurface) Size() (float64, float64) { return r.w, r.h }
func (r *recordingSurface) Clear()                   {}
func (r *recordingSurface) FillRect(rect geom.Rect, _ color.Color) {
	r.fills = append(r.fills, rect)
}
func (r *recordingSurface) StrokeRect(geom.Rect, float64, color.Color)       {}
func (r *recordingSurface) FillPolygon([]geom.Point, color.Color)            {}
func (r *recordingSurface) StrokePolygon([]geom.Point, float64, color.Color) {}
func (r *recordingSurface) Label(string, geom.Point, color.Color)            {}

func TestDrawBackgroundGrid(t *testing.T) {
	s := &recordingSurface{w: 100, h: 50}
	DrawBackgroundGrid(s, 20, red)
	// 4 vertical (20,40,60,80) + 2 horizontal (20,40)
	if len(s.fills) != 6 {
		t.Fatalf("grid lines = %d, want 6", len(s.fills))
	}

	s.fills = nil
	DrawBackgroundGrid(s, 0, red)
	if len(s.fills) != 0 {
		t.Fatalf("zero grid size drew %d lines", len(s.fills))
	}
}
