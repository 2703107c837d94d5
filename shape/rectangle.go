package shape

import (
	"shape-canvas/canvas"
	"shape-canvas/geom"
)

// Rectangle is an axis-aligned box. Its extent may be undefined until the
// first corner is placed.
type Rectangle struct {
	base
	x, y  float64
	w, h  float64
	sized bool
}

// NewRectangle creates a rectangle with the given frame.
func NewRectangle(p Props, frame geom.Rect) *Rectangle {
	return &Rectangle{
		base:  base{props: p},
		x:     frame.X,
		y:     frame.Y,
		w:     frame.Width,
		h:     frame.Height,
		sized: true,
	}
}

// NewUnsizedRectangle creates a rectangle anchored at origin whose extent
// is not known yet.
func NewUnsizedRectangle(p Props, origin geom.Point) *Rectangle {
	return &Rectangle{base: base{props: p}, x: origin.X, y: origin.Y}
}

func (r *Rectangle) Frame() (geom.Rect, bool) {
	return geom.Rect{X: r.x, Y: r.y, Width: r.w, Height: r.h}, r.sized
}

func (r *Rectangle) SetFrame(f geom.Rect) {
	r.x, r.y, r.w, r.h = f.X, f.Y, f.Width, f.Height
	r.sized = true
	r.SetValid(false)
}

func (r *Rectangle) SeedCorner(p geom.Point) {
	r.SetFrame(geom.Rect{X: p.X, Y: p.Y})
}

func (r *Rectangle) Bounds() geom.Rect {
	f, _ := r.Frame()
	return f
}

func (r *Rectangle) Contains(p geom.Point) bool {
	if !r.sized {
		return false
	}
	return r.Bounds().Contains(p)
}

func (r *Rectangle) corners() []geom.Point {
	if !r.sized {
		return []geom.Point{{X: r.x, Y: r.y}}
	}
	return canvas.Corners(r.Bounds())
}

func (r *Rectangle) TouchedAtHandles(p geom.Point) bool {
	for _, c := range r.corners() {
		if geom.NearPoint(p, c, r.Tolerance()) {
			return true
		}
	}
	return false
}

func (r *Rectangle) Move(d geom.Point) {
	r.x += d.X
	r.y += d.Y
	r.SetValid(false)
}

// AddPoint seeds the first corner of an unsized rectangle, otherwise grows
// the rectangle to include p.
func (r *Rectangle) AddPoint(p geom.Point) {
	if !r.sized {
		r.SeedCorner(p)
		return
	}
	r.SetFrame(r.Bounds().Union(geom.Rect{X: p.X, Y: p.Y}))
}

func (r *Rectangle) MayBeCreated() bool {
	return r.sized && r.w > 0 && r.h > 0
}

func (r *Rectangle) Draw(s canvas.Surface, st Style) {
	if !r.sized {
		return
	}
	b := r.Bounds()
	s.FillRect(b, r.fill())
	drawLabel(s, st, r.Name(), b)

	if r.Selected() {
		s.StrokeRect(b, st.SelectionWidth, st.SelectionColor)
		drawHandles(s, st, r.corners())
	}
}
