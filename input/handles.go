package input

import (
	"math"

	"shape-canvas/geom"
)

// Handle names the rectangle corner being dragged during a resize.
type Handle int

const (
	HandleNone Handle = iota
	HandleTL
	HandleTR
	HandleBL
	HandleBR
)

func (h Handle) String() string {
	switch h {
	case HandleTL:
		return "top-left"
	case HandleTR:
		return "top-right"
	case HandleBL:
		return "bottom-left"
	case HandleBR:
		return "bottom-right"
	}
	return "none"
}

// cornerAt returns the first corner of r within tolerance of p, checked in
// TL, TR, BL, BR order.
func cornerAt(r geom.Rect, p geom.Point, tolerance float64) Handle {
	corners := []struct {
		h  Handle
		at geom.Point
	}{
		{HandleTL, geom.Pt(r.X, r.Y)},
		{HandleTR, geom.Pt(r.X+r.Width, r.Y)},
		{HandleBL, geom.Pt(r.X, r.Y+r.Height)},
		{HandleBR, geom.Pt(r.X+r.Width, r.Y+r.Height)},
	}
	for _, c := range corners {
		if geom.NearPoint(p, c.at, tolerance) {
			return c.h
		}
	}
	return HandleNone
}

// next returns the handle after the pointer crosses an edge of r. A
// horizontal crossing is checked before a vertical one and the first match
// wins, so a diagonal move past a corner switches the handle only once,
// sideways: TL dragged past BR becomes TR, not BR.
func next(h Handle, r geom.Rect, p geom.Point) Handle {
	right := r.X+r.Width-p.X < 0
	left := r.X-p.X > 0
	below := r.Y+r.Height-p.Y < 0
	above := r.Y-p.Y > 0

	switch h {
	case HandleTL:
		if right {
			return HandleTR
		}
		if below {
			return HandleBL
		}
	case HandleTR:
		if left {
			return HandleTL
		}
		if below {
			return HandleBR
		}
	case HandleBL:
		if right {
			return HandleBR
		}
		if above {
			return HandleTL
		}
	case HandleBR:
		if left {
			return HandleBL
		}
		if above {
			return HandleTR
		}
	}
	return h
}

// resize moves the corner of r held by h to p.
func resize(h Handle, r geom.Rect, p geom.Point) geom.Rect {
	switch h {
	case HandleTL:
		r.Width += r.X - p.X
		r.Height += r.Y - p.Y
		r.X = p.X
		r.Y = p.Y
	case HandleTR:
		r.Width = math.Abs(r.X - p.X)
		r.Height += r.Y - p.Y
		r.Y = p.Y
	case HandleBL:
		r.Width += r.X - p.X
		r.Height = math.Abs(r.Y - p.Y)
		r.X = p.X
	case HandleBR:
		r.Width = math.Abs(r.X - p.X)
		r.Height = math.Abs(r.Y - p.Y)
	}
	return r
}

// step evaluates the transition for a pointer move and applies the
// resulting handle's update in the same move.
func step(h Handle, r geom.Rect, p geom.Point) (Handle, geom.Rect) {
	h = next(h, r, p)
	return h, resize(h, r, p)
}
