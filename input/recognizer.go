package input

import (
	"shape-canvas/geom"
	"shape-canvas/scene"
	"shape-canvas/shape"
)

// Recognizer turns pointer events into selection, drag and resize gestures.
type Recognizer struct {
	scene    *scene.Scene
	creation *Creation

	dragging bool
	resizing bool
	offset   geom.Point
	handle   Handle
}

// NewRecognizer returns a recognizer for sc. A nil creation disables
// creation mode.
func NewRecognizer(sc *scene.Scene, creation *Creation) *Recognizer {
	return &Recognizer{scene: sc, creation: creation}
}

func (r *Recognizer) Dragging() bool { return r.dragging }
func (r *Recognizer) Resizing() bool { return r.resizing }
func (r *Recognizer) Handle() Handle { return r.handle }

// PointerDown starts a gesture at p. In creation mode p extends the shape
// being created instead; ErrNothingToExtend reports there was none.
func (r *Recognizer) PointerDown(p geom.Point) error {
	if r.creation != nil && r.creation.Creating() {
		return r.creation.Extend(p)
	}

	sel := r.scene.Selection()
	shapes := r.scene.Shapes()

	var hit shape.Shape
	for i := len(shapes) - 1; i >= 0; i-- {
		sh := shapes[i]
		if hit == nil && sh.Contains(p) {
			hit = sh
			if sel.Is(sh) {
				r.begin(sh, p)
			}
			continue
		}
		sh.SetSelected(false)
	}

	sel.Set(hit)
	r.scene.Invalidate()
	return nil
}

// begin starts a resize when p is on one of sh's handles, a drag otherwise.
func (r *Recognizer) begin(sh shape.Shape, p geom.Point) {
	if sh.TouchedAtHandles(p) {
		r.resizing = true
		switch v := sh.(type) {
		case shape.Framed:
			frame, sized := v.Frame()
			if !sized {
				v.SeedCorner(p)
				r.handle = HandleBR
				return
			}
			r.handle = cornerAt(frame, p, sh.Tolerance())
		case shape.VertexEditor:
			v.GrabVertex(p)
		}
		return
	}

	r.dragging = true
	if f, ok := sh.(shape.Framed); ok {
		frame, _ := f.Frame()
		r.offset = p.Sub(frame.Min())
		return
	}
	r.offset = p
}

// PointerMove continues the active gesture.
func (r *Recognizer) PointerMove(p geom.Point) {
	sh := r.scene.Selection().Get()
	if sh == nil || !(r.dragging || r.resizing) {
		return
	}

	switch {
	case r.dragging:
		if f, ok := sh.(shape.Framed); ok {
			frame, _ := f.Frame()
			origin := p.Sub(r.offset)
			frame.X, frame.Y = origin.X, origin.Y
			f.SetFrame(frame)
		} else {
			sh.Move(p.Sub(r.offset))
			r.offset = p
		}
	case r.resizing:
		switch v := sh.(type) {
		case shape.Framed:
			if r.handle == HandleNone {
				return
			}
			frame, _ := v.Frame()
			r.handle, frame = step(r.handle, frame, p)
			v.SetFrame(frame)
		case shape.VertexEditor:
			v.DragVertex(p)
		}
	}
	r.scene.Invalidate()
}

// PointerUp ends any gesture.
func (r *Recognizer) PointerUp() {
	if v, ok := r.scene.Selection().Get().(shape.VertexEditor); ok {
		v.ReleaseVertex()
	}
	r.dragging = false
	r.resizing = false
	r.handle = HandleNone
	r.offset = geom.Point{}
}
