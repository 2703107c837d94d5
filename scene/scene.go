// Package scene holds the ordered shape collection, the selection, store
// synchronization and the redraw scheduler.
package scene

import (
	"errors"
	"fmt"

	"shape-canvas/canvas"
	"shape-canvas/shape"
)

var ErrDuplicateShape = errors.New("duplicate shape id")

// Scene is the ordered collection of shapes. Slice order is paint order;
// the selected shape is always painted last.
type Scene struct {
	shapes    []shape.Shape
	valid     bool
	selection Selection
}

// New returns an empty scene that needs its first paint.
func New() *Scene {
	sc := &Scene{}
	sc.selection.onChange = sc.Invalidate
	return sc
}

func (sc *Scene) Selection() *Selection {
	return &sc.selection
}

// Valid reports whether the last paint is still current.
func (sc *Scene) Valid() bool {
	return sc.valid
}

func (sc *Scene) Invalidate() {
	sc.valid = false
}

func (sc *Scene) markValid() {
	sc.valid = true
}

func (sc *Scene) indexOf(id string) int {
	for i, sh := range sc.shapes {
		if sh.ID() == id {
			return i
		}
	}
	return -1
}

// Add appends sh on top of the paint order.
func (sc *Scene) Add(sh shape.Shape) error {
	if sc.indexOf(sh.ID()) >= 0 {
		return fmt.Errorf("add %q: %w", sh.ID(), ErrDuplicateShape)
	}
	sc.shapes = append(sc.shapes, sh)
	sc.Invalidate()
	return nil
}

// Replace swaps the shape with sh's identity for sh, keeping its paint
// position and selection.
func (sc *Scene) Replace(sh shape.Shape) bool {
	i := sc.indexOf(sh.ID())
	if i < 0 {
		return false
	}
	old := sc.shapes[i]
	sc.shapes[i] = sh
	if sc.selection.Is(old) {
		sc.selection.current = sh
		sh.SetSelected(true)
	}
	sc.Invalidate()
	return true
}

// Remove drops the shape with the given id, clearing the selection if it
// held that shape.
func (sc *Scene) Remove(id string) (shape.Shape, bool) {
	i := sc.indexOf(id)
	if i < 0 {
		return nil, false
	}
	sh := sc.shapes[i]
	sc.shapes = append(sc.shapes[:i], sc.shapes[i+1:]...)
	if sc.selection.Is(sh) {
		sc.selection.Set(nil)
	}
	sc.Invalidate()
	return sh, true
}

func (sc *Scene) Get(id string) shape.Shape {
	if i := sc.indexOf(id); i >= 0 {
		return sc.shapes[i]
	}
	return nil
}

// Shapes returns the shapes in paint order.
func (sc *Scene) Shapes() []shape.Shape {
	out := make([]shape.Shape, len(sc.shapes))
	copy(out, sc.shapes)
	return out
}

func (sc *Scene) Len() int {
	return len(sc.shapes)
}

// Stale returns the shapes whose local state has not been written back.
func (sc *Scene) Stale() []shape.Shape {
	var out []shape.Shape
	for _, sh := range sc.shapes {
		if !sh.Valid() {
			out = append(out, sh)
		}
	}
	return out
}

// Paint draws every shape that is not entirely off the surface, then the
// selection on top. It returns the number of shapes drawn.
func (sc *Scene) Paint(s canvas.Surface, st shape.Style) int {
	w, h := s.Size()
	sel := sc.selection.Get()
	drawn := 0
	for _, sh := range sc.shapes {
		if sh == sel || sh.Bounds().Outside(w, h) {
			continue
		}
		sh.Draw(s, st)
		drawn++
	}
	if sel != nil {
		sel.Draw(s, st)
		drawn++
	}
	return drawn
}
