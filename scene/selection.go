package scene

import "shape-canvas/shape"

// Selection tracks the single selected shape.
type Selection struct {
	current  shape.Shape
	onChange func()
}

// Get returns the selected shape, or nil.
func (s *Selection) Get() shape.Shape {
	return s.current
}

// Set selects sh, clearing the previous selection's flag. Nil clears the
// selection. Setting the already selected shape is not a change.
func (s *Selection) Set(sh shape.Shape) {
	if sh == s.current {
		return
	}
	if s.current != nil {
		s.current.SetSelected(false)
	}
	s.current = sh
	if sh != nil {
		sh.SetSelected(true)
	}
	if s.onChange != nil {
		s.onChange()
	}
}

// Is reports whether sh is the selected shape.
func (s *Selection) Is(sh shape.Shape) bool {
	return sh != nil && sh == s.current
}
