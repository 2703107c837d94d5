// Package store persists shape records and notifies subscribers of changes.
package store

import (
	"errors"
	"fmt"
	"slices"

	"shape-canvas/geom"
)

var (
	ErrNotFound      = errors.New("shape not found")
	ErrInvalidRecord = errors.New("invalid shape record")
)

// Kind discriminates the shape variants a record describes.
type Kind string

const (
	KindRect Kind = "rect"
	KindPoly Kind = "poly"
)

func (k Kind) Valid() bool {
	return k == KindRect || k == KindPoly
}

type Color struct {
	R uint8 `yaml:"r" json:"r"`
	G uint8 `yaml:"g" json:"g"`
	B uint8 `yaml:"b" json:"b"`
}

// RectCoords holds a rectangle's position. Nil W/H mean the extent has not
// been defined yet.
type RectCoords struct {
	X float64  `yaml:"x" json:"x"`
	Y float64  `yaml:"y" json:"y"`
	W *float64 `yaml:"w,omitempty" json:"w,omitempty"`
	H *float64 `yaml:"h,omitempty" json:"h,omitempty"`
}

// Sized reports whether both extents are defined.
func (c RectCoords) Sized() bool {
	return c.W != nil && c.H != nil
}

// Record is the persisted form of a shape.
type Record struct {
	ID     string       `yaml:"id"`
	Kind   Kind         `yaml:"kind"`
	Name   string       `yaml:"name"`
	Color  Color        `yaml:"color"`
	Rect   *RectCoords  `yaml:"rect,omitempty"`
	Points []geom.Point `yaml:"points,omitempty"`
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	if r.Rect != nil {
		rc := *r.Rect
		if r.Rect.W != nil {
			w := *r.Rect.W
			rc.W = &w
		}
		if r.Rect.H != nil {
			h := *r.Rect.H
			rc.H = &h
		}
		out.Rect = &rc
	}
	out.Points = slices.Clone(r.Points)
	return out
}

// Validate checks that the geometry matches the kind.
func (r Record) Validate() error {
	switch r.Kind {
	case KindRect:
		if r.Rect == nil {
			return fmt.Errorf("%w: rect %q has no coordinates", ErrInvalidRecord, r.Name)
		}
	case KindPoly:
		if len(r.Points) == 0 {
			return fmt.Errorf("%w: polygon %q has no vertices", ErrInvalidRecord, r.Name)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRecord, r.Kind)
	}
	return nil
}

// Sized returns coordinates with both extents defined.
func Sized(r geom.Rect) *RectCoords {
	w, h := r.Width, r.Height
	return &RectCoords{X: r.X, Y: r.Y, W: &w, H: &h}
}

// Listener receives change notifications. Callbacks run on the goroutine
// that performed the write, after the write has been applied.
type Listener interface {
	OnShapeAdded(r Record)
	OnShapeChanged(r Record)
	OnShapeRemoved(id string)
}

// Store is a keyed collection of shape records.
type Store interface {
	// Insert stores r and returns its identity. An empty r.ID is generated.
	Insert(r Record) (string, error)
	Update(r Record) error
	// AppendPoint adds p as the last vertex of polygon id.
	AppendPoint(id string, p geom.Point) error
	Remove(id string) error
	Count(kind Kind) (int, error)
	// List returns every record in insertion order.
	List() ([]Record, error)
	Subscribe(l Listener) (cancel func())
}
