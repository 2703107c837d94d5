// Package shape implements the editable shape variants: axis-aligned
// rectangles and freeform polygons.
package shape

import (
	"image/color"

	"shape-canvas/canvas"
	"shape-canvas/geom"
)

// Shape is implemented by every variant the scene can hold.
type Shape interface {
	ID() string
	Name() string
	Color() color.RGBA
	// Tolerance is the pick distance for handles and vertices.
	Tolerance() float64

	Selected() bool
	SetSelected(bool)

	// Valid reports whether the shape matches what the store holds.
	// Local edits clear it until the shape is written back.
	Valid() bool
	SetValid(bool)

	Bounds() geom.Rect
	Contains(p geom.Point) bool
	TouchedAtHandles(p geom.Point) bool
	Move(d geom.Point)
	AddPoint(p geom.Point)
	MayBeCreated() bool

	Draw(s canvas.Surface, st Style)
}

// Framed is implemented by shapes with an absolute frame that resize by
// dragging a corner.
type Framed interface {
	Shape
	Frame() (r geom.Rect, sized bool)
	SetFrame(r geom.Rect)
	// SeedCorner places the first corner of an unsized shape at p with
	// zero extent.
	SeedCorner(p geom.Point)
}

// VertexEditor is implemented by shapes resized by dragging one vertex.
type VertexEditor interface {
	Shape
	Points() []geom.Point
	GrabVertex(p geom.Point) bool
	DragVertex(p geom.Point)
	ReleaseVertex()
}

// Props carries the attributes common to all variants.
type Props struct {
	ID        string
	Name      string
	Color     color.RGBA
	Tolerance float64
	// MinVertices is the vertex count a polygon needs to be kept.
	MinVertices int
}

type base struct {
	props    Props
	selected bool
	stale    bool
}

func (b *base) ID() string         { return b.props.ID }
func (b *base) Name() string       { return b.props.Name }
func (b *base) Color() color.RGBA  { return b.props.Color }
func (b *base) Selected() bool     { return b.selected }
func (b *base) SetSelected(v bool) { b.selected = v }
func (b *base) Valid() bool        { return !b.stale }
func (b *base) SetValid(v bool)    { b.stale = !v }
func (b *base) Tolerance() float64 { return b.props.Tolerance }
func (b *base) fill() color.NRGBA  { return fillColor(b.props.Color) }

var (
	_ Framed       = (*Rectangle)(nil)
	_ VertexEditor = (*Polygon)(nil)
)
