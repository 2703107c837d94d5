package shape

import (
	"slices"

	"shape-canvas/canvas"
	"shape-canvas/geom"
)

// Polygon is a closed freeform outline. The last vertex connects back to
// the first.
type Polygon struct {
	base
	points  []geom.Point
	grabbed int
}

// NewPolygon creates a polygon from a copy of pts.
func NewPolygon(p Props, pts []geom.Point) *Polygon {
	return &Polygon{
		base:    base{props: p},
		points:  slices.Clone(pts),
		grabbed: -1,
	}
}

// Points returns a copy of the vertices in order.
func (pg *Polygon) Points() []geom.Point {
	return slices.Clone(pg.points)
}

// SetPoints replaces the vertices, as when the store reports a change.
func (pg *Polygon) SetPoints(pts []geom.Point) {
	pg.points = slices.Clone(pts)
	if pg.grabbed >= len(pg.points) {
		pg.grabbed = -1
	}
}

func (pg *Polygon) Bounds() geom.Rect {
	return geom.BoundsOf(pg.points)
}

func (pg *Polygon) Contains(p geom.Point) bool {
	return geom.PointInPolygon(p, pg.points)
}

func (pg *Polygon) vertexAt(p geom.Point) int {
	for i, v := range pg.points {
		if geom.NearPoint(p, v, pg.Tolerance()) {
			return i
		}
	}
	return -1
}

func (pg *Polygon) TouchedAtHandles(p geom.Point) bool {
	return pg.vertexAt(p) >= 0
}

func (pg *Polygon) Move(d geom.Point) {
	for i := range pg.points {
		pg.points[i] = pg.points[i].Add(d)
	}
	pg.SetValid(false)
}

// AddPoint appends p as the last vertex.
func (pg *Polygon) AddPoint(p geom.Point) {
	pg.points = append(pg.points, p)
	pg.SetValid(false)
}

func (pg *Polygon) MayBeCreated() bool {
	return len(pg.points) >= max(pg.props.MinVertices, 3)
}

// GrabVertex starts dragging the vertex under p, if any.
func (pg *Polygon) GrabVertex(p geom.Point) bool {
	pg.grabbed = pg.vertexAt(p)
	return pg.grabbed >= 0
}

func (pg *Polygon) DragVertex(p geom.Point) {
	if pg.grabbed < 0 {
		return
	}
	pg.points[pg.grabbed] = p
	pg.SetValid(false)
}

func (pg *Polygon) ReleaseVertex() {
	pg.grabbed = -1
}

func (pg *Polygon) Draw(s canvas.Surface, st Style) {
	if len(pg.points) == 0 {
		return
	}
	b := pg.Bounds()
	if len(pg.points) >= 3 {
		s.FillPolygon(pg.points, pg.fill())
	}
	drawLabel(s, st, pg.Name(), b)

	if pg.Selected() {
		if len(pg.points) >= 2 {
			s.StrokePolygon(pg.points, st.SelectionWidth, st.SelectionColor)
		}
		drawHandles(s, st, pg.points)
	}
}
