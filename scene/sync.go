package scene

import (
	"fmt"
	"image/color"
	"log/slog"

	"shape-canvas/geom"
	"shape-canvas/logging"
	"shape-canvas/shape"
	"shape-canvas/store"
)

// Geometry carries the per-shape settings applied when records become shapes.
type Geometry struct {
	Tolerance   float64
	MinVertices int
}

// FromRecord builds the shape a record describes.
func FromRecord(r store.Record, g Geometry) (shape.Shape, error) {
	props := shape.Props{
		ID:          r.ID,
		Name:        r.Name,
		Color:       color.RGBA{R: r.Color.R, G: r.Color.G, B: r.Color.B, A: 255},
		Tolerance:   g.Tolerance,
		MinVertices: g.MinVertices,
	}

	switch r.Kind {
	case store.KindRect:
		if r.Rect == nil {
			return nil, fmt.Errorf("rect %q: %w", r.ID, store.ErrInvalidRecord)
		}
		if !r.Rect.Sized() {
			return shape.NewUnsizedRectangle(props, geom.Pt(r.Rect.X, r.Rect.Y)), nil
		}
		frame := geom.Rect{X: r.Rect.X, Y: r.Rect.Y, Width: *r.Rect.W, Height: *r.Rect.H}
		return shape.NewRectangle(props, frame), nil
	case store.KindPoly:
		return shape.NewPolygon(props, r.Points), nil
	}
	return nil, fmt.Errorf("shape %q has unknown kind %q: %w", r.ID, r.Kind, store.ErrInvalidRecord)
}

// ToRecord captures the current state of sh for the store.
func ToRecord(sh shape.Shape) (store.Record, error) {
	c := sh.Color()
	r := store.Record{
		ID:    sh.ID(),
		Name:  sh.Name(),
		Color: store.Color{R: c.R, G: c.G, B: c.B},
	}

	switch v := sh.(type) {
	case shape.Framed:
		r.Kind = store.KindRect
		frame, sized := v.Frame()
		if sized {
			r.Rect = store.Sized(frame)
		} else {
			r.Rect = &store.RectCoords{X: frame.X, Y: frame.Y}
		}
	case shape.VertexEditor:
		r.Kind = store.KindPoly
		r.Points = v.Points()
	default:
		return store.Record{}, fmt.Errorf("shape %q: unsupported type %T", sh.ID(), sh)
	}
	return r, nil
}

// Sync mirrors store notifications into a Scene. A shape with local edits
// not yet written back keeps its local state when the store reports a
// change for it.
type Sync struct {
	scene    *Scene
	geometry Geometry
	log      *slog.Logger

	// Added, when set, runs after a shape from the store joins the scene.
	Added func(sh shape.Shape)
}

func NewSync(sc *Scene, g Geometry, log *slog.Logger) *Sync {
	return &Sync{scene: sc, geometry: g, log: logging.OrNop(log)}
}

// Load adds every record currently held by st.
func (y *Sync) Load(st store.Store) error {
	records, err := st.List()
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	for _, r := range records {
		y.OnShapeAdded(r)
	}
	return nil
}

func (y *Sync) OnShapeAdded(r store.Record) {
	sh, err := FromRecord(r, y.geometry)
	if err != nil {
		y.log.Warn("skipping shape", "id", r.ID, "error", err)
		return
	}
	if err := y.scene.Add(sh); err != nil {
		y.log.Warn("skipping shape", "id", r.ID, "error", err)
		return
	}
	y.log.Debug("shape added", "id", r.ID, "kind", r.Kind, "name", r.Name)
	if y.Added != nil {
		y.Added(sh)
	}
}

func (y *Sync) OnShapeChanged(r store.Record) {
	existing := y.scene.Get(r.ID)
	if existing == nil {
		y.OnShapeAdded(r)
		return
	}
	if !existing.Valid() {
		y.log.Debug("keeping local edits", "id", r.ID)
		return
	}
	sh, err := FromRecord(r, y.geometry)
	if err != nil {
		y.log.Warn("ignoring shape change", "id", r.ID, "error", err)
		return
	}
	y.scene.Replace(sh)
}

func (y *Sync) OnShapeRemoved(id string) {
	if _, ok := y.scene.Remove(id); ok {
		y.log.Debug("shape removed", "id", id)
	}
}

var _ store.Listener = (*Sync)(nil)
