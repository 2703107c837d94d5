package input

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"shape-canvas/geom"
	"shape-canvas/logging"
	"shape-canvas/scene"
	"shape-canvas/shape"
	"shape-canvas/store"
)

var (
	ErrNothingToExtend = errors.New("nothing selected to add a point to")
	ErrNoSelection     = errors.New("no shape selected")
)

// DefaultRectSize is the edge length of rectangles created by activation.
const DefaultRectSize = 100

// spawnOffset places a new rectangle's origin up and left of the pointer.
const spawnOffset = 10

type CreationConfig struct {
	RectSize float64
	// Rand picks new shape colors. Nil uses the global source.
	Rand   *rand.Rand
	Logger *slog.Logger
}

// Creation tracks whether pointer-downs add geometry to a shape instead of
// selecting, and which polygon is being built.
type Creation struct {
	store store.Store
	scene *scene.Scene
	cfg   CreationConfig
	log   *slog.Logger

	mode      store.Kind
	creating  bool
	createdID string
}

func NewCreation(st store.Store, sc *scene.Scene, cfg CreationConfig) *Creation {
	if cfg.RectSize <= 0 {
		cfg.RectSize = DefaultRectSize
	}
	return &Creation{
		store: st,
		scene: sc,
		cfg:   cfg,
		log:   logging.OrNop(cfg.Logger),
		mode:  store.KindRect,
	}
}

func (c *Creation) Creating() bool    { return c.creating }
func (c *Creation) Mode() store.Kind  { return c.mode }
func (c *Creation) CreatedID() string { return c.createdID }

// SetMode switches what activation inserts. An unfinished creation is
// cancelled first.
func (c *Creation) SetMode(k store.Kind) error {
	if !k.Valid() {
		return fmt.Errorf("insert mode %q: %w", k, store.ErrInvalidRecord)
	}
	if k == c.mode {
		return nil
	}
	if c.creating {
		if err := c.CancelCreation(); err != nil {
			return err
		}
	}
	c.mode = k
	return nil
}

func (c *Creation) randomColor() store.Color {
	n := rand.IntN
	if c.cfg.Rand != nil {
		n = c.cfg.Rand.IntN
	}
	return store.Color{R: uint8(n(255)), G: uint8(n(255)), B: uint8(n(255))}
}

// Activate inserts a new shape at p. Rectangles are complete at once;
// polygons start with one vertex and put the editor in creation mode.
// Activation while creating does nothing and returns "".
func (c *Creation) Activate(p geom.Point) (string, error) {
	if c.creating {
		return "", nil
	}

	n, err := c.store.Count(c.mode)
	if err != nil {
		return "", fmt.Errorf("count shapes: %w", err)
	}

	r := store.Record{Kind: c.mode, Color: c.randomColor()}
	switch c.mode {
	case store.KindRect:
		r.Name = fmt.Sprintf("Shape %d", n)
		r.Rect = store.Sized(geom.Rect{
			X:      p.X - spawnOffset,
			Y:      p.Y - spawnOffset,
			Width:  c.cfg.RectSize,
			Height: c.cfg.RectSize,
		})
	case store.KindPoly:
		r.Name = fmt.Sprintf("Poly %d", n)
		r.Points = []geom.Point{p}
	}

	id, err := c.store.Insert(r)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", c.mode, err)
	}
	c.log.Info("shape created", "id", id, "name", r.Name)

	if c.mode == store.KindPoly {
		c.creating = true
		c.createdID = id
		if sh := c.scene.Get(id); sh != nil {
			c.scene.Selection().Set(sh)
		}
	}
	return id, nil
}

// ShapeAdded selects the in-progress polygon once the scene receives it.
// It is meant as the scene synchronizer's Added hook.
func (c *Creation) ShapeAdded(sh shape.Shape) {
	if c.createdID != "" && sh.ID() == c.createdID {
		c.scene.Selection().Set(sh)
	}
}

// EnableEditingMode makes pointer-downs add points to the selected shape.
func (c *Creation) EnableEditingMode() {
	c.creating = true
}

// Extend adds p to the shape being created: a vertex appended through the
// store for an in-progress polygon, otherwise the selected shape's own
// add-point behaviour.
func (c *Creation) Extend(p geom.Point) error {
	if c.mode == store.KindPoly && c.createdID != "" {
		if err := c.store.AppendPoint(c.createdID, p); err != nil {
			return fmt.Errorf("append vertex: %w", err)
		}
		return nil
	}

	sel := c.scene.Selection().Get()
	if sel == nil {
		return ErrNothingToExtend
	}
	sel.AddPoint(p)
	c.scene.Invalidate()
	return nil
}

// FinishElementCreation leaves creation mode, removing the selected shape
// from the store when it cannot stand on its own.
func (c *Creation) FinishElementCreation() error {
	sel := c.scene.Selection().Get()
	if sel == nil {
		return ErrNoSelection
	}

	if !sel.MayBeCreated() {
		c.log.Info("discarding incomplete shape", "id", sel.ID(), "name", sel.Name())
		if err := c.store.Remove(sel.ID()); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("remove incomplete shape: %w", err)
		}
	}

	c.creating = false
	c.createdID = ""
	return nil
}

// CancelCreation leaves creation mode without validating the selection. An
// in-progress polygon that is still incomplete is removed.
func (c *Creation) CancelCreation() error {
	id := c.createdID
	c.creating = false
	c.createdID = ""

	if id == "" {
		return nil
	}
	sh := c.scene.Get(id)
	if sh == nil || sh.MayBeCreated() {
		return nil
	}
	if err := c.store.Remove(id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("remove incomplete shape: %w", err)
	}
	return nil
}
