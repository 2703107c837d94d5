// Package editor wires the scene, gesture recognizer, creation controller
// and redraw scheduler around one store.
package editor

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"golang.org/x/image/font"

	"shape-canvas/canvas"
	"shape-canvas/geom"
	"shape-canvas/input"
	"shape-canvas/logging"
	"shape-canvas/scene"
	"shape-canvas/shape"
	"shape-canvas/store"
)

type Options struct {
	Width, Height int
	Tolerance     float64
	MinVertices   int
	RectSize      float64
	Interval      time.Duration
	Style         shape.Style
	GridSize      float64
	GridColor     color.Color
	Background    color.Color
	// Face renders shape labels. Nil uses basicfont.
	Face   font.Face
	Mapper canvas.Mapper
	Rand   *rand.Rand
	Logger *slog.Logger
}

// DefaultTolerance is the hit distance around corners and vertices. A press
// five pixels inside a corner still grabs the shape rather than the handle.
const DefaultTolerance = 4

// DefaultOptions matches the stock configuration.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Tolerance:   DefaultTolerance,
		MinVertices: 3,
		RectSize:    input.DefaultRectSize,
		Interval:    scene.DefaultInterval,
		Style:       shape.DefaultStyle(),
		Background:  color.White,
	}
}

// Editor is the single-threaded interaction core. None of its methods may be
// called concurrently.
type Editor struct {
	store     store.Store
	scene     *scene.Scene
	sync      *scene.Sync
	creation  *input.Creation
	rec       *input.Recognizer
	scheduler *scene.Scheduler
	surface   *canvas.Image
	mapper    canvas.Mapper
	log       *slog.Logger

	unsubscribe func()
}

// New builds an editor over st and loads the shapes it already holds.
func New(st store.Store, opts Options) (*Editor, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("surface size %dx%d must be positive", opts.Width, opts.Height)
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	log := logging.OrNop(opts.Logger)

	sc := scene.New()
	surface := canvas.NewImage(opts.Width, opts.Height, opts.Background, opts.Face)

	e := &Editor{
		store:   st,
		scene:   sc,
		surface: surface,
		mapper:  opts.Mapper,
		log:     log,
	}
	e.sync = scene.NewSync(sc, scene.Geometry{Tolerance: opts.Tolerance, MinVertices: opts.MinVertices}, log)
	e.creation = input.NewCreation(st, sc, input.CreationConfig{RectSize: opts.RectSize, Rand: opts.Rand, Logger: log})
	e.sync.Added = e.creation.ShapeAdded
	e.rec = input.NewRecognizer(sc, e.creation)
	e.scheduler = scene.NewScheduler(sc, surface, scene.SchedulerConfig{
		Interval:  opts.Interval,
		Style:     opts.Style,
		GridSize:  opts.GridSize,
		GridColor: opts.GridColor,
		Store:     st,
		Logger:    log,
	})

	if err := e.sync.Load(st); err != nil {
		return nil, err
	}
	e.unsubscribe = st.Subscribe(e.sync)

	log.Info("editor ready", "shapes", sc.Len(), "width", opts.Width, "height", opts.Height)
	return e, nil
}

// Close stops mirroring the store.
func (e *Editor) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

func (e *Editor) Scene() *scene.Scene           { return e.scene }
func (e *Editor) Creation() *input.Creation     { return e.creation }
func (e *Editor) Recognizer() *input.Recognizer { return e.rec }
func (e *Editor) Surface() *canvas.Image        { return e.surface }
func (e *Editor) Store() store.Store            { return e.store }

// MapPointer converts window coordinates to surface coordinates.
func (e *Editor) MapPointer(x, y int) geom.Point {
	return e.mapper.Map(float64(x), float64(y))
}

// PointerDown forwards a press. Pressing in creation mode with nothing to
// extend is reported and otherwise ignored.
func (e *Editor) PointerDown(p geom.Point) error {
	err := e.rec.PointerDown(p)
	if errors.Is(err, input.ErrNothingToExtend) {
		e.log.Warn("nothing selected to add a point to", "x", p.X, "y", p.Y)
		return nil
	}
	return err
}

func (e *Editor) PointerMove(p geom.Point) { e.rec.PointerMove(p) }

func (e *Editor) PointerUp() { e.rec.PointerUp() }

// Activate creates a shape at p in the current insert mode.
func (e *Editor) Activate(p geom.Point) (string, error) {
	return e.creation.Activate(p)
}

func (e *Editor) SetInsertMode(k store.Kind) error {
	if err := e.creation.SetMode(k); err != nil {
		return err
	}
	e.log.Info("insert mode", "mode", k)
	return nil
}

func (e *Editor) EnableEditingMode() {
	e.creation.EnableEditingMode()
}

func (e *Editor) FinishElementCreation() error {
	return e.creation.FinishElementCreation()
}

func (e *Editor) CancelCreation() error {
	return e.creation.CancelCreation()
}

// Tick repaints if the scene changed. It reports whether it painted.
func (e *Editor) Tick() bool {
	return e.scheduler.Tick()
}

// Due reports whether the redraw interval has elapsed at now.
func (e *Editor) Due(now time.Time) bool {
	return e.scheduler.Due(now)
}

// Frames returns the number of repaints so far.
func (e *Editor) Frames() int {
	return e.scheduler.Frames()
}

// Status summarizes the editor state on one line.
func (e *Editor) Status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode: %s | shapes: %d", e.creation.Mode(), e.scene.Len())
	if sel := e.scene.Selection().Get(); sel != nil {
		fmt.Fprintf(&b, " | selected: %s", sel.Name())
	}
	if e.creation.Creating() {
		b.WriteString(" | adding points (Enter to finish)")
	}
	if h := e.rec.Handle(); h != input.HandleNone {
		fmt.Fprintf(&b, " | resizing %s", h)
	}
	return b.String()
}

// Snapshot repaints the scene and writes it as a PNG.
func (e *Editor) Snapshot(w io.Writer) error {
	e.scene.Invalidate()
	e.scheduler.Tick()
	if err := png.Encode(w, e.surface.RGBA()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// EventKind identifies a pointer event delivered to Run.
type EventKind int

const (
	EventDown EventKind = iota
	EventMove
	EventUp
	EventActivate
)

type Event struct {
	Kind EventKind
	At   geom.Point
}

// Run processes events and redraw ticks on one goroutine until ctx is done
// or events is closed.
func (e *Editor) Run(ctx context.Context, events <-chan Event) error {
	ticker := time.NewTicker(e.scheduler.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.Tick()
		case ev, ok := <-events:
			if !ok {
				e.Tick()
				return nil
			}
			if err := e.handle(ev); err != nil {
				e.log.Error("pointer event", "kind", ev.Kind, "error", err)
			}
		}
	}
}

func (e *Editor) handle(ev Event) error {
	switch ev.Kind {
	case EventDown:
		return e.PointerDown(ev.At)
	case EventMove:
		e.PointerMove(ev.At)
	case EventUp:
		e.PointerUp()
	case EventActivate:
		_, err := e.Activate(ev.At)
		return err
	default:
		return fmt.Errorf("unknown event kind %d", ev.Kind)
	}
	return nil
}
