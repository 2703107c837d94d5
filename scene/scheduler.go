package scene

import (
	"errors"
	"image/color"
	"log/slog"
	"time"

	"shape-canvas/canvas"
	"shape-canvas/logging"
	"shape-canvas/shape"
	"shape-canvas/store"
)

// DefaultInterval is the redraw cadence.
const DefaultInterval = 30 * time.Millisecond

type SchedulerConfig struct {
	Interval  time.Duration
	Style     shape.Style
	GridSize  float64
	GridColor color.Color
	// Store receives shapes with unsaved local edits after each paint.
	// Nil disables write-back.
	Store  store.Store
	Logger *slog.Logger
}

// Scheduler repaints the scene onto a surface when it has been invalidated.
type Scheduler struct {
	scene   *Scene
	surface canvas.Surface
	cfg     SchedulerConfig
	log     *slog.Logger

	last     time.Time
	frames   int
	lastDrew int
}

func NewScheduler(sc *Scene, surface canvas.Surface, cfg SchedulerConfig) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.GridColor == nil {
		cfg.GridColor = color.RGBA{230, 230, 230, 255}
	}
	return &Scheduler{scene: sc, surface: surface, cfg: cfg, log: logging.OrNop(cfg.Logger)}
}

// Due reports whether a tick is due at now and, if so, records it.
func (s *Scheduler) Due(now time.Time) bool {
	if !s.last.IsZero() && now.Sub(s.last) < s.cfg.Interval {
		return false
	}
	s.last = now
	return true
}

// Tick repaints when the scene is invalid and reports whether it did.
func (s *Scheduler) Tick() bool {
	if s.scene.Valid() {
		return false
	}

	s.surface.Clear()
	canvas.DrawBackgroundGrid(s.surface, s.cfg.GridSize, s.cfg.GridColor)
	s.lastDrew = s.scene.Paint(s.surface, s.cfg.Style)
	s.scene.markValid()
	s.frames++

	s.flush()
	return true
}

// Interval returns the redraw cadence.
func (s *Scheduler) Interval() time.Duration {
	return s.cfg.Interval
}

// Frames returns how many repaints have happened.
func (s *Scheduler) Frames() int {
	return s.frames
}

// Drawn returns how many shapes the last repaint drew.
func (s *Scheduler) Drawn() int {
	return s.lastDrew
}

func (s *Scheduler) flush() {
	if s.cfg.Store == nil {
		return
	}
	for _, sh := range s.scene.Stale() {
		r, err := ToRecord(sh)
		if err != nil {
			s.log.Error("write back shape", "id", sh.ID(), "error", err)
			continue
		}
		if err := s.cfg.Store.Update(r); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				s.log.Warn("shape gone from store", "id", sh.ID())
				sh.SetValid(true)
				continue
			}
			s.log.Error("write back shape", "id", sh.ID(), "error", err)
			continue
		}
		sh.SetValid(true)
	}
}
