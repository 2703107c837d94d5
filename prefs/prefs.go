// Package prefs remembers editor preferences between runs.
package prefs

import (
	"fmt"
	"log/slog"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"shape-canvas/logging"
	"shape-canvas/store"
)

const (
	prefsObject   = "editor"
	prefsProperty = "prefs"
)

type Prefs struct {
	InsertMode store.Kind `yaml:"insertMode"`
	GridSize   float64    `yaml:"gridSize"`
}

func Defaults() Prefs {
	return Prefs{InsertMode: store.KindRect}
}

// Manager loads and saves Prefs. With a nil gdata manager it keeps prefs in
// memory only.
type Manager struct {
	data  *gdata.Manager
	prefs Prefs
	log   *slog.Logger
}

// Open creates a gdata-backed manager for appName. If the platform storage
// cannot be opened the manager runs in memory-only mode.
func Open(appName string, log *slog.Logger) *Manager {
	log = logging.OrNop(log)
	data, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warn("preferences will not persist", "error", err)
		data = nil
	}
	return NewManager(data, log)
}

func NewManager(data *gdata.Manager, log *slog.Logger) *Manager {
	m := &Manager{data: data, prefs: Defaults(), log: logging.OrNop(log)}
	if err := m.Load(); err != nil {
		m.log.Warn("failed to load preferences, using defaults", "error", err)
	}
	return m
}

// Load reads the saved prefs. Missing or unreadable prefs fall back to the
// defaults.
func (m *Manager) Load() error {
	m.prefs = Defaults()
	if m.data == nil || !m.data.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	raw, err := m.data.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}
	var p Prefs
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("unmarshal prefs: %w", err)
	}
	if !p.InsertMode.Valid() {
		p.InsertMode = store.KindRect
	}
	m.prefs = p
	return nil
}

func (m *Manager) Save() error {
	if m.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := m.data.SaveObjectProp(prefsObject, prefsProperty, raw); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

func (m *Manager) Prefs() Prefs {
	return m.prefs
}

// SetInsertMode records k and saves immediately.
func (m *Manager) SetInsertMode(k store.Kind) error {
	m.prefs.InsertMode = k
	return m.Save()
}

func (m *Manager) SetGridSize(size float64) error {
	m.prefs.GridSize = size
	return m.Save()
}
