package store

import (
	"fmt"
	"sync"

	"shape-canvas/geom"
	"shape-canvas/typeid"
)

// Memory keeps records in process memory.
type Memory struct {
	mu      sync.RWMutex
	records []Record
	hub     hub
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) indexOf(id string) int {
	for i, r := range m.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (m *Memory) Insert(r Record) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	r = r.Clone()
	if r.ID == "" {
		r.ID = typeid.New(string(r.Kind))
	}

	m.mu.Lock()
	if m.indexOf(r.ID) >= 0 {
		m.mu.Unlock()
		return "", fmt.Errorf("%w: duplicate id %q", ErrInvalidRecord, r.ID)
	}
	m.records = append(m.records, r)
	m.mu.Unlock()

	m.hub.added(r)
	return r.ID, nil
}

func (m *Memory) Update(r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r = r.Clone()

	m.mu.Lock()
	i := m.indexOf(r.ID)
	if i < 0 {
		m.mu.Unlock()
		return fmt.Errorf("update %q: %w", r.ID, ErrNotFound)
	}
	m.records[i] = r
	m.mu.Unlock()

	m.hub.changed(r)
	return nil
}

func (m *Memory) AppendPoint(id string, p geom.Point) error {
	m.mu.Lock()
	i := m.indexOf(id)
	if i < 0 {
		m.mu.Unlock()
		return fmt.Errorf("append point to %q: %w", id, ErrNotFound)
	}
	if m.records[i].Kind != KindPoly {
		m.mu.Unlock()
		return fmt.Errorf("%w: append point to %s %q", ErrInvalidRecord, m.records[i].Kind, id)
	}
	m.records[i].Points = append(m.records[i].Points, p)
	r := m.records[i].Clone()
	m.mu.Unlock()

	m.hub.changed(r)
	return nil
}

func (m *Memory) Remove(id string) error {
	m.mu.Lock()
	i := m.indexOf(id)
	if i < 0 {
		m.mu.Unlock()
		return fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	m.mu.Unlock()

	m.hub.removed(id)
	return nil
}

func (m *Memory) Count(kind Kind) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, r := range m.records {
		if r.Kind == kind {
			n++
		}
	}
	return n, nil
}

func (m *Memory) List() ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, len(m.records))
	for i, r := range m.records {
		out[i] = r.Clone()
	}
	return out, nil
}

func (m *Memory) Get(id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOf(id)
	if i < 0 {
		return Record{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return m.records[i].Clone(), nil
}

func (m *Memory) Subscribe(l Listener) func() {
	return m.hub.subscribe(l)
}

// replace swaps the whole record set without notifying subscribers.
func (m *Memory) replace(records []Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = records
}
