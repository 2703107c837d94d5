package store

import "sync"

// hub fans change notifications out to subscribers in subscription order.
type hub struct {
	mu   sync.Mutex
	next int
	subs []subscription
}

type subscription struct {
	id int
	l  Listener
}

func (h *hub) subscribe(l Listener) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	id := h.next
	h.subs = append(h.subs, subscription{id: id, l: l})

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

func (h *hub) listeners() []Listener {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Listener, len(h.subs))
	for i, s := range h.subs {
		out[i] = s.l
	}
	return out
}

func (h *hub) added(r Record) {
	for _, l := range h.listeners() {
		l.OnShapeAdded(r.Clone())
	}
}

func (h *hub) changed(r Record) {
	for _, l := range h.listeners() {
		l.OnShapeChanged(r.Clone())
	}
}

func (h *hub) removed(id string) {
	for _, l := range h.listeners() {
		l.OnShapeRemoved(id)
	}
}
