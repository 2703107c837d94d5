package store

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"shape-canvas/geom"
)

type recorder struct {
	added   []Record
	changed []Record
	removed []string
}

func (r *recorder) OnShapeAdded(rec Record)   { r.added = append(r.added, rec) }
func (r *recorder) OnShapeChanged(rec Record) { r.changed = append(r.changed, rec) }
func (r *recorder) OnShapeRemoved(id string)  { r.removed = append(r.removed, id) }

func rectRecord(name string) Record {
	return Record{Kind: KindRect, Name: name, Color: Color{R: 10, G: 20, B: 30}, Rect: Sized(geom.Rect{X: 1, Y: 2, Width: 3, Height: 4})}
}

func polyRecord(name string) Record {
	return Record{Kind: KindPoly, Name: name, Points: []geom.Point{geom.Pt(5, 5)}}
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	rec := &recorder{}
	cancel := s.Subscribe(rec)

	rid, err := s.Insert(rectRecord("Shape 0"))
	if err != nil {
		t.Fatalf("Insert rect: %v", err)
	}
	if !strings.HasPrefix(rid, "rect_") {
		t.Errorf("rect id %q lacks rect_ prefix", rid)
	}
	pid, err := s.Insert(polyRecord("Poly 0"))
	if err != nil {
		t.Fatalf("Insert poly: %v", err)
	}

	if len(rec.added) != 2 || rec.added[0].ID != rid || rec.added[1].ID != pid {
		t.Fatalf("added notifications = %+v", rec.added)
	}

	if err := s.AppendPoint(pid, geom.Pt(15, 5)); err != nil {
		t.Fatalf("AppendPoint: %v", err)
	}
	if len(rec.changed) != 1 || len(rec.changed[0].Points) != 2 || rec.changed[0].Points[1] != geom.Pt(15, 5) {
		t.Fatalf("changed after AppendPoint = %+v", rec.changed)
	}
	if err := s.AppendPoint(rid, geom.Pt(1, 1)); err == nil {
		t.Error("AppendPoint on a rectangle should fail")
	}

	n, err := s.Count(KindRect)
	if err != nil || n != 1 {
		t.Fatalf("Count(rect) = %d, %v", n, err)
	}

	moved := rectRecord("Shape 0")
	moved.ID = rid
	moved.Rect = Sized(geom.Rect{X: 50, Y: 60, Width: 3, Height: 4})
	if err := s.Update(moved); err != nil {
		t.Fatalf("Update: %v", err)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != rid || list[1].ID != pid {
		t.Fatalf("List order = %+v", list)
	}
	if list[0].Rect.X != 50 || *list[0].Rect.W != 3 {
		t.Errorf("updated rect = %+v", list[0].Rect)
	}

	if err := s.Remove(rid); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(rec.removed) != 1 || rec.removed[0] != rid {
		t.Fatalf("removed = %v", rec.removed)
	}
	if err := s.Remove(rid); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove err = %v, want ErrNotFound", err)
	}
	ghost := rectRecord("ghost")
	ghost.ID = "rect_missing"
	if err := s.Update(ghost); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update unknown err = %v, want ErrNotFound", err)
	}

	cancel()
	if _, err := s.Insert(rectRecord("Shape 1")); err != nil {
		t.Fatalf("Insert after cancel: %v", err)
	}
	if len(rec.added) != 2 {
		t.Error("cancelled listener was still notified")
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestInsertRejectsInvalidRecords(t *testing.T) {
	m := NewMemory()
	bad := []Record{
		{Kind: KindRect, Name: "no coords"},
		{Kind: KindPoly, Name: "no points"},
		{Kind: "circle", Name: "unknown"},
	}
	for _, r := range bad {
		if _, err := m.Insert(r); !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("Insert(%q) err = %v, want ErrInvalidRecord", r.Name, err)
		}
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	m := NewMemory()
	id, _ := m.Insert(polyRecord("p"))

	got, err := m.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	got.Points[0] = geom.Pt(99, 99)

	again, _ := m.Get(id)
	if again.Points[0] != geom.Pt(5, 5) {
		t.Fatal("caller mutation leaked into the store")
	}
}

func TestUnsizedRectRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	id, err := f.Insert(Record{Kind: KindRect, Name: "seed", Rect: &RectCoords{X: 7, Y: 8}})
	if err != nil {
		t.Fatal(err)
	}

	g, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	list, _ := g.List()
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("reloaded = %+v", list)
	}
	if list[0].Rect.Sized() {
		t.Error("undefined extent should survive a save/load")
	}
}
