package input

import (
	"errors"
	"math/rand/v2"
	"testing"

	"shape-canvas/geom"
	"shape-canvas/scene"
	"shape-canvas/shape"
	"shape-canvas/store"
)

type fixture struct {
	store    *store.Memory
	scene    *scene.Scene
	creation *Creation
	rec      *Recognizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemory()
	sc := scene.New()
	cr := NewCreation(st, sc, CreationConfig{Rand: rand.New(rand.NewPCG(1, 2))})

	y := scene.NewSync(sc, scene.Geometry{Tolerance: 4, MinVertices: 3}, nil)
	y.Added = cr.ShapeAdded
	st.Subscribe(y)

	return &fixture{store: st, scene: sc, creation: cr, rec: NewRecognizer(sc, cr)}
}

func (f *fixture) addRect(t *testing.T, r geom.Rect) shape.Shape {
	t.Helper()
	id, err := f.store.Insert(store.Record{Kind: store.KindRect, Name: "r", Rect: store.Sized(r)})
	if err != nil {
		t.Fatal(err)
	}
	return f.scene.Get(id)
}

func (f *fixture) addPoly(t *testing.T, pts ...geom.Point) shape.Shape {
	t.Helper()
	id, err := f.store.Insert(store.Record{Kind: store.KindPoly, Name: "p", Points: pts})
	if err != nil {
		t.Fatal(err)
	}
	return f.scene.Get(id)
}

func frame(t *testing.T, sh shape.Shape) geom.Rect {
	t.Helper()
	fr, ok := sh.(shape.Framed)
	if !ok {
		t.Fatalf("%s is not framed", sh.ID())
	}
	r, _ := fr.Frame()
	return r
}

func countSelected(sc *scene.Scene) int {
	n := 0
	for _, sh := range sc.Shapes() {
		if sh.Selected() {
			n++
		}
	}
	return n
}

func TestSelectionExclusivity(t *testing.T) {
	f := newFixture(t)
	a := f.addRect(t, geom.Rect{X: 0, Y: 0, Width: 50, Height: 50})
	b := f.addRect(t, geom.Rect{X: 30, Y: 30, Width: 50, Height: 50})
	c := f.addPoly(t, geom.Pt(200, 200), geom.Pt(260, 200), geom.Pt(230, 260))

	clicks := []struct {
		at   geom.Point
		want shape.Shape
	}{
		{geom.Pt(10, 10), a},
		{geom.Pt(40, 40), b}, // overlap: topmost wins
		{geom.Pt(230, 220), c},
		{geom.Pt(500, 500), nil},
		{geom.Pt(70, 70), b},
	}
	for _, tt := range clicks {
		if err := f.rec.PointerDown(tt.at); err != nil {
			t.Fatal(err)
		}
		f.rec.PointerUp()

		got := f.scene.Selection().Get()
		if got != tt.want {
			t.Fatalf("click at %v selected %v, want %v", tt.at, got, tt.want)
		}
		wantCount := 0
		if tt.want != nil {
			wantCount = 1
		}
		if n := countSelected(f.scene); n != wantCount {
			t.Fatalf("click at %v: %d shapes flagged selected, want %d", tt.at, n, wantCount)
		}
	}
}

func TestDragOffset(t *testing.T) {
	f := newFixture(t)
	sh := f.addRect(t, geom.Rect{X: 20, Y: 30, Width: 40, Height: 40})

	f.rec.PointerDown(geom.Pt(40, 50)) // select
	f.rec.PointerUp()
	f.rec.PointerDown(geom.Pt(25, 35)) // grab five pixels inside the corner
	if !f.rec.Dragging() || f.rec.Resizing() {
		t.Fatalf("press at (25,35) should drag, got dragging=%v resizing=%v", f.rec.Dragging(), f.rec.Resizing())
	}
	f.rec.PointerMove(geom.Pt(100, 100))

	if r := frame(t, sh); r.X != 95 || r.Y != 95 {
		t.Fatalf("origin = (%v,%v), want (95,95)", r.X, r.Y)
	}
	if sh.Valid() {
		t.Error("dragged shape should be marked for write-back")
	}
	if f.scene.Valid() {
		t.Error("drag should invalidate the scene")
	}

	f.rec.PointerUp()
	f.rec.PointerMove(geom.Pt(300, 300))
	if r := frame(t, sh); r.X != 95 {
		t.Fatal("moves after pointer-up must not drag")
	}
}

func TestPolygonDragIsIncremental(t *testing.T) {
	f := newFixture(t)
	sh := f.addPoly(t, geom.Pt(0, 0), geom.Pt(40, 0), geom.Pt(40, 40), geom.Pt(0, 40))

	f.rec.PointerDown(geom.Pt(20, 20))
	f.rec.PointerUp()
	f.rec.PointerDown(geom.Pt(20, 20))
	f.rec.PointerMove(geom.Pt(25, 20))
	f.rec.PointerMove(geom.Pt(30, 30))
	f.rec.PointerUp()

	pts := sh.(shape.VertexEditor).Points()
	if pts[0] != geom.Pt(10, 10) {
		t.Fatalf("first vertex = %v, want (10,10)", pts[0])
	}
}

func TestResizeHandleContinuity(t *testing.T) {
	f := newFixture(t)
	sh := f.addRect(t, geom.Rect{X: 10, Y: 10, Width: 50, Height: 50})

	f.rec.PointerDown(geom.Pt(30, 30))
	f.rec.PointerUp()
	f.rec.PointerDown(geom.Pt(10, 10))
	if !f.rec.Resizing() || f.rec.Handle() != HandleTL {
		t.Fatalf("resizing=%v handle=%v, want top-left", f.rec.Resizing(), f.rec.Handle())
	}

	f.rec.PointerMove(geom.Pt(70, 10))
	if f.rec.Handle() != HandleTR {
		t.Fatalf("handle = %v, want top-right", f.rec.Handle())
	}
	want := geom.Rect{X: 10, Y: 10, Width: 60, Height: 50}
	if got := frame(t, sh); got != want {
		t.Fatalf("frame = %+v, want %+v", got, want)
	}

	f.rec.PointerUp()
	if f.rec.Handle() != HandleNone || f.rec.Resizing() {
		t.Fatal("pointer-up must reset the handle")
	}
}

func TestPolygonVertexResize(t *testing.T) {
	f := newFixture(t)
	sh := f.addPoly(t, geom.Pt(0, 0), geom.Pt(40, 0), geom.Pt(20, 40))

	f.rec.PointerDown(geom.Pt(20, 10))
	f.rec.PointerUp()
	f.rec.PointerDown(geom.Pt(38, 2))
	if !f.rec.Resizing() {
		t.Fatal("press on a vertex of the selected polygon should resize")
	}
	f.rec.PointerMove(geom.Pt(60, 0))
	f.rec.PointerUp()
	f.rec.PointerMove(geom.Pt(90, 90))

	if got := sh.(shape.VertexEditor).Points()[1]; got != geom.Pt(60, 0) {
		t.Fatalf("vertex = %v, want (60,0)", got)
	}
}

func TestPolygonVertexAccumulation(t *testing.T) {
	f := newFixture(t)
	if err := f.creation.SetMode(store.KindPoly); err != nil {
		t.Fatal(err)
	}

	id, err := f.creation.Activate(geom.Pt(5, 5))
	if err != nil {
		t.Fatal(err)
	}
	if !f.creation.Creating() || f.creation.CreatedID() != id {
		t.Fatal("polygon activation should enter creation mode")
	}
	if sel := f.scene.Selection().Get(); sel == nil || sel.ID() != id {
		t.Fatal("in-progress polygon should be selected")
	}

	for _, p := range []geom.Point{geom.Pt(15, 5), geom.Pt(15, 15), geom.Pt(5, 15)} {
		if err := f.rec.PointerDown(p); err != nil {
			t.Fatalf("PointerDown(%v): %v", p, err)
		}
		f.rec.PointerUp()
	}

	rec, err := f.store.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	want := []geom.Point{geom.Pt(5, 5), geom.Pt(15, 5), geom.Pt(15, 15), geom.Pt(5, 15)}
	if len(rec.Points) != len(want) {
		t.Fatalf("points = %v, want %v", rec.Points, want)
	}
	for i := range want {
		if rec.Points[i] != want[i] {
			t.Fatalf("points = %v, want %v", rec.Points, want)
		}
	}
	if pts := f.scene.Get(id).(shape.VertexEditor).Points(); len(pts) != 4 {
		t.Fatalf("scene polygon has %d vertices, want 4", len(pts))
	}

	if err := f.creation.FinishElementCreation(); err != nil {
		t.Fatal(err)
	}
	if f.creation.Creating() || f.creation.CreatedID() != "" {
		t.Fatal("finish should leave creation mode")
	}
	if f.scene.Get(id) == nil {
		t.Fatal("a complete polygon must be kept")
	}
}

func TestCreationRollback(t *testing.T) {
	f := newFixture(t)
	f.creation.SetMode(store.KindPoly)

	id, _ := f.creation.Activate(geom.Pt(5, 5))
	f.rec.PointerDown(geom.Pt(15, 5))

	if err := f.creation.FinishElementCreation(); err != nil {
		t.Fatal(err)
	}
	if f.creation.Creating() {
		t.Fatal("creation flag should be cleared")
	}
	if _, err := f.store.Get(id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("incomplete polygon still stored: err = %v", err)
	}
	if f.scene.Get(id) != nil || f.scene.Selection().Get() != nil {
		t.Fatal("incomplete polygon should leave the scene and the selection")
	}
}

func TestFinishWithoutSelection(t *testing.T) {
	f := newFixture(t)
	f.creation.EnableEditingMode()
	if err := f.creation.FinishElementCreation(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v, want ErrNoSelection", err)
	}
	if !f.creation.Creating() {
		t.Fatal("failed finish must not change state")
	}
}

func TestNothingToExtend(t *testing.T) {
	f := newFixture(t)
	f.creation.EnableEditingMode()
	if err := f.rec.PointerDown(geom.Pt(1, 1)); !errors.Is(err, ErrNothingToExtend) {
		t.Fatalf("err = %v, want ErrNothingToExtend", err)
	}
}

func TestEditingModeExtendsSelection(t *testing.T) {
	f := newFixture(t)
	sh := f.addRect(t, geom.Rect{X: 10, Y: 10, Width: 10, Height: 10})
	f.rec.PointerDown(geom.Pt(15, 15))
	f.rec.PointerUp()

	f.creation.EnableEditingMode()
	if err := f.rec.PointerDown(geom.Pt(50, 40)); err != nil {
		t.Fatal(err)
	}
	if got := frame(t, sh); got != (geom.Rect{X: 10, Y: 10, Width: 40, Height: 30}) {
		t.Fatalf("frame = %+v", got)
	}
	if f.scene.Selection().Get() != sh {
		t.Fatal("creation-mode presses must not change the selection")
	}
}

func TestActivateRect(t *testing.T) {
	f := newFixture(t)
	f.addRect(t, geom.Rect{Width: 1, Height: 1})

	id, err := f.creation.Activate(geom.Pt(50, 60))
	if err != nil {
		t.Fatal(err)
	}
	rec, _ := f.store.Get(id)
	if rec.Name != "Shape 1" {
		t.Errorf("name = %q, want %q", rec.Name, "Shape 1")
	}
	if rec.Rect.X != 40 || rec.Rect.Y != 50 || *rec.Rect.W != DefaultRectSize || *rec.Rect.H != DefaultRectSize {
		t.Errorf("rect = %+v", rec.Rect)
	}
	if f.creation.Creating() {
		t.Error("rectangle creation is instantaneous")
	}
}

func TestCancelCreation(t *testing.T) {
	f := newFixture(t)
	f.creation.SetMode(store.KindPoly)
	id, _ := f.creation.Activate(geom.Pt(5, 5))

	if err := f.creation.SetMode(store.KindRect); err != nil {
		t.Fatal(err)
	}
	if f.creation.Creating() {
		t.Fatal("switching mode should cancel creation")
	}
	if f.scene.Get(id) != nil {
		t.Fatal("cancelled single-vertex polygon should be removed")
	}
}
