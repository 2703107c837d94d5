package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 50, Height: 50}
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(10, 10), true},
		{Pt(60, 60), true},
		{Pt(35, 35), true},
		{Pt(9.9, 35), false},
		{Pt(35, 60.1), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestCloseEnough(t *testing.T) {
	if !CloseEnough(10, 13, 4) {
		t.Error("expected 10 and 13 to be close with threshold 4")
	}
	if CloseEnough(10, 14, 4) {
		t.Error("threshold is exclusive: 10 and 14 must not be close with threshold 4")
	}
	if !NearPoint(Pt(0, 0), Pt(3, -3), 4) {
		t.Error("expected (0,0) near (3,-3)")
	}
	if NearPoint(Pt(0, 0), Pt(3, 5), 4) {
		t.Error("expected (0,0) not near (3,5)")
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{Pt(5, 5), Pt(15, 5), Pt(15, 15), Pt(5, 15)}
	if !PointInPolygon(Pt(10, 10), square) {
		t.Error("center of square should be inside")
	}
	if PointInPolygon(Pt(20, 10), square) {
		t.Error("point right of square should be outside")
	}

	// Concave "L" shape: the notch must be outside.
	l := []Point{Pt(0, 0), Pt(20, 0), Pt(20, 10), Pt(10, 10), Pt(10, 20), Pt(0, 20)}
	if PointInPolygon(Pt(15, 15), l) {
		t.Error("notch of L should be outside")
	}
	if !PointInPolygon(Pt(5, 15), l) {
		t.Error("leg of L should be inside")
	}

	if PointInPolygon(Pt(1, 1), []Point{Pt(0, 0), Pt(2, 2)}) {
		t.Error("degenerate polygon should contain nothing")
	}
}

func TestBoundsAndOutside(t *testing.T) {
	b := BoundsOf([]Point{Pt(5, 7), Pt(-3, 12), Pt(9, 1)})
	want := Rect{X: -3, Y: 1, Width: 12, Height: 11}
	if b != want {
		t.Fatalf("BoundsOf = %+v, want %+v", b, want)
	}

	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{X: 10, Y: 10, Width: 5, Height: 5}, false},
		{Rect{X: 801, Y: 10, Width: 5, Height: 5}, true},
		{Rect{X: 10, Y: 601, Width: 5, Height: 5}, true},
		{Rect{X: -20, Y: 10, Width: 5, Height: 5}, true},
		{Rect{X: 10, Y: -20, Width: 5, Height: 5}, true},
		{Rect{X: -20, Y: -20, Width: 25, Height: 25}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Outside(800, 600); got != tt.want {
			t.Errorf("Outside(%+v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestClipPolygon(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	inside := []Point{Pt(1, 1), Pt(5, 1), Pt(5, 5)}
	if got := ClipPolygon(inside, bounds); len(got) != 3 {
		t.Fatalf("polygon inside bounds should be unchanged, got %v", got)
	}

	if got := ClipPolygon([]Point{Pt(20, 20), Pt(30, 20), Pt(30, 30)}, bounds); len(got) != 0 {
		t.Fatalf("polygon outside bounds should clip to nothing, got %v", got)
	}

	straddling := []Point{Pt(-5, 2), Pt(5, 2), Pt(5, 8), Pt(-5, 8)}
	got := BoundsOf(ClipPolygon(straddling, bounds))
	want := Rect{X: 0, Y: 2, Width: 5, Height: 6}
	if got != want {
		t.Fatalf("clipped bounds = %+v, want %+v", got, want)
	}
}
