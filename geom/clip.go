package geom

// ClipPolygon clips a closed polygon against r (Sutherland–Hodgman).
// The result may be empty when the polygon lies entirely outside r.
func ClipPolygon(pts []Point, r Rect) []Point {
	out := pts
	edges := []struct {
		inside func(Point) bool
		cross  func(a, b Point) Point
	}{
		{ // left
			inside: func(p Point) bool { return p.X >= r.X },
			cross:  func(a, b Point) Point { return crossX(a, b, r.X) },
		},
		{ // right
			inside: func(p Point) bool { return p.X <= r.X+r.Width },
			cross:  func(a, b Point) Point { return crossX(a, b, r.X+r.Width) },
		},
		{ // top
			inside: func(p Point) bool { return p.Y >= r.Y },
			cross:  func(a, b Point) Point { return crossY(a, b, r.Y) },
		},
		{ // bottom
			inside: func(p Point) bool { return p.Y <= r.Y+r.Height },
			cross:  func(a, b Point) Point { return crossY(a, b, r.Y+r.Height) },
		},
	}

	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = make([]Point, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && e.inside(prev):
				out = append(out, cur)
			case e.inside(cur):
				out = append(out, e.cross(prev, cur), cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func crossX(a, b Point, x float64) Point {
	t := (x - a.X) / (b.X - a.X)
	return Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func crossY(a, b Point, y float64) Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return Point{X: a.X + t*(b.X-a.X), Y: y}
}
