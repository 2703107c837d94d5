// Package script runs Starlark seed scripts that populate a scene.
//
// Scripts see two builtins, rect and poly, plus the surface size:
//
//	rect(x, y, w=None, h=None, name="", color=None)
//	poly(points, name="", color=None)
//	width, height
//
// Colors are (r, g, b) tuples. Each builtin returns the new shape's ID.
package script

import (
	"fmt"
	"log/slog"

	"go.starlark.net/starlark"

	"shape-canvas/geom"
	"shape-canvas/logging"
	"shape-canvas/store"
)

// DefaultColor is used when a script does not pass one.
var DefaultColor = store.Color{R: 128, G: 128, B: 128}

type Options struct {
	Width, Height float64
	Logger        *slog.Logger
}

// Result lists the shapes a script inserted, in order.
type Result struct {
	IDs []string
}

type runner struct {
	store  store.Store
	log    *slog.Logger
	result Result
}

// Run executes src as a Starlark program named filename. src may be a
// string, []byte, io.Reader or nil to read filename from disk.
func Run(st store.Store, filename string, src any, opts Options) (Result, error) {
	r := &runner{store: st, log: logging.OrNop(opts.Logger)}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			r.log.Info("script", "file", filename, "msg", msg)
		},
	}

	predeclared := starlark.StringDict{
		"rect":   starlark.NewBuiltin("rect", r.rect),
		"poly":   starlark.NewBuiltin("poly", r.poly),
		"width":  starlark.Float(opts.Width),
		"height": starlark.Float(opts.Height),
	}

	if _, err := starlark.ExecFile(thread, filename, src, predeclared); err != nil {
		return r.result, fmt.Errorf("run %s: %w", filename, err)
	}
	return r.result, nil
}

func (r *runner) insert(rec store.Record) (starlark.Value, error) {
	if rec.Name == "" {
		n, err := r.store.Count(rec.Kind)
		if err != nil {
			return nil, err
		}
		prefix := "Shape"
		if rec.Kind == store.KindPoly {
			prefix = "Poly"
		}
		rec.Name = fmt.Sprintf("%s %d", prefix, n)
	}

	id, err := r.store.Insert(rec)
	if err != nil {
		return nil, err
	}
	r.result.IDs = append(r.result.IDs, id)
	return starlark.String(id), nil
}

func (r *runner) rect(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		x, y   starlark.Value
		w, h   starlark.Value = starlark.None, starlark.None
		name   string
		colorV starlark.Value = starlark.None
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "x", &x, "y", &y, "w?", &w, "h?", &h, "name?", &name, "color?", &colorV); err != nil {
		return nil, err
	}

	coords := &store.RectCoords{}
	var err error
	if coords.X, err = toFloat(b, "x", x); err != nil {
		return nil, err
	}
	if coords.Y, err = toFloat(b, "y", y); err != nil {
		return nil, err
	}
	if (w == starlark.None) != (h == starlark.None) {
		return nil, fmt.Errorf("%s: w and h must be given together", b.Name())
	}
	if w != starlark.None {
		wf, err := toFloat(b, "w", w)
		if err != nil {
			return nil, err
		}
		hf, err := toFloat(b, "h", h)
		if err != nil {
			return nil, err
		}
		coords.W, coords.H = &wf, &hf
	}

	c, err := toColor(b, colorV)
	if err != nil {
		return nil, err
	}
	return r.insert(store.Record{Kind: store.KindRect, Name: name, Color: c, Rect: coords})
}

func (r *runner) poly(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		points starlark.Iterable
		name   string
		colorV starlark.Value = starlark.None
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "points", &points, "name?", &name, "color?", &colorV); err != nil {
		return nil, err
	}

	var pts []geom.Point
	iter := points.Iterate()
	defer iter.Done()
	var v starlark.Value
	for iter.Next(&v) {
		p, err := toPoint(b, v)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("%s: at least one point is required", b.Name())
	}

	c, err := toColor(b, colorV)
	if err != nil {
		return nil, err
	}
	return r.insert(store.Record{Kind: store.KindPoly, Name: name, Color: c, Points: pts})
}

func toFloat(b *starlark.Builtin, what string, v starlark.Value) (float64, error) {
	f, ok := starlark.AsFloat(v)
	if !ok {
		return 0, fmt.Errorf("%s: %s must be a number, got %s", b.Name(), what, v.Type())
	}
	return f, nil
}

func toPoint(b *starlark.Builtin, v starlark.Value) (geom.Point, error) {
	seq, ok := v.(starlark.Indexable)
	if !ok || seq.Len() != 2 {
		return geom.Point{}, fmt.Errorf("%s: point must be an (x, y) pair, got %s", b.Name(), v.String())
	}
	x, err := toFloat(b, "x", seq.Index(0))
	if err != nil {
		return geom.Point{}, err
	}
	y, err := toFloat(b, "y", seq.Index(1))
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(x, y), nil
}

func toColor(b *starlark.Builtin, v starlark.Value) (store.Color, error) {
	if v == starlark.None {
		return DefaultColor, nil
	}
	seq, ok := v.(starlark.Indexable)
	if !ok || seq.Len() != 3 {
		return store.Color{}, fmt.Errorf("%s: color must be an (r, g, b) tuple, got %s", b.Name(), v.String())
	}
	var ch [3]uint8
	for i := range ch {
		n, err := starlark.AsInt32(seq.Index(i))
		if err != nil || n < 0 || n > 255 {
			return store.Color{}, fmt.Errorf("%s: color channel %d out of range", b.Name(), i)
		}
		ch[i] = uint8(n)
	}
	return store.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}
