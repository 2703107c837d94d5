package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"shape-canvas/geom"
)

// Image is a software Surface backed by an *image.RGBA.
// Polygons are filled with the x/image vector rasterizer after being clipped
// to the surface bounds.
type Image struct {
	img  *image.RGBA
	bg   color.Color
	face font.Face
	z    *vector.Rasterizer
}

// NewImage creates a surface of the given size. A nil face falls back to basicfont.Face7x13.
func NewImage(width, height int, bg color.Color, face font.Face) *Image {
	if face == nil {
		face = basicfont.Face7x13
	}
	im := &Image{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		bg:   bg,
		face: face,
		z:    vector.NewRasterizer(width, height),
	}
	im.Clear()
	return im
}

// RGBA exposes the backing image. Its Pix slice is premultiplied RGBA.
func (im *Image) RGBA() *image.RGBA {
	return im.img
}

func (im *Image) Size() (float64, float64) {
	b := im.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (im *Image) bounds() geom.Rect {
	w, h := im.Size()
	return geom.Rect{Width: w, Height: h}
}

func (im *Image) Clear() {
	draw.Draw(im.img, im.img.Bounds(), image.NewUniform(im.bg), image.Point{}, draw.Src)
}

func (im *Image) FillRect(r geom.Rect, c color.Color) {
	im.FillPolygon(Corners(r), c)
}

func (im *Image) StrokeRect(r geom.Rect, width float64, c color.Color) {
	im.StrokePolygon(Corners(r), width, c)
}

func (im *Image) FillPolygon(pts []geom.Point, c color.Color) {
	clipped := geom.ClipPolygon(pts, im.bounds())
	if len(clipped) < 3 {
		return
	}
	im.begin()
	im.path(clipped)
	im.flush(c)
}

// StrokePolygon outlines the closed loop with one quad per edge, all
// accumulated into a single rasterizer pass so overlapping corners are not
// composited twice.
func (im *Image) StrokePolygon(pts []geom.Point, width float64, c color.Color) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	half := width / 2
	b := im.bounds()
	drawn := false

	im.begin()
	for i := range pts {
		a := pts[i]
		e := pts[(i+1)%len(pts)]
		dx, dy := e.X-a.X, e.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		// Extend along the edge so neighbouring quads meet at the corners.
		ex, ey := dx/l*half, dy/l*half
		quad := []geom.Point{
			{X: a.X - ex - nx, Y: a.Y - ey - ny},
			{X: e.X + ex - nx, Y: e.Y + ey - ny},
			{X: e.X + ex + nx, Y: e.Y + ey + ny},
			{X: a.X - ex + nx, Y: a.Y - ey + ny},
		}
		clipped := geom.ClipPolygon(quad, b)
		if len(clipped) < 3 {
			continue
		}
		im.path(clipped)
		drawn = true
	}
	if drawn {
		im.flush(c)
	}
}

func (im *Image) Label(s string, at geom.Point, c color.Color) {
	d := font.Drawer{
		Dst:  im.img,
		Src:  image.NewUniform(c),
		Face: im.face,
		Dot:  fixed.P(int(at.X), int(at.Y)),
	}
	d.DrawString(s)
}

func (im *Image) begin() {
	b := im.img.Bounds()
	im.z.Reset(b.Dx(), b.Dy())
	im.z.DrawOp = draw.Over
}

func (im *Image) path(pts []geom.Point) {
	im.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		im.z.LineTo(float32(p.X), float32(p.Y))
	}
	im.z.ClosePath()
}

func (im *Image) flush(c color.Color) {
	im.z.Draw(im.img, im.img.Bounds(), image.NewUniform(c), image.Point{})
}
