package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"shape-canvas/geom"
)

// Button is a toolbar entry. Bounds are in window pixels.
type Button struct {
	Label   string
	Bounds  geom.Rect
	OnClick func()
	// Active reports whether the button reflects the current insert mode.
	Active func() bool
}

// Hit reports whether the window position (mx, my) is on the button.
func (b *Button) Hit(mx, my int) bool {
	return b.Bounds.Contains(geom.Pt(float64(mx), float64(my)))
}

// Press runs the click action. It reports false for a button without one.
func (b *Button) Press() bool {
	if b.OnClick == nil {
		return false
	}
	b.OnClick()
	return true
}

func (b *Button) active() bool {
	return b.Active != nil && b.Active()
}

// Draw fills the button and centers its label. A nil face or drawText draws
// the background only.
func (b *Button) Draw(screen *ebiten.Image, face font.Face, drawText DrawTextFunc) {
	x, y := float32(b.Bounds.X), float32(b.Bounds.Y)
	w, h := float32(b.Bounds.Width), float32(b.Bounds.Height)

	fill := ColorButton
	if b.active() {
		fill = ColorButtonActive
	}
	vector.DrawFilledRect(screen, x, y, w, h, fill, false)
	if b.active() {
		vector.StrokeRect(screen, x, y, w, h, 1, color.White, false)
	}

	if face == nil || drawText == nil {
		return
	}
	tw := float64(font.MeasureString(face, b.Label).Ceil())
	th := float64(face.Metrics().Height.Ceil())
	tx := b.Bounds.X + (b.Bounds.Width-tw)/2
	ty := b.Bounds.Y + (b.Bounds.Height-th)/2
	drawText(screen, face, b.Label, int(tx), int(ty), color.White)
}
