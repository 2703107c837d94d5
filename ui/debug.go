package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// MessageTTL is how long a message stays on screen.
const MessageTTL = 4 * time.Second

// DebugPanel shows the most recent warning or error in the bottom-right
// corner for a few seconds.
type DebugPanel struct {
	Error   string
	shownAt time.Time
}

func (d *DebugPanel) SetError(msg string) {
	d.Error = msg
	d.shownAt = time.Now()
}

func (d *DebugPanel) Clear() {
	d.Error = ""
}

// Expire clears the message once it has been shown for MessageTTL.
func (d *DebugPanel) Expire(now time.Time) {
	if d.Error != "" && now.Sub(d.shownAt) >= MessageTTL {
		d.Clear()
	}
}

func (d *DebugPanel) Draw(screen *ebiten.Image, getScreenSize func() (int, int), getFace func() font.Face, drawText DrawTextFunc) {
	if d == nil || d.Error == "" {
		return
	}
	w, h := getScreenSize()
	// Panel size
	pw, ph := 300, 40
	x := w - pw - 10
	y := h - ph - 30
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(pw), float32(ph), ColorPanel, false)
	if getFace != nil && drawText != nil {
		if face := getFace(); face != nil {
			drawText(screen, face, d.Error, x+8, y+8, color.RGBA{255, 200, 50, 255})
		}
	}
}
