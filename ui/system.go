package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"shape-canvas/geom"
)

// DrawTextFunc draws s with its top-left corner at (x, y).
type DrawTextFunc func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)

var (
	ColorButton       = color.RGBA{60, 60, 70, 200}
	ColorButtonActive = color.RGBA{0, 120, 255, 220}
	ColorPanel        = color.RGBA{40, 40, 40, 220}
)

const (
	buttonW      = 50
	buttonH      = 24
	buttonMargin = 10

	// ToolbarHeight is the strip at the top of the window the buttons sit in.
	ToolbarHeight = buttonH + 2*buttonMargin
	// StatusHeight is the status bar at the bottom of the window.
	StatusHeight = 20
)

// Actions are the editor commands reachable from the toolbar.
type Actions struct {
	RectMode   func()
	PolyMode   func()
	Finish     func()
	IsRectMode func() bool
	IsPolyMode func() bool
	Status     func() string
}

type UISystem struct {
	buttons       []*Button
	getFontFace   func() font.Face
	getScreenSize func() (int, int)
	drawText      DrawTextFunc
	actions       Actions
	Debug         *DebugPanel
}

func NewUISystem(getFontFace func() font.Face, getScreenSize func() (int, int), drawText DrawTextFunc, actions Actions) *UISystem {
	ui := &UISystem{
		getFontFace:   getFontFace,
		getScreenSize: getScreenSize,
		drawText:      drawText,
		actions:       actions,
		Debug:         &DebugPanel{},
	}
	ui.initButtons()
	return ui
}

func (ui *UISystem) initButtons() {
	ui.buttons = []*Button{
		{Label: "Rect", OnClick: ui.actions.RectMode, Active: ui.actions.IsRectMode},
		{Label: "Poly", OnClick: ui.actions.PolyMode, Active: ui.actions.IsPolyMode},
		{Label: "Done", OnClick: ui.actions.Finish},
	}
	ui.updateButtonPositions()
}

// updateButtonPositions lays the buttons out right to left from the
// top-right corner.
func (ui *UISystem) updateButtonPositions() {
	w, _ := ui.getScreenSize()
	x := float64(w)
	for i := len(ui.buttons) - 1; i >= 0; i-- {
		x -= buttonW + buttonMargin
		ui.buttons[i].Bounds = geom.Rect{X: x, Y: buttonMargin, Width: buttonW, Height: buttonH}
	}
}

func (ui *UISystem) IsMouseOver(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.Hit(mx, my) {
			return true
		}
	}
	return false
}

// Update handles toolbar clicks and reports whether the press was consumed.
func (ui *UISystem) Update() bool {
	ui.updateButtonPositions()
	ui.Debug.Expire(time.Now())
	mx, my := ebiten.CursorPosition()

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	for _, b := range ui.buttons {
		if b.Hit(mx, my) {
			b.Press()
			return true
		}
	}
	return false
}

func (ui *UISystem) Draw(screen *ebiten.Image) {
	ui.updateButtonPositions()
	face := ui.face()
	for _, b := range ui.buttons {
		b.Draw(screen, face, ui.drawText)
	}
	ui.drawStatus(screen)
	if ui.Debug != nil {
		ui.Debug.Draw(screen, ui.getScreenSize, ui.getFontFace, ui.drawText)
	}
}

func (ui *UISystem) drawStatus(screen *ebiten.Image) {
	if ui.actions.Status == nil || ui.drawText == nil {
		return
	}
	w, h := ui.getScreenSize()
	y := h - StatusHeight
	vector.DrawFilledRect(screen, 0, float32(y), float32(w), StatusHeight, ColorPanel, false)
	if face := ui.face(); face != nil {
		ui.drawText(screen, face, ui.actions.Status(), 8, y+3, color.White)
	}
}

func (ui *UISystem) face() font.Face {
	if ui.getFontFace == nil {
		return nil
	}
	return ui.getFontFace()
}
