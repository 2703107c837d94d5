package input

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"shape-canvas/geom"
	"shape-canvas/store"
)

// Host receives the editor commands the window's input produces.
type Host interface {
	MapPointer(x, y int) geom.Point
	PointerDown(p geom.Point)
	PointerMove(p geom.Point)
	PointerUp(p geom.Point)
	Activate(p geom.Point)
	SetInsertMode(k store.Kind)
	EnableEditingMode()
	FinishCreation()
	CancelCreation()
	Save()
	RequestScreenshot()
}

// System polls ebiten's mouse and keyboard state once per update.
type System struct {
	host   Host
	clicks ClickTracker

	pressed    bool
	lastMouseX int
	lastMouseY int
}

func NewSystem(h Host) *System {
	return &System{host: h}
}

func (s *System) Update() {
	s.handleControlKeys()
	s.handleMouse()
}

func (s *System) handleControlKeys() {
	// --- Screenshot ---
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		s.host.RequestScreenshot()
	}

	// --- Save ---
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.host.Save()
		return
	}

	// --- Insert mode ---
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.host.SetInsertMode(store.KindRect)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.host.SetInsertMode(store.KindPoly)
	}

	// --- Creation ---
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		s.host.EnableEditingMode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		s.host.FinishCreation()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.host.CancelCreation()
	}
}

func (s *System) handleMouse() {
	mx, my := ebiten.CursorPosition()
	p := s.host.MapPointer(mx, my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.pressed = true
		s.lastMouseX, s.lastMouseY = mx, my
		// The down event goes first so a double click is seen as two
		// clicks followed by an activation, as browsers deliver it.
		s.host.PointerDown(p)
		if s.clicks.Click(time.Now(), mx, my) {
			s.host.Activate(p)
		}
		return
	}

	if s.pressed && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.pressed = false
		s.host.PointerUp(p)
		return
	}

	if s.pressed && (mx != s.lastMouseX || my != s.lastMouseY) {
		s.lastMouseX, s.lastMouseY = mx, my
		s.host.PointerMove(p)
	}
}
