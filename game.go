package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"shape-canvas/editor"
	"shape-canvas/geom"
	"shape-canvas/input"
	"shape-canvas/prefs"
	"shape-canvas/store"
	"shape-canvas/ui"
)

// Game hosts the editor in an ebiten window. The editor paints into its own
// RGBA surface; Game uploads the pixels after each repaint.
type Game struct {
	editor *editor.Editor
	file   *store.File
	prefs  *prefs.Manager
	face   font.Face
	log    *slog.Logger

	// Sub-systems
	input *input.System
	ui    *ui.UISystem

	canvas       *ebiten.Image
	dirty        bool
	screenWidth  int
	screenHeight int

	screenshotRequested bool
}

func NewGame(ed *editor.Editor, file *store.File, pm *prefs.Manager, face font.Face, log *slog.Logger) *Game {
	g := &Game{
		editor: ed,
		file:   file,
		prefs:  pm,
		face:   face,
		log:    log,
		dirty:  true,
	}
	w, h := windowSize(ed)
	g.screenWidth, g.screenHeight = w, h

	g.input = input.NewSystem(g)
	g.ui = ui.NewUISystem(
		func() font.Face { return g.face },
		func() (int, int) { return g.screenWidth, g.screenHeight },
		DrawTextLines,
		ui.Actions{
			RectMode:   func() { g.SetInsertMode(store.KindRect) },
			PolyMode:   func() { g.SetInsertMode(store.KindPoly) },
			Finish:     g.FinishCreation,
			IsRectMode: func() bool { return ed.Creation().Mode() == store.KindRect },
			IsPolyMode: func() bool { return ed.Creation().Mode() == store.KindPoly },
			Status:     ed.Status,
		},
	)
	return g
}

// windowSize fits the canvas, its margin and border, the toolbar and the
// status bar.
func windowSize(ed *editor.Editor) (int, int) {
	w, h := ed.Surface().Size()
	pad := 2 * (CanvasMargin + CanvasBorder)
	return int(w + pad), int(h+pad) + ui.ToolbarHeight + ui.StatusHeight
}

// CanvasOrigin is where the surface's top-left pixel lands in the window.
func CanvasOrigin() (float64, float64) {
	return CanvasMargin + CanvasBorder, ui.ToolbarHeight + CanvasMargin + CanvasBorder
}

func (g *Game) Update() error {
	// Presses on the toolbar never reach the canvas.
	if !g.ui.Update() {
		g.input.Update()
	}

	if g.screenshotRequested {
		g.screenshotRequested = false
		g.writeScreenshot()
	}

	if g.editor.Due(time.Now()) && g.editor.Tick() {
		g.dirty = true
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorWindow)

	surface := g.editor.Surface().RGBA()
	if g.canvas == nil {
		b := surface.Bounds()
		g.canvas = ebiten.NewImage(b.Dx(), b.Dy())
		g.dirty = true
	}
	if g.dirty {
		g.canvas.WritePixels(surface.Pix)
		g.dirty = false
	}

	ox, oy := CanvasOrigin()
	w, h := g.editor.Surface().Size()
	vector.StrokeRect(screen, float32(ox-CanvasBorder/2), float32(oy-CanvasBorder/2),
		float32(w+CanvasBorder), float32(h+CanvasBorder), CanvasBorder, ColorCanvasBorder, false)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(ox, oy)
	screen.DrawImage(g.canvas, op)

	g.ui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenWidth = outsideWidth
	g.screenHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// report logs err and shows it in the window.
func (g *Game) report(msg string, err error) {
	g.log.Warn(msg, "error", err)
	g.ui.Debug.SetError(msg + ": " + err.Error())
}

// --- input.Host ---

func (g *Game) MapPointer(x, y int) geom.Point {
	return g.editor.MapPointer(x, y)
}

func (g *Game) PointerDown(p geom.Point) {
	if err := g.editor.PointerDown(p); err != nil {
		g.report("pointer down", err)
	}
}

func (g *Game) PointerMove(p geom.Point) {
	g.editor.PointerMove(p)
}

func (g *Game) PointerUp(geom.Point) {
	g.editor.PointerUp()
}

func (g *Game) Activate(p geom.Point) {
	id, err := g.editor.Activate(p)
	if err != nil {
		g.report("create shape", err)
		return
	}
	g.log.Debug("shape created", "id", id, "x", p.X, "y", p.Y)
}

func (g *Game) SetInsertMode(k store.Kind) {
	if err := g.editor.SetInsertMode(k); err != nil {
		g.report("insert mode", err)
		return
	}
	if err := g.prefs.SetInsertMode(k); err != nil {
		g.log.Warn("failed to save preferences", "error", err)
	}
}

func (g *Game) EnableEditingMode() {
	g.editor.EnableEditingMode()
}

func (g *Game) FinishCreation() {
	if err := g.editor.FinishElementCreation(); err != nil {
		g.report("finish shape", err)
	}
}

func (g *Game) CancelCreation() {
	if err := g.editor.CancelCreation(); err != nil {
		g.report("cancel shape", err)
	}
}

// Save writes the YAML document. The other stores persist every write.
func (g *Game) Save() {
	if g.file == nil {
		g.log.Info("store saves every change, nothing to do")
		return
	}
	if err := g.file.Save(); err != nil {
		g.report("save", err)
		return
	}
	g.log.Info("scene saved", "path", g.file.Path())
	g.ui.Debug.SetError("saved " + g.file.Path())
}

func (g *Game) RequestScreenshot() {
	g.screenshotRequested = true
}

func (g *Game) writeScreenshot() {
	f, err := os.Create(ScreenshotPath)
	if err != nil {
		g.report("screenshot", err)
		return
	}
	defer f.Close()
	if err := g.editor.Snapshot(f); err != nil {
		g.report("screenshot", err)
		return
	}
	g.dirty = true
	g.log.Info("screenshot saved", "path", ScreenshotPath)
}
