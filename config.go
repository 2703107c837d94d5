package main

import "image/color"

const (
	WindowTitle    = "Shape Canvas"
	ScreenshotPath = "screenshot.png"
	FontSize       = 13

	// --- Canvas placement ---
	CanvasMargin = 10.0
	CanvasBorder = 1.0
)

var (
	// --- Colors ---
	ColorWindow       = color.RGBA{30, 30, 35, 255}
	ColorCanvasBorder = color.RGBA{90, 90, 100, 255}
	ColorCanvas       = color.White
	ColorGrid         = color.RGBA{230, 230, 230, 255}
)
