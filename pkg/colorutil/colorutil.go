// Package colorutil provides shared colors for the grid composer.
package colorutil

import "image/color"

// Common colors used throughout the application.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// Surface palette.
	Background  = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	GridLine    = color.RGBA{R: 204, G: 204, B: 204, A: 255}
	Placeholder = color.RGBA{R: 160, G: 160, B: 160, A: 255}

	// Warning badge for cells whose image has no cross-origin grant.
	BadgeFill  = color.RGBA{R: 255, G: 193, B: 7, A: 255}
	BadgeGlyph = color.RGBA{R: 66, G: 50, B: 0, A: 255}
)

// Blend mixes two colors, taking opacity of the foreground (0.0 - 1.0).
func Blend(fg, bg color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return fg
	}
	if opacity <= 0 {
		return bg
	}
	inv := 1 - opacity
	return color.RGBA{
		R: uint8(float64(fg.R)*opacity + float64(bg.R)*inv),
		G: uint8(float64(fg.G)*opacity + float64(bg.G)*inv),
		B: uint8(float64(fg.B)*opacity + float64(bg.B)*inv),
		A: 255,
	}
}
