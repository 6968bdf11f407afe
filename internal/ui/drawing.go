package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawRect draws a rectangle. It is defined as a variable so tests can
// override it to capture draw calls.
var drawRect = func(dst *ebiten.Image, r image.Rectangle, c color.Color, filled bool) {
	if filled {
		vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
	} else {
		vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, c, false)
	}
}

// drawCircle draws a filled circle, or a ring of the given width when width > 0.
var drawCircle = func(dst *ebiten.Image, x, y, r float64, c color.Color, width float64) {
	if width > 0 {
		vector.StrokeCircle(dst, float32(x), float32(y), float32(r), float32(width), c, true)
		return
	}
	vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), c, true)
}
