package ui

import (
	"image/color"

	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/internal/utils"
)

var (
	colBG       = color.RGBA{12, 12, 20, 255}
	colBar      = color.RGBA{24, 24, 36, 230}
	colRing     = color.RGBA{50, 50, 70, 255}
	colBound    = color.RGBA{70, 40, 40, 255}
	colSolo     = color.RGBA{255, 255, 255, 255}
	colRipple   = color.RGBA{200, 220, 255, 255}
	colSwirl    = color.RGBA{140, 120, 255, 255}
	colOverlay  = color.RGBA{0, 0, 0, 180}
	colSliderBG = color.RGBA{80, 80, 80, 255}
	colSliderFG = color.RGBA{200, 200, 200, 255}
)

const (
	muteDarken    = 0.35
	hoverBrighten = 1.4
)

// voiceColor applies the mute and hover adjustments to a voice color.
func voiceColor(c model.Color, muted, hovered bool) color.RGBA {
	k := 1.0
	if muted {
		k *= muteDarken
	}
	if hovered {
		k *= hoverBrighten
	}
	return color.RGBA{
		R: uint8(utils.Clamp01(c[0]*k) * 255),
		G: uint8(utils.Clamp01(c[1]*k) * 255),
		B: uint8(utils.Clamp01(c[2]*k) * 255),
		A: 255,
	}
}

// withAlpha returns c with its alpha scaled by a in [0,1].
func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = utils.Clamp01(a)
	return color.RGBA{uint8(float64(c.R) * a), uint8(float64(c.G) * a), uint8(float64(c.B) * a), uint8(float64(c.A) * a)}
}
