package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/core/pitch"
)

const topOffset = 40 // transport-bar height in px

// Transport is the bar across the top of the window: tempo and key readout,
// play and pause buttons, and the master volume slider.
type Transport struct {
	playRect  image.Rectangle
	pauseRect image.Rectangle
	Volume    *Slider

	leftPrev bool
}

func NewTransport(volume float64) *Transport {
	t := &Transport{
		playRect:  image.Rect(10, 8, 40, 30),
		pauseRect: image.Rect(50, 8, 80, 30),
		Volume:    NewSlider("vol", volume),
	}
	t.SetWidth(960)
	return t
}

// SetWidth anchors the volume slider to the right edge.
func (t *Transport) SetWidth(w int) {
	t.Volume.SetRect(image.Rect(w-200, 14, w-80, 26))
}

// Contains reports whether a screen point lies on the bar.
func (t *Transport) Contains(x, y int) bool { return y >= 0 && y < topOffset }

// Update handles a frame of pointer input. It returns a pause toggle when a
// button was clicked and whether the bar consumed the pointer.
func (t *Transport) Update(x, y int, left, paused bool) (*engine.Command, bool) {
	defer func() { t.leftPrev = left }()
	if t.Volume.Handle(x, y, left) {
		return nil, true
	}
	if !t.Contains(x, y) {
		return nil, false
	}
	if left && !t.leftPrev {
		p := image.Pt(x, y)
		if (p.In(t.playRect) && paused) || (p.In(t.pauseRect) && !paused) {
			return &engine.Command{Kind: engine.CmdTogglePause}, true
		}
	}
	return nil, true
}

// statusLine formats tempo, key and transport state.
func statusLine(p model.EngineParams, paused bool) string {
	state := "playing"
	if paused {
		state = "paused"
	}
	return fmt.Sprintf("%3.0f BPM  %s %s  %s", p.BPM, pitch.NoteName(p.Root), pitch.ScaleName(p.Scale), state)
}

func (t *Transport) Draw(dst *ebiten.Image, p model.EngineParams, paused bool) {
	drawRect(dst, image.Rect(0, 0, dst.Bounds().Dx(), topOffset), colBar, true)

	drawRect(dst, t.playRect, color.White, !paused)
	ebitenutil.DebugPrintAt(dst, "▶", t.playRect.Min.X+11, t.playRect.Min.Y+3)

	drawRect(dst, t.pauseRect, color.White, paused)
	ebitenutil.DebugPrintAt(dst, "||", t.pauseRect.Min.X+9, t.pauseRect.Min.Y+3)

	ebitenutil.DebugPrintAt(dst, statusLine(p, paused), 100, 12)
	t.Volume.Draw(dst)
}
