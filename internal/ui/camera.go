package ui

import (
	"math"

	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/model"
)

// Camera looks down on the XZ plane. Voice positions are spread by Spread
// before Scale converts them to pixels; the offsets place the origin.
type Camera struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

const (
	Spread   = 1.8
	minScale = 10.0
	maxScale = 300.0
)

func NewCamera() *Camera { return &Camera{Scale: 80} }

// Fit centres the origin in the w×h area starting at top and sizes the view
// so the whole drag radius is visible.
func (c *Camera) Fit(w, h, top int) {
	c.OffsetX = float64(w) / 2
	c.OffsetY = float64(top) + float64(h)/2
	c.Scale = clampScale(math.Min(float64(w), float64(h)) / fitUnits)
}

// fitUnits spans the drag radius on both sides plus a marker's margin.
const fitUnits = 2*Spread*engine.DragRadius + 1.2

// ScreenPos converts a world position to screen pixels.
func (c *Camera) ScreenPos(p model.Vec3) (sx, sy float64) {
	sx = p.X*Spread*c.Scale + c.OffsetX
	sy = p.Z*Spread*c.Scale + c.OffsetY
	return
}

// WorldPos is the inverse of ScreenPos on the y=0 plane.
func (c *Camera) WorldPos(sx, sy float64) model.Vec3 {
	k := Spread * c.Scale
	return model.Vec3{X: (sx - c.OffsetX) / k, Z: (sy - c.OffsetY) / k}
}

// Pixels converts a world distance to screen pixels.
func (c *Camera) Pixels(d float64) float64 { return d * Spread * c.Scale }

// Snap rounds the camera offsets to integer pixels.
func (c *Camera) Snap() {
	c.OffsetX = math.Round(c.OffsetX)
	c.OffsetY = math.Round(c.OffsetY)
}

// HandleWheel zooms around the cursor.
func (c *Camera) HandleWheel() bool {
	_, wheelY := wheel()
	if wheelY == 0 {
		return false
	}
	mx, my := cursorPosition()
	wx := (float64(mx) - c.OffsetX) / c.Scale
	wy := (float64(my) - c.OffsetY) / c.Scale
	const (
		zoomFactor      = 1.05
		zoomSensitivity = 1.0
	)
	newScale := clampScale(c.Scale * math.Pow(zoomFactor, wheelY*zoomSensitivity))
	c.OffsetX = float64(mx) - wx*newScale
	c.OffsetY = float64(my) - wy*newScale
	c.Scale = newScale
	return true
}

func clampScale(s float64) float64 {
	return math.Max(minScale, math.Min(maxScale, s))
}
