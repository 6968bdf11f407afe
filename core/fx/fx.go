// Package fx maps the smoothed control signals onto effect-bus settings.
package fx

import (
	"math"

	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/internal/utils"
)

// Params are the global bus settings for one frame.
type Params struct {
	ReverbWet     float64
	DelayWet      float64
	DelayFeedback float64
	Drive         float64
	SatWet        float64
	SatDry        float64
}

// Defaults is the bus state before any interaction.
var Defaults = Params{
	ReverbWet:     0.35,
	DelayWet:      0.5,
	DelayFeedback: 0.6,
	Drive:         1.6,
	SatWet:        0.35,
	SatDry:        0.65,
}

// Map derives bus settings from swirl energy and the pointer position (u,v).
// The pointer's distance from the diagonal drives the delay, its position
// along the diagonal drives the saturator.
func Map(energy, u, v float64) Params {
	echo := math.Abs(u - v)
	fizz := utils.Clamp((u+v)/2, 0, 1)
	wet := utils.Clamp(0.15+0.85*fizz, 0, 1)
	return Params{
		ReverbWet:     utils.Clamp(0.35+0.65*energy, 0, 1),
		DelayWet:      utils.Clamp(0.15+0.55*energy+0.30*echo, 0, 1),
		DelayFeedback: utils.Clamp(0.35+0.35*energy+0.25*echo, 0, 0.95),
		Drive:         utils.Clamp(0.6+2.4*fizz, 0.2, 3.0),
		SatWet:        wet,
		SatDry:        1 - wet,
	}
}

// Send is the per-voice routing into the buses.
type Send struct {
	Delay  float64
	Reverb float64
	Level  float64
}

const sendFalloff = 2.5

// VoiceSend routes a voice by its position: further left/right feeds the
// delay, further from the origin feeds the reverb and lowers the direct level.
func VoiceSend(pos model.Vec3, energy float64) Send {
	dist := pos.LenXZ()
	far := utils.Clamp(dist/sendFalloff, 0, 1)
	d := utils.Clamp(0.15+0.85*math.Min(math.Abs(pos.X), 1), 0, 1)
	r := utils.Clamp(0.25+0.75*far, 0, 1.2)
	boost := 1 + 0.8*utils.Clamp(energy, 0, 1)
	return Send{
		Delay:  utils.Clamp(d*boost, 0, 1.2),
		Reverb: utils.Clamp(r*boost, 0, 1.5),
		Level:  0.55 + 0.45*(1-far),
	}
}
