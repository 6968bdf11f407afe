package sim

import (
	"math"

	"github.com/ingyamilmolinar/swirl/internal/utils"
)

const (
	PulseEnergyCeil = 1.8
	PulseMax        = 1.5

	pulseDecayRate = 1.6
	pulseTauUp     = 0.10
	pulseTauDown   = 0.45
	ambientGain    = 0.05
)

// Pulses holds one energy accumulator and one smoothed pulse per voice.
type Pulses struct {
	Energy []float64
	Value  []float64
}

func NewPulses(n int) *Pulses {
	return &Pulses{Energy: make([]float64, n), Value: make([]float64, n)}
}

// Inject adds a note's velocity to a voice's energy. Unknown voices are ignored.
func (p *Pulses) Inject(voice int, velocity float64) {
	if voice < 0 || voice >= len(p.Energy) || math.IsNaN(velocity) {
		return
	}
	p.Energy[voice] = utils.Clamp(p.Energy[voice]+velocity, 0, PulseEnergyCeil)
}

// Smooth decays the energies and moves each pulse toward its energy with a
// fast attack and slow release.
func (p *Pulses) Smooth(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	decay := math.Exp(-dt * pulseDecayRate)
	up := 1 - math.Exp(-dt/pulseTauUp)
	down := 1 - math.Exp(-dt/pulseTauDown)
	for i := range p.Energy {
		p.Energy[i] *= decay
		target := utils.Clamp(p.Energy[i], 0, PulseMax)
		a := down
		if target > p.Value[i] {
			a = up
		}
		p.Value[i] = utils.Clamp(p.Value[i]+(target-p.Value[i])*a, 0, PulseMax)
	}
}

// Ambient lifts every pulse by an output level in [0,1].
func (p *Pulses) Ambient(level float64) {
	if !(level > 0) {
		return
	}
	level = math.Min(level, 1)
	for i := range p.Value {
		p.Value[i] = math.Min(p.Value[i]+level*ambientGain, PulseMax)
	}
}
