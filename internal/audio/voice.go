package audio

import (
	"math"

	"github.com/ingyamilmolinar/swirl/core/model"
)

// Voice generates PCM samples in the range [-1,1].
type Voice interface {
	// Sample returns the next sample and whether the voice has finished.
	Sample() (float64, bool)
}

const attackTime = 0.02

// note is one oscillator with a linear attack/release envelope: 0 to the
// peak over the attack, then down to 0 at the end of the note.
type note struct {
	wave   model.Waveform
	phase  float64
	inc    float64
	peak   float64
	i      int
	attack int
	n      int
}

func newNote(wave model.Waveform, freq, velocity, duration float64, sampleRate int) *note {
	sr := float64(sampleRate)
	n := int(math.Max(duration, attackTime) * sr)
	return &note{
		wave:   wave,
		inc:    freq / sr,
		peak:   velocity,
		attack: int(attackTime * sr),
		n:      n,
	}
}

func (v *note) Sample() (float64, bool) {
	if v.i >= v.n {
		return 0, true
	}
	var env float64
	if v.i < v.attack {
		env = v.peak * float64(v.i) / float64(v.attack)
	} else if rel := v.n - v.attack; rel > 0 {
		env = v.peak * float64(v.n-v.i) / float64(rel)
	}
	s := oscillate(v.wave, v.phase) * env
	v.phase += v.inc
	v.phase -= math.Floor(v.phase)
	v.i++
	return s, false
}

// oscillate evaluates one cycle of w at phase p in [0,1).
func oscillate(w model.Waveform, p float64) float64 {
	switch w {
	case model.Square:
		if p < 0.5 {
			return 1
		}
		return -1
	case model.Saw:
		return 2*p - 1
	case model.Triangle:
		if p < 0.5 {
			return p*4 - 1
		}
		return 3 - p*4
	default:
		return math.Sin(2 * math.Pi * p)
	}
}
