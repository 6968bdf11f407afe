package audio

import (
	"math"

	"github.com/ingyamilmolinar/swirl/core/fx"
)

// delayLine is a fixed-length ring buffer.
type delayLine struct {
	cursor int
	past   []float64
}

func newDelayLine(samples int) *delayLine {
	if samples < 1 {
		samples = 1
	}
	return &delayLine{past: make([]float64, samples)}
}

func (d *delayLine) delayed() float64 { return d.past[d.cursor] }

func (d *delayLine) step(in float64) {
	d.past[d.cursor] = in
	d.cursor++
	if d.cursor >= len(d.past) {
		d.cursor = 0
	}
}

// onePole is a one-pole lowpass.
type onePole struct{ a, y float64 }

func newOnePole(cutoff float64, sampleRate int) onePole {
	return onePole{a: 1 - math.Exp(-2*math.Pi*cutoff/float64(sampleRate))}
}

func (f *onePole) filter(x float64) float64 {
	f.y += f.a * (x - f.y)
	return f.y
}

// dcFilter removes DC offset from the reverb tail.
type dcFilter struct{ a, x, y float64 }

func newDCFilter(sampleRate int) dcFilter {
	rc := 1 / (2 * math.Pi * 10)
	return dcFilter{a: rc / (rc + 1/float64(sampleRate))}
}

func (f *dcFilter) filter(x float64) float64 {
	f.y = f.a * (f.y + x - f.x)
	f.x = x
	return f.y
}

const (
	echoTime   = 0.55
	echoCutoff = 1400
)

// echo is a feedback delay with a lowpass in the loop.
type echo struct {
	line *delayLine
	lp   onePole
}

func newEcho(sampleRate int) *echo {
	return &echo{
		line: newDelayLine(int(echoTime * float64(sampleRate))),
		lp:   newOnePole(echoCutoff, sampleRate),
	}
}

func (e *echo) process(in, feedback float64) float64 {
	out := e.line.delayed()
	e.line.step(in + e.lp.filter(out)*feedback)
	return out
}

// comb and allpass tunings at 44.1 kHz.
var (
	combTunings    = []int{1557, 1617, 1491, 1422, 1277, 1356}
	allpassTunings = []int{556, 441}
)

const (
	reverbRoom  = 0.84
	reverbDamp  = 0.2
	reverbInput = 0.015 * 6
)

type comb struct {
	line  *delayLine
	store float64
}

// reverb is a bank of damped feedback combs followed by allpass diffusers.
type reverb struct {
	combs    []*comb
	allpass  []*delayLine
	dc       dcFilter
	room     float64
	damp     float64
	inputAmp float64
}

func newReverb(sampleRate int) *reverb {
	scale := float64(sampleRate) / 44100
	r := &reverb{dc: newDCFilter(sampleRate), room: reverbRoom, damp: reverbDamp, inputAmp: reverbInput}
	for _, n := range combTunings {
		r.combs = append(r.combs, &comb{line: newDelayLine(int(float64(n) * scale))})
	}
	for _, n := range allpassTunings {
		r.allpass = append(r.allpass, newDelayLine(int(float64(n)*scale)))
	}
	return r
}

func (r *reverb) process(in float64) float64 {
	x := in * r.inputAmp
	var out float64
	for _, c := range r.combs {
		y := c.line.delayed()
		c.store = y*(1-r.damp) + c.store*r.damp
		c.line.step(x + c.store*r.room)
		out += y
	}
	for _, a := range r.allpass {
		buf := a.delayed()
		a.step(out + buf*0.5)
		out = buf - out
	}
	return r.dc.filter(out)
}

// saturate is the arctan soft clipper, normalized to [-1,1].
func saturate(x, drive float64) float64 {
	return 2 / math.Pi * math.Atan(drive*x)
}

// bus is the shared effect chain: voice sends feed the echo and reverb, their
// returns are summed with the dry signal and run through the saturator.
type bus struct {
	p      fx.Params
	echo   *echo
	reverb *reverb
}

func newBus(sampleRate int) *bus {
	return &bus{p: fx.Defaults, echo: newEcho(sampleRate), reverb: newReverb(sampleRate)}
}

func (b *bus) process(dry, echoSend, reverbSend float64) float64 {
	d := b.echo.process(echoSend, b.p.DelayFeedback)
	r := b.reverb.process(reverbSend)
	x := dry + d*b.p.DelayWet + r*b.p.ReverbWet
	return b.p.SatDry*x + b.p.SatWet*saturate(x, b.p.Drive)
}

// meter tracks the mean absolute amplitude over a sliding window.
type meter struct {
	buf []float64
	i   int
	sum float64
}

func newMeter(samples int) *meter {
	if samples < 1 {
		samples = 1
	}
	return &meter{buf: make([]float64, samples)}
}

func (m *meter) add(x float64) {
	m.sum -= m.buf[m.i]
	m.buf[m.i] = math.Abs(x)
	m.sum += m.buf[m.i]
	m.i = (m.i + 1) % len(m.buf)
}

func (m *meter) level() float64 {
	return math.Max(0, m.sum/float64(len(m.buf)))
}
