package audio

import (
	"sync"

	"github.com/ingyamilmolinar/swirl/core/fx"
)

const (
	sampleRate          = 44100
	bufferSizeBytes10ms = sampleRate / 100 * 2 // 10ms of 16-bit mono audio

	meterWindow = sampleRate / 20
)

// route is one voice's channel strip.
type route struct {
	level  float64
	echo   float64
	reverb float64
}

var defaultRoute = route{level: 1, echo: 0.15, reverb: 0.25}

type voiceState struct {
	start int
	ch    int
	v     Voice
}

// mixer mixes scheduled voices through per-voice routes and the effect bus
// into a single 16-bit mono stream.
type mixer struct {
	mu     sync.Mutex
	voices []*voiceState
	routes []route
	bus    *bus
	meter  *meter
	gain   float64
	pos    int
}

func newMixer(channels int, gain float64) *mixer {
	m := &mixer{
		routes: make([]route, channels),
		bus:    newBus(sampleRate),
		meter:  newMeter(meterWindow),
		gain:   gain,
	}
	for i := range m.routes {
		m.routes[i] = defaultRoute
	}
	return m
}

// Schedule adds a voice on channel ch to start after delaySamples have elapsed.
func (m *mixer) Schedule(v Voice, ch, delaySamples int) {
	if delaySamples < 0 {
		delaySamples = 0
	}
	m.mu.Lock()
	m.voices = append(m.voices, &voiceState{start: m.pos + delaySamples, ch: ch, v: v})
	m.mu.Unlock()
}

func (m *mixer) setRoute(ch int, r route) {
	m.mu.Lock()
	if ch >= 0 && ch < len(m.routes) {
		m.routes[ch] = r
	}
	m.mu.Unlock()
}

func (m *mixer) setParams(p fx.Params) {
	m.mu.Lock()
	m.bus.p = p
	m.mu.Unlock()
}

func (m *mixer) setGain(g float64) {
	m.mu.Lock()
	m.gain = g
	m.mu.Unlock()
}

// position returns the number of samples rendered so far.
func (m *mixer) position() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

func (m *mixer) level() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.meter.level()
}

func (m *mixer) active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Read implements io.Reader for oto.Player.
func (m *mixer) Read(p []byte) (int, error) {
	samples := len(p) / 2
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < samples; i++ {
		var dry, echoSend, reverbSend float64
		for idx := 0; idx < len(m.voices); idx++ {
			vs := m.voices[idx]
			if m.pos < vs.start {
				continue
			}
			val, done := vs.v.Sample()
			r := defaultRoute
			if vs.ch >= 0 && vs.ch < len(m.routes) {
				r = m.routes[vs.ch]
			}
			val *= r.level
			dry += val
			echoSend += val * r.echo
			reverbSend += val * r.reverb
			if done {
				m.voices = append(m.voices[:idx], m.voices[idx+1:]...)
				idx--
			}
		}
		sum := m.gain * m.bus.process(dry, echoSend, reverbSend)
		m.meter.add(sum)
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}
		v := int16(sum * 32767)
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
		m.pos++
	}
	return samples * 2, nil
}
