package model

import (
	"fmt"
	"math"
	"strings"
)

type Waveform int

const (
	Sine Waveform = iota
	Square
	Saw
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Saw:
		return "saw"
	case Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sine":
		return Sine, nil
	case "square":
		return Square, nil
	case "saw", "sawtooth":
		return Saw, nil
	case "triangle", "tri":
		return Triangle, nil
	}
	return Sine, fmt.Errorf("unknown waveform %q", s)
}

type Vec3 struct{ X, Y, Z float64 }

func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Len() float64         { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) LenXZ() float64       { return math.Hypot(v.X, v.Z) }
func (v Vec3) String() string       { return fmt.Sprintf("(%.2f,%.2f,%.2f)", v.X, v.Y, v.Z) }

// ClampRadius scales v down so its length does not exceed r.
func (v Vec3) ClampRadius(r float64) Vec3 {
	l := v.Len()
	if l <= r || l == 0 {
		return v
	}
	return v.Scale(r / l)
}

// Color is linear RGB in [0,1].
type Color [3]float64

// VoiceConfig is fixed for the lifetime of an engine.
type VoiceConfig struct {
	Waveform Waveform
	Position Vec3
	Color    Color
}

// VoiceState is the mutable runtime part of a voice.
type VoiceState struct {
	Position Vec3
	Muted    bool
}

// VoiceRole carries the per-voice trigger character.
type VoiceRole struct {
	Probability float64
	Octave      int
	BaseDur     float64
}

// Roles is indexed by voice; voices past the end use the last entry.
var Roles = []VoiceRole{
	{Probability: 0.4, Octave: -1, BaseDur: 0.40},
	{Probability: 0.6, Octave: 0, BaseDur: 0.25},
	{Probability: 0.3, Octave: 1, BaseDur: 0.60},
}

func RoleFor(voice int) VoiceRole {
	if voice < 0 {
		voice = 0
	}
	if voice >= len(Roles) {
		voice = len(Roles) - 1
	}
	return Roles[voice]
}

var (
	DefaultPositions = []Vec3{{-1, 0, 0}, {1, 0, 0}, {0, 0, -1}}
	DefaultColors    = []Color{{0.9, 0.3, 0.3}, {0.3, 0.9, 0.4}, {0.3, 0.5, 0.9}}
	DefaultWaveforms = []Waveform{Sine, Saw, Triangle}
)

// DefaultVoices returns the three stock voices.
func DefaultVoices() []VoiceConfig {
	return VoicesFor(DefaultWaveforms)
}

// VoicesFor builds configs for the given waveforms, cycling the stock
// positions and colors. Voices beyond the stock layout are spread on a circle.
func VoicesFor(waves []Waveform) []VoiceConfig {
	out := make([]VoiceConfig, len(waves))
	for i, w := range waves {
		var pos Vec3
		if i < len(DefaultPositions) {
			pos = DefaultPositions[i]
		} else {
			a := 2 * math.Pi * float64(i) / float64(len(waves))
			pos = Vec3{X: math.Cos(a), Z: math.Sin(a)}
		}
		out[i] = VoiceConfig{
			Waveform: w,
			Position: pos,
			Color:    DefaultColors[i%len(DefaultColors)],
		}
	}
	return out
}

// EngineParams are the global musical settings.
type EngineParams struct {
	BPM   float64
	Scale []int
	Root  int
}

// NoteEvent is a single scheduled note.
type NoteEvent struct {
	Voice    int
	Midi     float64
	Freq     float64
	Velocity float64
	Start    float64
	Duration float64
}

func (e NoteEvent) String() string {
	return fmt.Sprintf("voice=%d freq=%.2f vel=%.2f start=%.3f dur=%.3f", e.Voice, e.Freq, e.Velocity, e.Start, e.Duration)
}
