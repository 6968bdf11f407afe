package beat

import (
	"errors"
	"math"
	"time"

	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/core/pitch"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
)

// Lookahead is added to "now" for every emitted note so audio scheduling
// always has a positive lead time.
const Lookahead = 0.02

const (
	DefaultBPM  = 110
	DefaultRoot = 60

	// MinBPM and MaxBPM bound the tempo so one Tick runs a bounded number
	// of grid steps.
	MinBPM = 40
	MaxBPM = 240
)

var (
	ErrNoVoices   = errors.New("beat: at least one voice is required")
	ErrInvalidBPM = errors.New("beat: bpm must be within 40-240")
)

// DefaultParams is 110 bpm, C major pentatonic rooted on middle C.
func DefaultParams() model.EngineParams {
	return model.EngineParams{
		BPM:   DefaultBPM,
		Scale: append([]int(nil), pitch.CMajorPentatonic...),
		Root:  DefaultRoot,
	}
}

// Scheduler is the generative note engine. Every grid step (an eighth note)
// each unmuted voice rolls its own RNG against its role probability.
type Scheduler struct {
	configs []model.VoiceConfig
	voices  []model.VoiceState
	rngs    []*VoiceRng
	params  model.EngineParams
	solo    int // -1 when no voice is soloed
	phase   float64
	steps   int64
	logger  *game_log.Logger

	// OnNote, if set, is called for every emitted event.
	OnNote func(model.NoteEvent)
}

func NewScheduler(configs []model.VoiceConfig, params model.EngineParams, seed uint64, logger *game_log.Logger) (*Scheduler, error) {
	if len(configs) == 0 {
		return nil, ErrNoVoices
	}
	if !(params.BPM >= MinBPM && params.BPM <= MaxBPM) {
		return nil, ErrInvalidBPM
	}
	s := &Scheduler{
		configs: append([]model.VoiceConfig(nil), configs...),
		voices:  make([]model.VoiceState, len(configs)),
		rngs:    make([]*VoiceRng, len(configs)),
		params:  params,
		solo:    -1,
		logger:  logger.With("SCHED"),
	}
	s.params.Scale = append([]int(nil), params.Scale...)
	for i, c := range configs {
		s.voices[i] = model.VoiceState{Position: c.Position}
		s.rngs[i] = NewVoiceRng(VoiceSeed(seed, i))
	}
	s.logger.Debugf("created %d voices, seed=%#x bpm=%.1f", len(configs), seed, params.BPM)
	return s, nil
}

// Quantum is the grid step length in seconds.
func (s *Scheduler) Quantum() float64 {
	return 60 / s.params.BPM / 2
}

// Tick advances the phase by dt and runs every grid step that became due.
// Events are stamped now+Lookahead.
func (s *Scheduler) Tick(dt time.Duration, now float64) []model.NoteEvent {
	var out []model.NoteEvent
	if dt > 0 {
		s.phase += dt.Seconds()
	}
	q := s.Quantum()
	for s.phase >= q {
		s.phase -= q
		out = s.step(now, out)
	}
	return out
}

func (s *Scheduler) step(now float64, out []model.NoteEvent) []model.NoteEvent {
	s.steps++
	for i, v := range s.voices {
		if v.Muted {
			continue
		}
		r := s.rngs[i]
		role := model.RoleFor(i)
		if r.Float() >= role.Probability {
			continue
		}
		degree := 0
		if n := len(s.params.Scale); n > 0 {
			degree = s.params.Scale[r.IntN(n)]
		}
		midi := pitch.DegreeToMidi(s.params.Root, degree, role.Octave)
		ev := model.NoteEvent{
			Voice:    i,
			Midi:     float64(midi),
			Freq:     pitch.MidiToHz(float64(midi)),
			Velocity: 0.4 + r.Float()*0.6,
			Start:    now + Lookahead,
			Duration: role.BaseDur + r.Float()*0.2,
		}
		s.logger.Debugf("step %d: %s", s.steps, ev)
		if s.OnNote != nil {
			s.OnNote(ev)
		}
		out = append(out, ev)
	}
	return out
}

// ResetPhase drops any partially accumulated grid step.
func (s *Scheduler) ResetPhase() { s.phase = 0 }

// Steps reports how many grid steps have run.
func (s *Scheduler) Steps() int64 { return s.steps }

// SetBPM clamps bpm to [MinBPM, MaxBPM]. Non-positive and non-finite values
// are ignored.
func (s *Scheduler) SetBPM(bpm float64) {
	if !(bpm > 0) || math.IsInf(bpm, 0) {
		return
	}
	s.params.BPM = math.Min(math.Max(bpm, MinBPM), MaxBPM)
	s.logger.Debugf("bpm=%.1f", bpm)
}

func (s *Scheduler) BPM() float64 { return s.params.BPM }

// SetScale replaces the degree set. An empty scale makes every note the root.
func (s *Scheduler) SetScale(scale []int) {
	s.params.Scale = append([]int(nil), scale...)
}

func (s *Scheduler) SetRoot(root int) { s.params.Root = root }

// Params returns a copy of the current parameters.
func (s *Scheduler) Params() model.EngineParams {
	p := s.params
	p.Scale = append([]int(nil), s.params.Scale...)
	return p
}

func (s *Scheduler) NumVoices() int { return len(s.voices) }

func (s *Scheduler) valid(i int) bool { return i >= 0 && i < len(s.voices) }

// Config returns the immutable config of voice i.
func (s *Scheduler) Config(i int) (model.VoiceConfig, bool) {
	if !s.valid(i) {
		return model.VoiceConfig{}, false
	}
	return s.configs[i], true
}

// Voice returns a copy of voice i's runtime state.
func (s *Scheduler) Voice(i int) (model.VoiceState, bool) {
	if !s.valid(i) {
		return model.VoiceState{}, false
	}
	return s.voices[i], true
}

// Muted returns the mute flag of every voice.
func (s *Scheduler) Muted() []bool {
	m := make([]bool, len(s.voices))
	for i, v := range s.voices {
		m[i] = v.Muted
	}
	return m
}

// Solo returns the soloed voice, if any.
func (s *Scheduler) Solo() (int, bool) { return s.solo, s.solo >= 0 }

func (s *Scheduler) SetVoiceMuted(i int, muted bool) {
	if !s.valid(i) {
		return
	}
	s.voices[i].Muted = muted
}

func (s *Scheduler) ToggleMute(i int) {
	if !s.valid(i) {
		return
	}
	s.voices[i].Muted = !s.voices[i].Muted
	s.logger.Debugf("voice %d muted=%t", i, s.voices[i].Muted)
}

func (s *Scheduler) SetVoicePosition(i int, pos model.Vec3) {
	if !s.valid(i) {
		return
	}
	s.voices[i].Position = pos
}

// ReseedVoice replaces voice i's stream. Without an explicit seed the new
// seed is drawn from the voice's current stream.
func (s *Scheduler) ReseedVoice(i int, seed *uint64) {
	if !s.valid(i) {
		return
	}
	var next uint64
	if seed != nil {
		next = *seed
	} else {
		next = s.rngs[i].Next()
	}
	old := s.rngs[i].Seed()
	s.rngs[i] = NewVoiceRng(next)
	s.logger.Debugf("voice %d reseeded %#x -> %#x", i, old, s.rngs[i].Seed())
}

// ReseedAll reseeds every voice from its own stream.
func (s *Scheduler) ReseedAll() {
	for i := range s.rngs {
		s.ReseedVoice(i, nil)
	}
}

// ToggleSolo solos voice i by muting every other voice. Soloing the voice
// that is already soloed clears solo and unmutes all voices, including any
// muted individually while the solo was active.
func (s *Scheduler) ToggleSolo(i int) {
	if !s.valid(i) {
		return
	}
	if s.solo == i {
		s.solo = -1
		for j := range s.voices {
			s.voices[j].Muted = false
		}
		s.logger.Debugf("solo cleared")
		return
	}
	s.solo = i
	for j := range s.voices {
		s.voices[j].Muted = j != i
	}
	s.logger.Debugf("voice %d soloed", i)
}
