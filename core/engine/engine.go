package engine

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/ingyamilmolinar/swirl/core/beat"
	"github.com/ingyamilmolinar/swirl/core/fx"
	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/core/pitch"
	"github.com/ingyamilmolinar/swirl/core/sim"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
	"github.com/ingyamilmolinar/swirl/internal/utils"
)

const (
	MinBPM = beat.MinBPM
	MaxBPM = beat.MaxBPM

	// DragRadius bounds how far a voice can be dragged from the origin.
	DragRadius = 3.0
)

// Input is everything the host samples for one frame.
type Input struct {
	DT      time.Duration
	Now     float64 // audio clock, seconds
	Pointer sim.Pointer
	Level   float64 // output level meter in [0,1], 0 when unknown
}

// VoiceView is the per-voice state handed to renderers and the audio layer.
type VoiceView struct {
	Index    int
	Waveform model.Waveform
	Color    model.Color
	Position model.Vec3
	Muted    bool
	Soloed   bool
	Pulse    float64
	Send     fx.Send
}

// SwirlView is a snapshot of the swirl spring.
type SwirlView struct {
	Pos      sim.Vec2
	Vel      sim.Vec2
	Energy   float64
	Strength float64
}

// Output is the result of one frame.
type Output struct {
	Events []model.NoteEvent
	Voices []VoiceView
	Fx     fx.Params
	Swirl  SwirlView
}

// Engine runs the scheduler and the interaction simulator one frame at a
// time. It is not safe for concurrent use; hosts call it from their frame loop.
type Engine struct {
	sched  *beat.Scheduler
	sim    *sim.Simulator
	rng    *rand.Rand
	paused bool
	queued []model.NoteEvent
	frames int64
	logger *game_log.Logger
}

// New creates an engine for the given voices. It fails only when the
// scheduler rejects its configuration.
func New(configs []model.VoiceConfig, params model.EngineParams, seed uint64, logger *game_log.Logger) (*Engine, error) {
	sched, err := beat.NewScheduler(configs, params, seed, logger)
	if err != nil {
		return nil, err
	}
	return &Engine{
		sched:  sched,
		sim:    sim.New(len(configs), logger),
		rng:    rand.New(rand.NewPCG(seed, ^seed)),
		logger: logger.With("ENGINE"),
	}, nil
}

// Frame advances the engine. Scheduled notes are generated first so the
// simulator sees them in the same frame.
func (e *Engine) Frame(in Input) Output {
	e.frames++
	var events []model.NoteEvent
	if !e.paused {
		events = e.sched.Tick(in.DT, in.Now)
	}
	for _, q := range e.queued {
		q.Start = in.Now + beat.Lookahead
		events = append(events, q)
	}
	e.queued = e.queued[:0]

	dt := in.DT.Seconds()
	if dt < 0 {
		dt = 0
	}
	e.sim.Update(dt, in.Pointer, events)
	e.sim.Pulses.Ambient(in.Level)

	energy := e.sim.Swirl.Energy
	out := Output{
		Events: events,
		Voices: e.voiceViews(energy),
		Fx:     fx.Map(energy, in.Pointer.UV.X, in.Pointer.UV.Y),
		Swirl: SwirlView{
			Pos:      e.sim.Swirl.Pos,
			Vel:      e.sim.Swirl.Vel,
			Energy:   energy,
			Strength: e.sim.Swirl.Strength(),
		},
	}
	return out
}

func (e *Engine) voiceViews(energy float64) []VoiceView {
	solo, soloOn := e.sched.Solo()
	views := make([]VoiceView, e.sched.NumVoices())
	for i := range views {
		cfg, _ := e.sched.Config(i)
		st, _ := e.sched.Voice(i)
		views[i] = VoiceView{
			Index:    i,
			Waveform: cfg.Waveform,
			Color:    cfg.Color,
			Position: st.Position,
			Muted:    st.Muted,
			Soloed:   soloOn && solo == i,
			Pulse:    e.sim.Pulse(i),
			Send:     fx.VoiceSend(st.Position, energy),
		}
	}
	return views
}

// Voices returns the current voice views without advancing time.
func (e *Engine) Voices() []VoiceView { return e.voiceViews(e.sim.Swirl.Energy) }

func (e *Engine) Params() model.EngineParams { return e.sched.Params() }
func (e *Engine) Paused() bool               { return e.paused }
func (e *Engine) NumVoices() int             { return e.sched.NumVoices() }
func (e *Engine) Frames() int64              { return e.frames }

// SetPaused stops or resumes note generation. Envelopes keep decaying while
// paused; on resume the partial grid step is dropped.
func (e *Engine) SetPaused(p bool) {
	if e.paused == p {
		return
	}
	e.paused = p
	if !p {
		e.sched.ResetPhase()
	}
	e.logger.Infof("paused=%t", p)
}

// NearestVoice picks the voice whose horizontal screen position is closest
// to the normalized x coordinate u.
func (e *Engine) NearestVoice(u float64) int {
	best, bestD := 0, math.Inf(1)
	for i := 0; i < e.sched.NumVoices(); i++ {
		st, _ := e.sched.Voice(i)
		nx := utils.Clamp(st.Position.X/DragRadius, -1, 1)*0.5 + 0.5
		if d := math.Abs(nx - u); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// Audition queues a one-shot note for the next frame. The pointer's u picks
// pitch (two octaves up from middle C) and v picks loudness and length.
func (e *Engine) Audition(uv sim.Vec2) model.NoteEvent {
	u := utils.Clamp01(uv.X)
	v := utils.Clamp01(uv.Y)
	midi := 60 + u*24
	ev := model.NoteEvent{
		Voice:    e.NearestVoice(u),
		Midi:     midi,
		Freq:     pitch.MidiToHz(midi),
		Velocity: 0.35 + 0.65*v,
		Duration: 0.35 + 0.25*(1-v),
	}
	e.queued = append(e.queued, ev)
	e.logger.Debugf("audition %s", ev)
	return ev
}

// RandomKey picks a random root and church mode.
func (e *Engine) RandomKey() (root int, mode pitch.Mode) {
	root = pitch.RandomRoots[e.rng.IntN(len(pitch.RandomRoots))]
	mode = pitch.Modes[e.rng.IntN(len(pitch.Modes))]
	e.sched.SetRoot(root)
	e.sched.SetScale(mode.Scale)
	e.logger.Infof("key %s %s", pitch.NoteName(root), mode.Name)
	return root, mode
}
