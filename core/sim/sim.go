package sim

import (
	"github.com/ingyamilmolinar/swirl/core/model"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
)

// Simulator owns the swirl and pulse state. It never touches scheduler state.
type Simulator struct {
	Swirl  Swirl
	Pulses *Pulses
	logger *game_log.Logger
}

func New(voices int, logger *game_log.Logger) *Simulator {
	return &Simulator{Pulses: NewPulses(voices), logger: logger.With("SIM")}
}

// Update consumes one frame: note events first, then envelope smoothing,
// then the swirl spring.
func (s *Simulator) Update(dt float64, p Pointer, events []model.NoteEvent) {
	for _, ev := range events {
		s.Pulses.Inject(ev.Voice, ev.Velocity)
	}
	s.Pulses.Smooth(dt)
	s.Swirl.Update(dt, p)
	if len(events) > 0 {
		s.logger.Debugf("%d events, energy=%.3f", len(events), s.Swirl.Energy)
	}
}

// Pulse returns voice i's pulse, or 0 for unknown voices.
func (s *Simulator) Pulse(i int) float64 {
	if i < 0 || i >= len(s.Pulses.Value) {
		return 0
	}
	return s.Pulses.Value[i]
}
