// Command playtest plays one pentatonic run per waveform through the synth
// so the output device and the effect bus can be checked by ear.
package main

import (
	"os"
	"time"

	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/fx"
	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/core/pitch"
	"github.com/ingyamilmolinar/swirl/internal/audio"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
)

func main() {
	root := game_log.New(os.Stderr, game_log.LevelInfo)
	logger := root.With("PLAYTEST")
	s, err := audio.NewSynth(1, 0.3, true, root)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	defer s.Close()

	for _, w := range []model.Waveform{model.Sine, model.Square, model.Saw, model.Triangle} {
		logger.Infof("%s", w)
		for _, d := range pitch.CMajorPentatonic {
			m := float64(pitch.DegreeToMidi(60, d, 0))
			ev := model.NoteEvent{Freq: pitch.MidiToHz(m), Velocity: 0.8, Start: s.Now() + 0.02, Duration: 0.25}
			s.Play(ev, w, s.Now())
			time.Sleep(250 * time.Millisecond)
		}
	}
	s.Frame(engine.Output{Fx: fx.Map(1, 1, 0)})
	logger.Infof("echo tail")
	s.Play(model.NoteEvent{Freq: 440, Velocity: 1, Start: s.Now() + 0.02, Duration: 0.3}, model.Saw, s.Now())
	time.Sleep(3 * time.Second)
}
