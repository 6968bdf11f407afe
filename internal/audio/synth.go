package audio

import (
	"math"
	"time"

	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/model"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
	"github.com/ingyamilmolinar/swirl/internal/utils"
)

// device is the platform output. It pulls samples from the mixer.
type device interface {
	Close() error
}

// Synth renders engine frames to sound. Without a device it still mixes on
// demand through Render, which tests and offline tools use.
type Synth struct {
	mix    *mixer
	dev    device
	start  time.Time
	volume float64
	logger *game_log.Logger
}

// NewSynth creates a synth for the given voice count. When openDevice is
// true it tries the system output; a missing device is reported in the error
// but the returned Synth is still usable and silent.
func NewSynth(voices int, volume float64, openDevice bool, logger *game_log.Logger) (*Synth, error) {
	s := &Synth{
		mix:    newMixer(voices, volume),
		start:  time.Now(),
		volume: volume,
		logger: logger.With("AUDIO"),
	}
	if !openDevice {
		return s, nil
	}
	dev, err := openOutput(s.mix)
	if err != nil {
		s.logger.Warnf("audio device unavailable: %v", err)
		return s, err
	}
	s.dev = dev
	s.logger.Infof("output opened: %d Hz mono", sampleRate)
	return s, nil
}

// Now is the audio clock in seconds. It follows the rendered sample count
// while a device is running and wall time otherwise.
func (s *Synth) Now() float64 {
	if s.dev == nil {
		return time.Since(s.start).Seconds()
	}
	return float64(s.mix.position()) / sampleRate
}

// Frame schedules the frame's notes and applies its routing and bus settings.
func (s *Synth) Frame(out engine.Output) {
	for _, v := range out.Voices {
		s.mix.setRoute(v.Index, route{level: v.Send.Level, echo: v.Send.Delay, reverb: v.Send.Reverb})
	}
	s.mix.setParams(out.Fx)
	now := s.Now()
	for _, ev := range out.Events {
		wave := model.Sine
		if ev.Voice >= 0 && ev.Voice < len(out.Voices) {
			wave = out.Voices[ev.Voice].Waveform
		}
		s.Play(ev, wave, now)
	}
}

// Play schedules a single note relative to the audio clock value now.
func (s *Synth) Play(ev model.NoteEvent, wave model.Waveform, now float64) {
	if ev.Freq <= 0 || ev.Duration <= 0 || math.IsNaN(ev.Freq) {
		return
	}
	delay := int(math.Max(0, ev.Start-now) * sampleRate)
	s.mix.Schedule(newNote(wave, ev.Freq, utils.Clamp01(ev.Velocity), ev.Duration, sampleRate), ev.Voice, delay)
}

func (s *Synth) SetVolume(v float64) {
	s.volume = utils.Clamp01(v)
	s.mix.setGain(s.volume)
}

func (s *Synth) Volume() float64 { return s.volume }

// Level is the recent mean output amplitude, scaled into [0,1].
func (s *Synth) Level() float64 {
	return utils.Clamp01(s.mix.level() * 4)
}

// Voices reports how many notes are scheduled or sounding.
func (s *Synth) Voices() int { return s.mix.active() }

// Render mixes n samples into buf without a device. buf is resized as needed.
func (s *Synth) Render(buf []byte, n int) []byte {
	if cap(buf) < n*2 {
		buf = make([]byte, n*2)
	}
	buf = buf[:n*2]
	s.mix.Read(buf)
	return buf
}

func (s *Synth) Close() error {
	if s.dev == nil {
		return nil
	}
	err := s.dev.Close()
	s.dev = nil
	return err
}
