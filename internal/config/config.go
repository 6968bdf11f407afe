// Package config parses the command line into a Config.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/core/pitch"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
)

const DefaultSeed = 0x5EED

type Config struct {
	Seed     uint64
	BPM      float64
	Root     int
	Mode     string
	Voices   []model.Waveform
	Volume   float64
	LogLevel string
	MIDIOut  string
	Headless bool
	Panel    bool
	FPS      int
	Width    int
	Height   int
}

func Default() Config {
	return Config{
		Seed:     DefaultSeed,
		BPM:      110,
		Root:     60,
		Mode:     "pentatonic",
		Voices:   append([]model.Waveform(nil), model.DefaultWaveforms...),
		Volume:   0.25,
		LogLevel: "info",
		FPS:      60,
		Width:    960,
		Height:   640,
	}
}

// Parse reads flags from args (without the program name). Usage text and
// errors go to out.
func Parse(args []string, out io.Writer) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet("swirl", flag.ContinueOnError)
	fs.SetOutput(out)

	var root, voices string
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "master random seed")
	fs.Float64Var(&cfg.BPM, "bpm", cfg.BPM, "tempo in beats per minute (40-240)")
	fs.StringVar(&root, "root", "C", "root note: letter A-G or MIDI number")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "scale: pentatonic, ionian, dorian, phrygian, lydian, mixolydian, aeolian, locrian")
	fs.StringVar(&voices, "voices", "sine,saw,triangle", "comma separated voice waveforms")
	fs.Float64Var(&cfg.Volume, "volume", cfg.Volume, "master volume 0-1")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level: debug, info, warn, error, none")
	fs.StringVar(&cfg.MIDIOut, "midi-out", "", "MIDI output port name (substring), \"list\" to print ports")
	fs.BoolVar(&cfg.Headless, "headless", false, "run in the terminal without a window")
	fs.BoolVar(&cfg.Panel, "panel", false, "open the fyne control panel (builds with -tags fyne)")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "frame rate of the headless loop")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "window height")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	r, err := ParseRoot(root)
	if err != nil {
		return cfg, err
	}
	cfg.Root = r
	if cfg.Voices, err = ParseVoices(voices); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ParseRoot accepts a note letter (A-G) or a MIDI number.
func ParseRoot(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 && unicode.IsLetter(rune(s[0])) {
		if m, ok := pitch.Roots[unicode.ToUpper(rune(s[0]))]; ok {
			return m, nil
		}
		return 0, fmt.Errorf("unknown root note %q", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 127 {
		return 0, fmt.Errorf("invalid root %q: want A-G or 0-127", s)
	}
	return n, nil
}

func ParseVoices(s string) ([]model.Waveform, error) {
	var out []model.Waveform
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		w, err := model.ParseWaveform(part)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil, errors.New("at least one voice is required")
	}
	return out, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.BPM < 40 || c.BPM > 240 {
		errs = append(errs, fmt.Errorf("bpm %v outside 40-240", c.BPM))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume %v outside 0-1", c.Volume))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid window size %dx%d", c.Width, c.Height))
	}
	if _, ok := pitch.ScaleByName(c.Mode); !ok {
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	if !game_log.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if len(c.Voices) == 0 {
		errs = append(errs, errors.New("at least one voice is required"))
	}
	return errors.Join(errs...)
}

// Params builds the engine parameters. Validate must have passed.
func (c Config) Params() model.EngineParams {
	scale, _ := pitch.ScaleByName(c.Mode)
	return model.EngineParams{BPM: c.BPM, Scale: append([]int(nil), scale...), Root: c.Root}
}
