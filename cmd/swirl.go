package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/term"

	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/internal/audio"
	"github.com/ingyamilmolinar/swirl/internal/config"
	"github.com/ingyamilmolinar/swirl/internal/headless"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
	"github.com/ingyamilmolinar/swirl/internal/midi"
	"github.com/ingyamilmolinar/swirl/internal/midi/rtmidi"
	"github.com/ingyamilmolinar/swirl/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args, os.Stderr)
	if err != nil {
		return err
	}
	if cfg.MIDIOut == "list" {
		names, err := rtmidi.List()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	}

	var logw io.Writer = os.Stderr
	if cfg.Headless && term.IsTerminal(int(os.Stdin.Fd())) {
		logw = headless.NewLineWriter(os.Stderr)
	}
	logger := game_log.New(logw, game_log.LevelFromString(cfg.LogLevel))

	eng, err := engine.New(model.VoicesFor(cfg.Voices), cfg.Params(), cfg.Seed, logger)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	synth, err := audio.NewSynth(len(cfg.Voices), cfg.Volume, true, logger)
	if err != nil {
		logger.Warnf("running silent: %v", err)
	}
	defer synth.Close()

	var notes ui.NoteSink
	if cfg.MIDIOut != "" {
		port, err := rtmidi.Open(cfg.MIDIOut, logger)
		if err != nil {
			return err
		}
		defer port.Close()
		out := midi.NewOut(port.Send, logger)
		defer out.AllOff()
		notes = out
	}

	if cfg.Headless {
		h := headless.New(eng, synth, notes, headless.Options{FPS: cfg.FPS, In: os.Stdin, Out: os.Stdout}, logger)
		return h.Run(context.Background())
	}

	g := ui.New(eng, synth, notes, logger)
	if cfg.Panel {
		ui.RunFynePanel(g)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Swirl - generative ambient music")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
