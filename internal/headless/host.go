// Package headless runs the engine without a window: a fixed-rate frame loop
// driven by a ticker, keys read from the terminal and a status line in the log.
package headless

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/core/pitch"
	"github.com/ingyamilmolinar/swirl/core/sim"
	"github.com/ingyamilmolinar/swirl/internal/control"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
)

// errQuit ends the run loop without reporting an error.
var errQuit = errors.New("headless: quit")

// Audio is the sound output driven by the host.
type Audio interface {
	Now() float64
	Frame(engine.Output)
	Level() float64
	Volume() float64
	SetVolume(float64)
}

// NoteSink receives every frame's events, e.g. a MIDI output.
type NoteSink interface {
	Frame(events []model.NoteEvent, now float64) error
}

type Options struct {
	FPS    int
	In     io.Reader // key source; raw mode is enabled when it is a terminal
	Out    io.Writer // help text
	Status time.Duration
}

type Host struct {
	eng    *engine.Engine
	audio  Audio
	notes  NoteSink
	opts   Options
	keys   chan control.Key
	logger *game_log.Logger

	quit     bool
	notesOut int
}

func New(eng *engine.Engine, audio Audio, notes NoteSink, opts Options, logger *game_log.Logger) *Host {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Status <= 0 {
		opts.Status = time.Second
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Host{
		eng:    eng,
		audio:  audio,
		notes:  notes,
		opts:   opts,
		keys:   make(chan control.Key, 16),
		logger: logger.With("HOST"),
	}
}

// Run blocks until ctx is cancelled, the quit key is read or the process is
// signalled.
func (h *Host) Run(ctx context.Context) error {
	if f, ok := h.opts.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		old, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return fmt.Errorf("headless: raw mode: %w", err)
		}
		defer term.Restore(int(f.Fd()), old)
	}
	done := make(chan struct{})
	defer close(done)
	if h.opts.In != nil {
		// A blocked read cannot be interrupted; the reader exits at its next
		// key once done is closed.
		go h.readKeys(h.opts.In, done)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return h.watchSignals(ctx) })
	g.Go(func() error { return h.loop(ctx) })
	h.logger.Infof("running at %d fps, press h for help, q to quit", h.opts.FPS)
	err := g.Wait()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (h *Host) watchSignals(ctx context.Context) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(ch)
	select {
	case <-ctx.Done():
		return nil
	case s := <-ch:
		h.logger.Infof("received %s", s)
		return errQuit
	}
}

func (h *Host) readKeys(r io.Reader, done <-chan struct{}) {
	var d Decoder
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				h.logger.Warnf("reading keys: %v", err)
			}
			return
		}
		if k, ok := d.Feed(b); ok {
			select {
			case h.keys <- k:
			case <-done:
				return
			}
		}
	}
}

func (h *Host) loop(ctx context.Context) error {
	t := time.NewTicker(time.Second / time.Duration(h.opts.FPS))
	defer t.Stop()
	last := time.Now()
	lastStatus := last
	for {
		select {
		case <-ctx.Done():
			return nil
		case k := <-h.keys:
			h.HandleKey(k)
			if h.quit {
				return errQuit
			}
		case now := <-t.C:
			h.Step(now.Sub(last))
			last = now
			if now.Sub(lastStatus) >= h.opts.Status {
				lastStatus = now
				h.logger.Infof("%s", h.Status())
			}
		}
	}
}

// HandleKey applies the action bound to k.
func (h *Host) HandleKey(k control.Key) {
	if a, ok := control.ForKey(k); ok {
		control.Apply(h.eng, h, a)
	}
}

// Step runs one frame of length dt and hands its output to the sinks.
func (h *Host) Step(dt time.Duration) engine.Output {
	in := engine.Input{
		DT:      dt,
		Now:     h.audio.Now(),
		Pointer: sim.Pointer{UV: sim.Vec2{X: 0.5, Y: 0.5}},
		Level:   h.audio.Level(),
	}
	out := h.eng.Frame(in)
	h.audio.Frame(out)
	if h.notes != nil {
		if err := h.notes.Frame(out.Events, in.Now); err != nil {
			h.logger.Warnf("note sink: %v", err)
		}
	}
	for _, ev := range out.Events {
		h.logger.Debugf("note %s", ev)
	}
	h.notesOut += len(out.Events)
	return out
}

// Status is the one-line summary logged every status period.
func (h *Host) Status() string {
	p := h.eng.Params()
	state := "playing"
	if h.eng.Paused() {
		state = "paused"
	}
	var voices []string
	for _, v := range h.eng.Voices() {
		s := fmt.Sprintf("%d:%s", v.Index, v.Waveform)
		if v.Muted {
			s += "(muted)"
		}
		if v.Soloed {
			s += "(solo)"
		}
		voices = append(voices, s)
	}
	return fmt.Sprintf("%.0f BPM %s %s %s | vol %.0f%% | notes %d | %s",
		p.BPM, pitch.NoteName(p.Root), pitch.ScaleName(p.Scale), state,
		h.audio.Volume()*100, h.notesOut, strings.Join(voices, " "))
}

/* control.Host */

func (h *Host) Volume() float64     { return h.audio.Volume() }
func (h *Host) SetVolume(v float64) { h.audio.SetVolume(v) }
func (h *Host) ToggleFullscreen()   { h.logger.Debugf("fullscreen is not available headless") }
func (h *Host) Quit()               { h.quit = true }

func (h *Host) ToggleHelp() {
	for _, l := range control.Help {
		fmt.Fprintf(h.opts.Out, "%s\r\n", l)
	}
	fmt.Fprintf(h.opts.Out, "q        quit\r\n")
}

// NewLineWriter converts "\n" to "\r\n" so log lines stay aligned while the
// terminal is in raw mode.
func NewLineWriter(w io.Writer) io.Writer { return crlfWriter{w} }

type crlfWriter struct{ w io.Writer }

func (c crlfWriter) Write(p []byte) (int, error) {
	s := strings.ReplaceAll(string(p), "\n", "\r\n")
	if _, err := io.WriteString(c.w, s); err != nil {
		return 0, err
	}
	return len(p), nil
}
