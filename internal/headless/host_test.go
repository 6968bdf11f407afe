package headless

import (
	"bytes"
	"context"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/ingyamilmolinar/swirl/core/beat"
	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/internal/control"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
)

type fakeAudio struct {
	now    float64
	volume float64
	frames int
}

func (a *fakeAudio) Now() float64        { return a.now }
func (a *fakeAudio) Frame(engine.Output) { a.frames++ }
func (a *fakeAudio) Level() float64      { return 0 }
func (a *fakeAudio) Volume() float64     { return a.volume }
func (a *fakeAudio) SetVolume(v float64) { a.volume = v }

type countingSink struct{ n int }

func (s *countingSink) Frame(evs []model.NoteEvent, now float64) error {
	s.n += len(evs)
	return nil
}

func newHost(t *testing.T, opts Options) (*Host, *fakeAudio, *countingSink) {
	t.Helper()
	logger := game_log.New(io.Discard, game_log.LevelError)
	eng, err := engine.New(model.DefaultVoices(), beat.DefaultParams(), 7, logger)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	a := &fakeAudio{volume: 0.25}
	sink := &countingSink{}
	return New(eng, a, sink, opts, logger), a, sink
}

func TestStepDrivesSinks(t *testing.T) {
	h, a, sink := newHost(t, Options{})
	total := 0
	for i := 0; i < 100; i++ {
		a.now += 0.05
		total += len(h.Step(50 * time.Millisecond).Events)
	}
	if a.frames != 100 {
		t.Fatalf("audio frames = %d", a.frames)
	}
	if total == 0 || sink.n != total {
		t.Fatalf("events: total=%d sink=%d", total, sink.n)
	}
	if !strings.Contains(h.Status(), "notes ") {
		t.Fatalf("status = %q", h.Status())
	}
}

func TestKeysDriveEngineAndHost(t *testing.T) {
	var help bytes.Buffer
	h, a, _ := newHost(t, Options{Out: &help})
	h.HandleKey(control.KeyPlus)
	h.HandleKey(control.KeyD)
	h.HandleKey(control.Key2)
	h.HandleKey(control.KeyUp)
	h.HandleKey(control.KeySpace)
	h.HandleKey(control.KeyH)

	p := h.eng.Params()
	if p.BPM != beat.DefaultBPM+control.BPMStep || p.Root != 62 {
		t.Fatalf("params = %+v", p)
	}
	if math.Abs(a.volume-0.30) > 1e-9 {
		t.Fatalf("volume = %v", a.volume)
	}
	if !h.eng.Paused() {
		t.Fatalf("space should pause")
	}
	status := h.Status()
	for _, want := range []string{"115 BPM", "D4", "dorian", "paused", "vol 30%"} {
		if !strings.Contains(status, want) {
			t.Fatalf("status %q missing %q", status, want)
		}
	}
	if !strings.Contains(help.String(), "reseed all voices\r\n") {
		t.Fatalf("help = %q", help.String())
	}
}

func TestRunStopsOnQuitKey(t *testing.T) {
	h, _, _ := newHost(t, Options{FPS: 200, In: strings.NewReader("+q")})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatalf("run ended by timeout, not by the quit key")
	}
	if bpm := h.eng.Params().BPM; bpm != beat.DefaultBPM+control.BPMStep {
		t.Fatalf("bpm = %v", bpm)
	}
}

func TestKeyReaderExitsAfterRun(t *testing.T) {
	h, _, _ := newHost(t, Options{})
	done := make(chan struct{})
	close(done)
	exited := make(chan struct{})
	go func() {
		h.readKeys(strings.NewReader(strings.Repeat("+", 100)), done)
		close(exited)
	}()
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatalf("key reader blocked with nobody draining keys")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h, a, _ := newHost(t, Options{FPS: 200})
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := h.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if a.frames == 0 {
		t.Fatalf("no frames ran")
	}
}

func TestLineWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewLineWriter(&buf)
	n, err := w.Write([]byte("a\nb\n"))
	if err != nil || n != 4 {
		t.Fatalf("write = %d, %v", n, err)
	}
	if buf.String() != "a\r\nb\r\n" {
		t.Fatalf("got %q", buf.String())
	}
}
