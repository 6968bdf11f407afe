package ui

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/swirl/core/beat"
	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/model"
)

func TestUpdateFeedsEngineOutputToAudio(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 50; i++ {
		h.step(t, 100*time.Millisecond)
	}
	if len(h.audio.frames) != 50 {
		t.Fatalf("audio saw %d frames, want 50", len(h.audio.frames))
	}
	evs := h.audio.events()
	if len(evs) == 0 {
		t.Fatalf("no notes in 5s of playback")
	}
	for _, ev := range evs {
		if ev.Voice < 0 || ev.Voice > 2 {
			t.Fatalf("bad voice in %s", ev)
		}
	}
	if got := len(h.audio.lastFrame().Voices); got != 3 {
		t.Fatalf("voice views = %d", got)
	}
}

type recordingSink struct {
	events []model.NoteEvent
	err    error
}

func (s *recordingSink) Frame(evs []model.NoteEvent, now float64) error {
	s.events = append(s.events, evs...)
	return s.err
}

func TestNoteSinkReceivesEvents(t *testing.T) {
	h := newHarness(t)
	sink := &recordingSink{err: errors.New("port closed")}
	h.g.notes = sink
	for i := 0; i < 50; i++ {
		h.step(t, 100*time.Millisecond)
	}
	if len(sink.events) != len(h.audio.events()) {
		t.Fatalf("sink got %d events, audio got %d", len(sink.events), len(h.audio.events()))
	}
}

func TestArrowKeysNudgeBPM(t *testing.T) {
	h := newHarness(t)
	h.press(t, ebiten.KeyArrowRight)
	if bpm := h.g.eng.Params().BPM; bpm != beat.DefaultBPM+5 {
		t.Fatalf("bpm = %v", bpm)
	}
	h.press(t, ebiten.KeyArrowLeft)
	h.press(t, ebiten.KeyArrowLeft)
	if bpm := h.g.eng.Params().BPM; bpm != beat.DefaultBPM-5 {
		t.Fatalf("bpm = %v", bpm)
	}
}

func TestVolumeKeysUpdateAudioAndSlider(t *testing.T) {
	h := newHarness(t)
	h.press(t, ebiten.KeyArrowUp)
	if math.Abs(h.audio.volume-0.30) > 1e-9 {
		t.Fatalf("volume = %v", h.audio.volume)
	}
	if h.g.transport.Volume.Value != h.audio.volume {
		t.Fatalf("slider %v out of sync with %v", h.g.transport.Volume.Value, h.audio.volume)
	}
}

func TestEscapeTerminates(t *testing.T) {
	h := newHarness(t)
	h.in.just[ebiten.KeyEscape] = true
	if err := h.g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("err = %v, want termination", err)
	}
}

func TestHelpOverlayListsVoices(t *testing.T) {
	h := newHarness(t)
	h.press(t, ebiten.KeyH)
	if !h.g.showHelp {
		t.Fatalf("help not shown")
	}
	text := strings.Join(h.g.helpLines(), "\n")
	for _, want := range []string{"voice 0", "voice 2", "pentatonic", "BPM"} {
		if !strings.Contains(text, want) {
			t.Fatalf("help missing %q:\n%s", want, text)
		}
	}
	h.press(t, ebiten.KeyH)
	if h.g.showHelp {
		t.Fatalf("help still shown")
	}
}

func TestClickVoiceTogglesMute(t *testing.T) {
	h := newHarness(t)
	x, y := h.voiceScreen(0)
	h.click(t, x, y)
	if !h.g.eng.Voices()[0].Muted {
		t.Fatalf("voice 0 not muted")
	}
	h.click(t, x, y)
	if h.g.eng.Voices()[0].Muted {
		t.Fatalf("voice 0 still muted")
	}
}

func TestModifierClicks(t *testing.T) {
	h := newHarness(t)
	x, y := h.voiceScreen(1)
	h.in.held[ebiten.KeyAltLeft] = true
	h.click(t, x, y)
	if !h.g.eng.Voices()[1].Soloed {
		t.Fatalf("alt-click should solo voice 1")
	}
	if h.g.eng.Voices()[1].Muted {
		t.Fatalf("alt-click should not mute")
	}
}

func TestHoverTracksCursor(t *testing.T) {
	h := newHarness(t)
	h.in.x, h.in.y = h.voiceScreen(2)
	h.step(t, 16*time.Millisecond)
	if h.g.hover != 2 {
		t.Fatalf("hover = %d, want 2", h.g.hover)
	}
	h.in.x, h.in.y = 5, 600
	h.step(t, 16*time.Millisecond)
	if h.g.hover != -1 {
		t.Fatalf("hover = %d, want none", h.g.hover)
	}
}

func TestDragMovesVoiceWithinRadius(t *testing.T) {
	h := newHarness(t)
	x, y := h.voiceScreen(1)
	h.in.x, h.in.y = x, y
	h.in.left = true
	h.step(t, 16*time.Millisecond)
	h.in.x = x + 45 // half a world unit at the default fit
	h.step(t, 16*time.Millisecond)
	p := h.g.eng.Voices()[1].Position
	if math.Abs(p.X-1.5) > 0.05 || math.Abs(p.Z) > 0.05 {
		t.Fatalf("dragged to %s", p)
	}
	h.in.x = x + 2000
	h.step(t, 16*time.Millisecond)
	if r := h.g.eng.Voices()[1].Position.LenXZ(); math.Abs(r-engine.DragRadius) > 1e-6 {
		t.Fatalf("radius = %v, want %v", r, engine.DragRadius)
	}
	h.in.left = false
	h.step(t, 16*time.Millisecond)
	if h.g.eng.Voices()[1].Muted {
		t.Fatalf("a drag must not toggle mute")
	}
}

func TestClickEmptyAuditions(t *testing.T) {
	h := newHarness(t)
	h.g.eng.Apply(engine.Command{Kind: engine.CmdTogglePause})
	h.click(t, 50, 600)
	evs := h.audio.lastFrame().Events
	if len(evs) != 1 {
		t.Fatalf("events = %v, want one audition", evs)
	}
	if math.Abs(evs[0].Start-(h.audio.now+beat.Lookahead)) > 1e-9 {
		t.Fatalf("audition start %v, now %v", evs[0].Start, h.audio.now)
	}
	if len(h.g.ripples) == 0 {
		t.Fatalf("no ripple for audition")
	}
}

func TestRipplesFade(t *testing.T) {
	h := newHarness(t)
	h.g.addRipple(model.Vec3{}, model.Color{1, 0, 0})
	h.g.ageRipples(0.5)
	if len(h.g.ripples) != 1 {
		t.Fatalf("ripple gone early")
	}
	h.g.ageRipples(0.6)
	if len(h.g.ripples) != 0 {
		t.Fatalf("ripple outlived its life")
	}
}

func TestTransportButtonsPause(t *testing.T) {
	h := newHarness(t)
	h.click(t, 60, 20)
	if !h.g.eng.Paused() {
		t.Fatalf("pause button did not pause")
	}
	if !h.g.pointerOff || h.g.pointer(60, 20, true).Down {
		t.Fatalf("pointer over the bar should not press the swirl")
	}
	h.click(t, 20, 20)
	if h.g.eng.Paused() {
		t.Fatalf("play button did not resume")
	}
}

func TestPostedCommandsApplyNextFrame(t *testing.T) {
	h := newHarness(t)
	if !h.g.Post(engine.Command{Kind: engine.CmdSetBPM, Value: 200}) {
		t.Fatalf("post rejected")
	}
	if h.g.eng.Params().BPM != beat.DefaultBPM {
		t.Fatalf("command applied before the frame")
	}
	h.step(t, 16*time.Millisecond)
	if h.g.eng.Params().BPM != 200 {
		t.Fatalf("bpm = %v", h.g.eng.Params().BPM)
	}
	for i := 0; i < commandQueue; i++ {
		h.g.Post(engine.Command{Kind: engine.CmdReseedAll})
	}
	if h.g.Post(engine.Command{Kind: engine.CmdReseedAll}) {
		t.Fatalf("full queue should drop")
	}
}
