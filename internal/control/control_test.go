package control

import (
	"io"
	"math"
	"testing"

	"github.com/ingyamilmolinar/swirl/core/beat"
	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/core/pitch"
	"github.com/ingyamilmolinar/swirl/core/sim"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
)

type fakeHost struct {
	vol              float64
	help, full, quit int
}

func (h *fakeHost) Volume() float64     { return h.vol }
func (h *fakeHost) SetVolume(v float64) { h.vol = v }
func (h *fakeHost) ToggleHelp()         { h.help++ }
func (h *fakeHost) ToggleFullscreen()   { h.full++ }
func (h *fakeHost) Quit()               { h.quit++ }

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(model.DefaultVoices(), beat.DefaultParams(), 1, game_log.New(io.Discard, game_log.LevelError))
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return e
}

func press(t *testing.T, e *engine.Engine, h Host, k Key) {
	t.Helper()
	a, ok := ForKey(k)
	if !ok {
		t.Fatalf("key %d unbound", k)
	}
	Apply(e, h, a)
}

func TestRootAndModeKeys(t *testing.T) {
	e, h := newEngine(t), &fakeHost{}
	press(t, e, h, KeyA)
	if e.Params().Root != 69 {
		t.Fatalf("root = %d, want 69", e.Params().Root)
	}
	press(t, e, h, Key7)
	if pitch.ScaleName(e.Params().Scale) != "locrian" {
		t.Fatalf("scale = %v", e.Params().Scale)
	}
}

func TestTempoKeysClamp(t *testing.T) {
	e, h := newEngine(t), &fakeHost{}
	press(t, e, h, KeyRight)
	if e.Params().BPM != 115 {
		t.Fatalf("bpm = %v", e.Params().BPM)
	}
	for i := 0; i < 100; i++ {
		press(t, e, h, KeyMinus)
	}
	if e.Params().BPM != engine.MinBPM {
		t.Fatalf("bpm = %v, want %d", e.Params().BPM, engine.MinBPM)
	}
}

func TestHostKeys(t *testing.T) {
	e, h := newEngine(t), &fakeHost{vol: 0.98}
	press(t, e, h, KeyUp)
	if h.vol != 1 {
		t.Fatalf("volume = %v", h.vol)
	}
	press(t, e, h, KeyDown)
	if math.Abs(h.vol-0.95) > 1e-9 {
		t.Fatalf("volume = %v", h.vol)
	}
	press(t, e, h, KeyH)
	press(t, e, h, KeyEnter)
	press(t, e, h, KeyQuit)
	press(t, e, h, KeySpace)
	if h.help != 1 || h.full != 1 || h.quit != 1 || !e.Paused() {
		t.Fatalf("host = %+v paused=%t", h, e.Paused())
	}
	if _, ok := ForKey(KeyNone); ok {
		t.Fatalf("KeyNone should be unbound")
	}
}

func TestClickGestures(t *testing.T) {
	if c := ClickVoice(1, Modifiers{}); c.Kind != engine.CmdToggleMute || c.Voice != 1 {
		t.Fatalf("plain click = %s", c)
	}
	if c := ClickVoice(1, Modifiers{Shift: true, Alt: true}); c.Kind != engine.CmdReseed {
		t.Fatalf("shift click = %s", c)
	}
	if c := ClickVoice(2, Modifiers{Alt: true}); c.Kind != engine.CmdToggleSolo {
		t.Fatalf("alt click = %s", c)
	}
	if c := ClickEmpty(sim.Vec2{X: 0.5}); c.Kind != engine.CmdAudition || c.UV.X != 0.5 {
		t.Fatalf("empty click = %s", c)
	}
	if c := Drag(0, model.Vec3{X: 2}); c.Kind != engine.CmdSetPosition || c.Position.X != 2 {
		t.Fatalf("drag = %s", c)
	}
}
