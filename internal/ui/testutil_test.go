package ui

import (
	"io"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/swirl/core/beat"
	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/model"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
)

type fakeAudio struct {
	now    float64
	volume float64
	level  float64
	frames []engine.Output
}

func (a *fakeAudio) Now() float64             { return a.now }
func (a *fakeAudio) Frame(out engine.Output)  { a.frames = append(a.frames, out) }
func (a *fakeAudio) Level() float64           { return a.level }
func (a *fakeAudio) Volume() float64          { return a.volume }
func (a *fakeAudio) SetVolume(v float64)      { a.volume = v }
func (a *fakeAudio) lastFrame() engine.Output { return a.frames[len(a.frames)-1] }

func (a *fakeAudio) events() []model.NoteEvent {
	var out []model.NoteEvent
	for _, f := range a.frames {
		out = append(out, f.Events...)
	}
	return out
}

// fakeInput holds the state the injected ebiten input functions read.
type fakeInput struct {
	x, y int
	left bool
	held map[ebiten.Key]bool
	just map[ebiten.Key]bool
}

type testHarness struct {
	g     *Game
	audio *fakeAudio
	in    *fakeInput
	clock time.Time
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	logger := game_log.New(io.Discard, game_log.LevelError)
	eng, err := engine.New(model.DefaultVoices(), beat.DefaultParams(), 42, logger)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	h := &testHarness{
		audio: &fakeAudio{volume: 0.25},
		in:    &fakeInput{held: map[ebiten.Key]bool{}, just: map[ebiten.Key]bool{}},
		clock: time.Unix(1000, 0),
	}
	restore := SetInputForTest(
		func() (int, int) { return h.in.x, h.in.y },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && h.in.left },
		func(k ebiten.Key) bool { return h.in.held[k] },
		func(k ebiten.Key) bool { return h.in.just[k] },
		func() (float64, float64) { return 0, 0 },
	)
	oldNow := nowFunc
	nowFunc = func() time.Time { return h.clock }
	t.Cleanup(func() {
		restore()
		nowFunc = oldNow
	})
	h.g = New(eng, h.audio, nil, logger)
	return h
}

// step runs one frame of d, clearing one-shot key presses afterwards.
func (h *testHarness) step(t *testing.T, d time.Duration) {
	t.Helper()
	h.clock = h.clock.Add(d)
	h.audio.now += d.Seconds()
	if err := h.g.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	clear(h.in.just)
}

// press taps a key for a single frame.
func (h *testHarness) press(t *testing.T, k ebiten.Key) {
	t.Helper()
	h.in.just[k] = true
	h.step(t, 16*time.Millisecond)
}

// click simulates a mouse click at (x,y) and releases it on the next frame.
func (h *testHarness) click(t *testing.T, x, y int) {
	t.Helper()
	h.in.x, h.in.y = x, y
	h.in.left = true
	h.step(t, 16*time.Millisecond)
	h.in.left = false
	h.step(t, 16*time.Millisecond)
}

// voiceScreen returns the integer screen position of voice i.
func (h *testHarness) voiceScreen(i int) (int, int) {
	x, y := h.g.cam.ScreenPos(h.g.eng.Voices()[i].Position)
	return int(x + 0.5), int(y + 0.5)
}
