package ui

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/core/sim"
	"github.com/ingyamilmolinar/swirl/internal/control"
	game_log "github.com/ingyamilmolinar/swirl/internal/log"
)

const (
	PickRadius = 0.8 // world units
	BaseScale  = 1.6
	ScalePulse = 0.4

	markerUnit   = 0.12 // marker radius per unit of scale, in world units
	rippleLife   = 1.0  // seconds
	rippleGrowth = 60.0 // px over a ripple's life
	dragSlop     = 3    // px before a press becomes a drag
	commandQueue = 64
)

// nowFunc is the frame clock. Tests replace it.
var nowFunc = time.Now

// AudioOut is the sound side of the window host.
type AudioOut interface {
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

type ripple struct {
	pos   model.Vec3
	color model.Color
	age   float64
}

type Game struct {
	/* subsystems */
	eng       *engine.Engine
	out       AudioOut
	notes     NoteSink
	cam       *Camera
	transport *Transport
	logger    *game_log.Logger

	/* commands posted from other goroutines */
	cmds chan engine.Command

	/* pointer state */
	hover      int
	press      int
	pressing   bool
	dragged    bool
	pressX     int
	pressY     int
	leftPrev   bool
	pointerOff bool

	/* visuals */
	last     engine.Output
	ripples  []ripple
	showHelp bool

	/* misc */
	lastTick   time.Time
	winW, winH int
	quit       bool
}

// New builds the window host around an engine. notes may be nil.
func New(eng *engine.Engine, out AudioOut, notes NoteSink, logger *game_log.Logger) *Game {
	g := &Game{
		eng:       eng,
		out:       out,
		notes:     notes,
		cam:       NewCamera(),
		transport: NewTransport(out.Volume()),
		logger:    logger.With("GAME"),
		cmds:      make(chan engine.Command, commandQueue),
		hover:     -1,
		press:     -1,
	}
	g.last.Voices = eng.Voices()
	g.Layout(960, 640)
	return g
}

func (g *Game) Layout(w, h int) (int, int) {
	if w != g.winW || h != g.winH {
		g.winW, g.winH = w, h
		g.cam.Fit(w, h-topOffset, topOffset)
		g.transport.SetWidth(w)
		g.logger.Debugf("Layout: winW=%d winH=%d scale=%.1f", w, h, g.cam.Scale)
	}
	return w, h
}

// Post queues a command for the next frame. It never blocks; commands are
// dropped when the queue is full.
func (g *Game) Post(c engine.Command) bool {
	select {
	case g.cmds <- c:
		return true
	default:
		g.logger.Warnf("command queue full, dropping %s", c)
		return false
	}
}

/* ───────────────────────── control.Host ───────────────────────── */

func (g *Game) Volume() float64 { return g.out.Volume() }

func (g *Game) SetVolume(v float64) {
	g.out.SetVolume(v)
	g.transport.Volume.Value = g.out.Volume()
}

func (g *Game) ToggleHelp()       { g.showHelp = !g.showHelp }
func (g *Game) ToggleFullscreen() { setFullscreen(!isFullscreen()) }
func (g *Game) Quit()             { g.quit = true }

/* ─────────────── Update ──────────────────────────────────────────────── */

func (g *Game) Update() error {
	now := nowFunc()
	var dt time.Duration
	if !g.lastTick.IsZero() {
		dt = now.Sub(g.lastTick)
	}
	g.lastTick = now

	g.drainCommands()
	for _, k := range pressedKeys() {
		if a, ok := control.ForKey(k); ok {
			control.Apply(g.eng, g, a)
		}
	}
	if g.quit {
		g.logger.Infof("quit requested")
		return ebiten.Termination
	}

	g.cam.HandleWheel()
	mx, my := cursorPosition()
	left := isMouseButtonPressed(ebiten.MouseButtonLeft)
	g.handlePointer(mx, my, left)

	in := engine.Input{
		DT:      dt,
		Now:     g.out.Now(),
		Pointer: g.pointer(mx, my, left),
		Level:   g.out.Level(),
	}
	out := g.eng.Frame(in)
	g.out.Frame(out)
	if g.notes != nil {
		if err := g.notes.Frame(out.Events, in.Now); err != nil {
			g.logger.Warnf("note sink: %v", err)
		}
	}
	for _, ev := range out.Events {
		g.logger.Debugf("note %s", ev)
		if ev.Voice >= 0 && ev.Voice < len(out.Voices) {
			v := out.Voices[ev.Voice]
			g.addRipple(v.Position, v.Color)
		}
	}
	g.ageRipples(dt.Seconds())
	g.last = out
	return nil
}

func (g *Game) drainCommands() {
	for {
		select {
		case c := <-g.cmds:
			g.eng.Apply(c)
		default:
			return
		}
	}
}

// pointer maps the cursor to the unit square with v growing upwards.
func (g *Game) pointer(mx, my int, down bool) sim.Pointer {
	w := math.Max(1, float64(g.winW))
	h := math.Max(1, float64(g.winH))
	return sim.Pointer{
		UV:   sim.Vec2{X: float64(mx) / w, Y: 1 - float64(my)/h},
		Down: down && !g.pointerOff,
	}
}

// pick returns the voice under the screen point, or -1.
func (g *Game) pick(mx, my int) int {
	p := g.cam.WorldPos(float64(mx), float64(my))
	best, bestD := -1, PickRadius
	for _, v := range g.eng.Voices() {
		if d := p.Sub(v.Position).LenXZ(); d <= bestD {
			best, bestD = v.Index, d
		}
	}
	return best
}

func (g *Game) handlePointer(mx, my int, left bool) {
	defer func() { g.leftPrev = left }()

	if !g.pressing {
		if cmd, used := g.transport.Update(mx, my, left, g.eng.Paused()); used {
			if cmd != nil {
				g.eng.Apply(*cmd)
			}
			if left && g.transport.Volume.Dragging() {
				g.SetVolume(g.transport.Volume.Value)
			}
			g.pointerOff = true
			g.hover = -1
			return
		}
	}
	g.pointerOff = false
	g.hover = g.pick(mx, my)

	switch {
	case left && !g.leftPrev:
		g.pressing = true
		g.dragged = false
		g.press = g.hover
		g.pressX, g.pressY = mx, my
	case left && g.pressing:
		if !g.dragged && (abs(mx-g.pressX) > dragSlop || abs(my-g.pressY) > dragSlop) {
			g.dragged = true
		}
		if g.dragged && g.press >= 0 {
			g.eng.Apply(control.Drag(g.press, g.cam.WorldPos(float64(mx), float64(my))))
			g.hover = g.press
		}
	case !left && g.pressing:
		if !g.dragged {
			g.click(mx, my)
		}
		g.pressing = false
		g.press = -1
	}
}

func (g *Game) click(mx, my int) {
	if g.press >= 0 {
		c := control.ClickVoice(g.press, modifiers())
		g.logger.Debugf("click voice %d: %s", g.press, c.Kind)
		g.eng.Apply(c)
		return
	}
	ev := g.eng.Audition(g.pointer(mx, my, false).UV)
	col := model.Color{1, 1, 1}
	if ev.Voice < len(g.last.Voices) {
		col = g.last.Voices[ev.Voice].Color
	}
	g.addRipple(g.cam.WorldPos(float64(mx), float64(my)), col)
}

func (g *Game) addRipple(pos model.Vec3, c model.Color) {
	g.ripples = append(g.ripples, ripple{pos: pos, color: c})
}

func (g *Game) ageRipples(dt float64) {
	out := g.ripples[:0]
	for _, r := range g.ripples {
		r.age += dt
		if r.age < rippleLife {
			out = append(out, r)
		}
	}
	g.ripples = out
}

/* ─────────────── Draw ─────────────────────────────────────────────────── */

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBG)
	g.drawRings(screen)
	g.drawSwirl(screen)
	g.drawRipples(screen)
	g.drawVoices(screen)
	g.transport.Draw(screen, g.eng.Params(), g.eng.Paused())
	if g.showHelp {
		g.drawHelp(screen)
	}
}

func (g *Game) drawRings(dst *ebiten.Image) {
	cx, cy := g.cam.ScreenPos(model.Vec3{})
	for r := 1.0; r < engine.DragRadius; r++ {
		drawCircle(dst, cx, cy, g.cam.Pixels(r), colRing, 1)
	}
	drawCircle(dst, cx, cy, g.cam.Pixels(engine.DragRadius), colBound, 1)
}

func (g *Game) drawSwirl(dst *ebiten.Image) {
	s := g.last.Swirl
	x := s.Pos.X * float64(g.winW)
	y := (1 - s.Pos.Y) * float64(g.winH)
	r := 12 + 36*s.Strength
	drawCircle(dst, x, y, r, withAlpha(colSwirl, 0.25+0.5*s.Energy), 2)
}

func (g *Game) markerRadius(pulse float64) float64 {
	return g.cam.Pixels((BaseScale + pulse*ScalePulse) * markerUnit)
}

func (g *Game) drawRipples(dst *ebiten.Image) {
	for _, r := range g.ripples {
		x, y := g.cam.ScreenPos(r.pos)
		k := r.age / rippleLife
		c := withAlpha(voiceColor(r.color, false, false), 1-k)
		drawCircle(dst, x, y, g.markerRadius(0)+rippleGrowth*k, c, 2)
	}
}

func (g *Game) drawVoices(dst *ebiten.Image) {
	for _, v := range g.last.Voices {
		x, y := g.cam.ScreenPos(v.Position)
		r := g.markerRadius(v.Pulse)
		drawCircle(dst, x, y, r, voiceColor(v.Color, v.Muted, v.Index == g.hover), 0)
		if v.Soloed {
			drawCircle(dst, x, y, r+4, colSolo, 2)
		}
	}
}

func (g *Game) helpLines() []string {
	lines := []string{statusLine(g.eng.Params(), g.eng.Paused()), fmt.Sprintf("volume %.0f%%", g.out.Volume()*100), ""}
	for _, v := range g.eng.Voices() {
		state := ""
		if v.Muted {
			state += " muted"
		}
		if v.Soloed {
			state += " solo"
		}
		lines = append(lines, fmt.Sprintf("voice %d %-8s %s%s", v.Index, v.Waveform, v.Position, state))
	}
	lines = append(lines, "")
	return append(lines, control.Help...)
}

func (g *Game) drawHelp(dst *ebiten.Image) {
	lines := g.helpLines()
	r := image.Rect(20, topOffset+20, 420, topOffset+36+16*len(lines))
	drawRect(dst, r, colOverlay, true)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(dst, l, r.Min.X+10, r.Min.Y+8+16*i)
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
