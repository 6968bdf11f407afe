// Package control maps keys and pointer gestures to engine commands and host
// actions. Both the window and the terminal host share it.
package control

import (
	"github.com/ingyamilmolinar/swirl/core/engine"
	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/core/pitch"
	"github.com/ingyamilmolinar/swirl/core/sim"
	"github.com/ingyamilmolinar/swirl/internal/utils"
)

// Key is a host-independent key.
type Key int

const (
	KeyNone Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	KeyR
	KeyT
	KeySpace
	KeyRight
	KeyLeft
	KeyUp
	KeyDown
	KeyPlus
	KeyMinus
	KeyH
	KeyEnter
	KeyQuit
)

const (
	BPMStep    = 5
	VolumeStep = 0.05
)

type HostAction int

const (
	HostNone HostAction = iota
	HostVolumeUp
	HostVolumeDown
	HostToggleHelp
	HostToggleFullscreen
	HostQuit
)

// Action is the result of a key press: an engine command, a host action, or both.
type Action struct {
	Command *engine.Command
	Host    HostAction
}

func cmd(c engine.Command) Action { return Action{Command: &c} }

var rootKeys = map[Key]rune{KeyA: 'A', KeyB: 'B', KeyC: 'C', KeyD: 'D', KeyE: 'E', KeyF: 'F', KeyG: 'G'}

// ForKey returns the action bound to k.
func ForKey(k Key) (Action, bool) {
	if r, ok := rootKeys[k]; ok {
		return cmd(engine.Command{Kind: engine.CmdSetRoot, Value: float64(pitch.Roots[r])}), true
	}
	if k >= Key1 && k <= Key7 {
		c, ok := engine.ModeCommand(int(k-Key1) + 1)
		return cmd(c), ok
	}
	switch k {
	case KeyR:
		return cmd(engine.Command{Kind: engine.CmdReseedAll}), true
	case KeyT:
		return cmd(engine.Command{Kind: engine.CmdRandomKey}), true
	case KeySpace:
		return cmd(engine.Command{Kind: engine.CmdTogglePause}), true
	case KeyRight, KeyPlus:
		return cmd(engine.Command{Kind: engine.CmdNudgeBPM, Value: BPMStep}), true
	case KeyLeft, KeyMinus:
		return cmd(engine.Command{Kind: engine.CmdNudgeBPM, Value: -BPMStep}), true
	case KeyUp:
		return Action{Host: HostVolumeUp}, true
	case KeyDown:
		return Action{Host: HostVolumeDown}, true
	case KeyH:
		return Action{Host: HostToggleHelp}, true
	case KeyEnter:
		return Action{Host: HostToggleFullscreen}, true
	case KeyQuit:
		return Action{Host: HostQuit}, true
	}
	return Action{}, false
}

// Modifiers held during a click.
type Modifiers struct {
	Shift bool
	Alt   bool
}

// ClickVoice is a click on a voice marker: plain click mutes, shift reseeds,
// alt solos.
func ClickVoice(voice int, m Modifiers) engine.Command {
	switch {
	case m.Shift:
		return engine.Command{Kind: engine.CmdReseed, Voice: voice}
	case m.Alt:
		return engine.Command{Kind: engine.CmdToggleSolo, Voice: voice}
	default:
		return engine.Command{Kind: engine.CmdToggleMute, Voice: voice}
	}
}

// ClickEmpty auditions a note at the clicked canvas position.
func ClickEmpty(uv sim.Vec2) engine.Command {
	return engine.Command{Kind: engine.CmdAudition, UV: uv}
}

// Drag moves a voice; the engine clamps the radius.
func Drag(voice int, pos model.Vec3) engine.Command {
	return engine.Command{Kind: engine.CmdSetPosition, Voice: voice, Position: pos}
}

// Host is what a frontend exposes to key actions.
type Host interface {
	Volume() float64
	SetVolume(float64)
	ToggleHelp()
	ToggleFullscreen()
	Quit()
}

// Apply runs a through the engine and host.
func Apply(e *engine.Engine, h Host, a Action) {
	if a.Command != nil {
		e.Apply(*a.Command)
	}
	switch a.Host {
	case HostVolumeUp:
		h.SetVolume(utils.Clamp01(h.Volume() + VolumeStep))
	case HostVolumeDown:
		h.SetVolume(utils.Clamp01(h.Volume() - VolumeStep))
	case HostToggleHelp:
		h.ToggleHelp()
	case HostToggleFullscreen:
		h.ToggleFullscreen()
	case HostQuit:
		h.Quit()
	}
}

// Help lists the key bindings for overlays.
var Help = []string{
	"A-G      root note",
	"1-7      mode (ionian .. locrian)",
	"R        reseed all voices",
	"T        random root and mode",
	"Space    pause",
	"<- ->    tempo -/+ 5",
	"Up Down  volume",
	"H        toggle help",
	"Enter    fullscreen",
	"click voice: mute, shift: reseed, alt: solo",
	"drag voice: move, click empty: play a note",
}
