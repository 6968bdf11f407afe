package engine

import (
	"fmt"
	"math"

	"github.com/ingyamilmolinar/swirl/core/model"
	"github.com/ingyamilmolinar/swirl/core/pitch"
	"github.com/ingyamilmolinar/swirl/core/sim"
	"github.com/ingyamilmolinar/swirl/internal/utils"
)

type CommandKind int

const (
	CmdSetBPM CommandKind = iota
	CmdNudgeBPM
	CmdSetScale
	CmdSetRoot
	CmdSetMuted
	CmdToggleMute
	CmdToggleSolo
	CmdReseed
	CmdReseedAll
	CmdSetPosition
	CmdRandomKey
	CmdTogglePause
	CmdAudition
)

func (k CommandKind) String() string {
	switch k {
	case CmdSetBPM:
		return "set-bpm"
	case CmdNudgeBPM:
		return "nudge-bpm"
	case CmdSetScale:
		return "set-scale"
	case CmdSetRoot:
		return "set-root"
	case CmdSetMuted:
		return "set-muted"
	case CmdToggleMute:
		return "toggle-mute"
	case CmdToggleSolo:
		return "toggle-solo"
	case CmdReseed:
		return "reseed"
	case CmdReseedAll:
		return "reseed-all"
	case CmdSetPosition:
		return "set-position"
	case CmdRandomKey:
		return "random-key"
	case CmdTogglePause:
		return "toggle-pause"
	case CmdAudition:
		return "audition"
	default:
		return "unknown"
	}
}

// Command is a discrete host request. Only the fields its Kind uses are read.
type Command struct {
	Kind     CommandKind
	Voice    int
	Value    float64 // bpm, bpm delta or root
	Muted    bool
	Seed     *uint64
	Scale    []int
	Position model.Vec3
	UV       sim.Vec2
}

func (c Command) String() string {
	return fmt.Sprintf("%s(voice=%d value=%g)", c.Kind, c.Voice, c.Value)
}

// Apply executes c. Commands addressing unknown voices do nothing.
func (e *Engine) Apply(c Command) {
	e.logger.Debugf("apply %s", c)
	switch c.Kind {
	case CmdSetBPM:
		e.sched.SetBPM(clampBPM(c.Value))
	case CmdNudgeBPM:
		e.sched.SetBPM(clampBPM(e.sched.BPM() + c.Value))
	case CmdSetScale:
		e.sched.SetScale(c.Scale)
	case CmdSetRoot:
		e.sched.SetRoot(int(math.Round(c.Value)))
	case CmdSetMuted:
		e.sched.SetVoiceMuted(c.Voice, c.Muted)
	case CmdToggleMute:
		e.sched.ToggleMute(c.Voice)
	case CmdToggleSolo:
		e.sched.ToggleSolo(c.Voice)
	case CmdReseed:
		e.sched.ReseedVoice(c.Voice, c.Seed)
	case CmdReseedAll:
		e.sched.ReseedAll()
	case CmdSetPosition:
		e.sched.SetVoicePosition(c.Voice, c.Position.ClampRadius(DragRadius))
	case CmdRandomKey:
		e.RandomKey()
	case CmdTogglePause:
		e.SetPaused(!e.paused)
	case CmdAudition:
		e.Audition(c.UV)
	}
}

func clampBPM(b float64) float64 {
	if math.IsNaN(b) {
		return 0
	}
	return utils.Clamp(b, MinBPM, MaxBPM)
}

// ModeCommand selects church mode n (1-based, as on the number keys).
func ModeCommand(n int) (Command, bool) {
	if n < 1 || n > len(pitch.Modes) {
		return Command{}, false
	}
	return Command{Kind: CmdSetScale, Scale: pitch.Modes[n-1].Scale}, true
}
