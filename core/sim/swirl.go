// Package sim turns pointer samples and note events into smoothed control
// signals: a spring-damped swirl point and per-voice pulse envelopes.
package sim

import (
	"math"

	"github.com/ingyamilmolinar/swirl/internal/utils"
)

// Vec2 is a point in normalized canvas space.
type Vec2 struct{ X, Y float64 }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Len() float64    { return math.Hypot(v.X, v.Y) }

// Pointer is one pointer sample.
type Pointer struct {
	UV   Vec2
	Down bool
}

const (
	swirlOmega   = 1.1
	swirlZeta    = 0.5
	swirlMaxRate = 0.50 // max displacement per second
	swirlMaxVel  = 2.0

	maxPointerSpeed = 10.0
	energyBlend     = 0.15
)

// Swirl is an underdamped spring chasing the pointer.
type Swirl struct {
	Pos    Vec2
	Vel    Vec2
	Energy float64

	init   bool
	prevUV Vec2
}

// Update advances the spring one explicit step of dt seconds toward p.UV and
// refreshes Energy. The step is capped at swirlMaxRate·dt and the velocity
// at swirlMaxVel, so long frames cannot blow up.
func (s *Swirl) Update(dt float64, p Pointer) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	target := Vec2{utils.Clamp(p.UV.X, 0, 1), utils.Clamp(p.UV.Y, 0, 1)}
	if !s.init {
		s.init = true
		s.Pos = target
		s.Vel = Vec2{}
		s.prevUV = target
	} else {
		s.integrate(target, dt)
	}

	speed := math.Min(target.Sub(s.prevUV).Len()/(dt+1e-5), maxPointerSpeed)
	bonus := 0.0
	if p.Down {
		bonus = 0.5
	}
	e := utils.Clamp(speed*0.2+s.Vel.Len()*0.35+bonus, 0, 1)
	s.Energy = (1-energyBlend)*s.Energy + energyBlend*e
	s.prevUV = target
}

func (s *Swirl) integrate(target Vec2, dt float64) {
	k := swirlOmega * swirlOmega
	c := 2 * swirlOmega * swirlZeta
	s.Vel.X += (k*(target.X-s.Pos.X) - c*s.Vel.X) * dt
	s.Vel.Y += (k*(target.Y-s.Pos.Y) - c*s.Vel.Y) * dt
	if l := s.Vel.Len(); l > swirlMaxVel {
		s.Vel = Vec2{s.Vel.X / l * swirlMaxVel, s.Vel.Y / l * swirlMaxVel}
	}

	step := Vec2{s.Vel.X * dt, s.Vel.Y * dt}
	if l, limit := step.Len(), swirlMaxRate*dt; l > limit {
		inv := 1 / (l + 1e-6)
		step = Vec2{step.X * inv * limit, step.Y * inv * limit}
	}
	s.Pos.X = utils.Clamp(s.Pos.X+step.X, 0, 1)
	s.Pos.Y = utils.Clamp(s.Pos.Y+step.Y, 0, 1)
}

// SpeedNorm is the spring speed clamped to [0,1].
func (s *Swirl) SpeedNorm() float64 { return utils.Clamp(s.Vel.Len(), 0, 1) }

// Strength is the render intensity of the swirl.
func (s *Swirl) Strength() float64 {
	return 0.28 + 0.85*s.Energy + 0.15*s.SpeedNorm()
}
