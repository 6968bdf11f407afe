package fx

import (
	"math"
	"testing"

	"github.com/ingyamilmolinar/swirl/core/model"
)

func within(v, lo, hi float64) bool { return v >= lo && v <= hi }

func TestMapStaysInRange(t *testing.T) {
	for e := 0.0; e <= 1.0; e += 0.125 {
		for u := 0.0; u <= 1.0; u += 0.125 {
			for v := 0.0; v <= 1.0; v += 0.125 {
				p := Map(e, u, v)
				if !within(p.ReverbWet, 0, 1) || !within(p.DelayWet, 0, 1) ||
					!within(p.DelayFeedback, 0, 0.95) || !within(p.Drive, 0.2, 3) ||
					!within(p.SatWet, 0, 1) || math.Abs(p.SatWet+p.SatDry-1) > 1e-12 {
					t.Fatalf("Map(%v,%v,%v) out of range: %+v", e, u, v, p)
				}
			}
		}
	}
}

func TestMapCorners(t *testing.T) {
	p := Map(0, 0, 0)
	if p.ReverbWet != 0.35 || p.DelayWet != 0.15 || p.DelayFeedback != 0.35 || p.Drive != 0.6 {
		t.Fatalf("Map(0,0,0) = %+v", p)
	}
	p = Map(1, 1, 1)
	if p.ReverbWet != 1 || p.Drive != 3 || p.SatWet != 1 || p.SatDry != 0 {
		t.Fatalf("Map(1,1,1) = %+v", p)
	}
	if math.Abs(p.DelayFeedback-0.7) > 1e-12 {
		t.Fatalf("feedback = %v", p.DelayFeedback)
	}
	p = Map(1, 1, 0)
	if p.DelayFeedback != 0.95 || p.DelayWet != 1 {
		t.Fatalf("Map(1,1,0) = %+v", p)
	}
}

func TestMapToleratesWildInput(t *testing.T) {
	p := Map(math.NaN(), 50, -50)
	if !within(p.ReverbWet, 0, 1) || !within(p.Drive, 0.2, 3) {
		t.Fatalf("wild input not clamped: %+v", p)
	}
}

func TestVoiceSend(t *testing.T) {
	s := VoiceSend(model.Vec3{}, 0)
	if s.Delay != 0.15 || s.Reverb != 0.25 || s.Level != 1 {
		t.Fatalf("origin send = %+v", s)
	}
	s = VoiceSend(model.Vec3{X: 3}, 1)
	if s.Delay != 1.2 || s.Reverb != 1.5 || s.Level != 0.55 {
		t.Fatalf("far send = %+v", s)
	}
	s = VoiceSend(model.Vec3{X: -1}, 0)
	if s.Delay != 1 || math.Abs(s.Reverb-0.55) > 1e-12 {
		t.Fatalf("left send = %+v", s)
	}
}
