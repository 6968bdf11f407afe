package beat

import "math/rand/v2"

// seedMix spreads voice indices across the seed space (golden ratio constant).
const seedMix = 0x9E3779B97F4A7C15

// VoiceSeed derives the seed of voice i from the master seed.
func VoiceSeed(master uint64, i int) uint64 {
	return master ^ (uint64(i) * seedMix)
}

// VoiceRng is one voice's private random stream.
type VoiceRng struct {
	seed uint64
	r    *rand.Rand
}

func NewVoiceRng(seed uint64) *VoiceRng {
	return &VoiceRng{seed: seed, r: rand.New(rand.NewPCG(seed, seedMix))}
}

// Float returns a uniform value in [0,1).
func (v *VoiceRng) Float() float64 { return v.r.Float64() }

// IntN returns a uniform value in [0,n). n must be > 0.
func (v *VoiceRng) IntN(n int) int { return v.r.IntN(n) }

// Next draws a fresh 64-bit value, used to derive follow-up seeds.
func (v *VoiceRng) Next() uint64 { return v.r.Uint64() }

// Seed reports the seed the stream was created from.
func (v *VoiceRng) Seed() uint64 { return v.seed }
