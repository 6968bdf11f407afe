package utils

import "math"

// Clamp limits v to [lo,hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Clamp01 is Clamp(v, 0, 1).
func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
