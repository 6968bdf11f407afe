// Package pitch converts scale degrees and MIDI note numbers to frequencies.
package pitch

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// DegreeToMidi returns root + degree shifted by whole octaves. The result is
// not range checked.
func DegreeToMidi(root, degree, octave int) int {
	return root + degree + 12*octave
}

// MidiToHz converts a MIDI note number to its equal-tempered frequency (A4 = 440 Hz).
func MidiToHz(midi float64) float64 {
	return 440 * math.Pow(2, (midi-69)/12)
}

// Scale is an ordered set of semitone offsets from the root.
type Scale []int

var (
	CMajorPentatonic = Scale{0, 2, 4, 7, 9, 12}

	Ionian     = Scale{0, 2, 4, 5, 7, 9, 11, 12}
	Dorian     = Scale{0, 2, 3, 5, 7, 9, 10, 12}
	Phrygian   = Scale{0, 1, 3, 5, 7, 8, 10, 12}
	Lydian     = Scale{0, 2, 4, 6, 7, 9, 11, 12}
	Mixolydian = Scale{0, 2, 4, 5, 7, 9, 10, 12}
	Aeolian    = Scale{0, 2, 3, 5, 7, 8, 10, 12}
	Locrian    = Scale{0, 1, 3, 5, 6, 8, 10, 12}
)

// Mode pairs a display name with its scale.
type Mode struct {
	Name  string
	Scale Scale
}

// Modes lists the church modes in the order bound to the number keys 1..7.
var Modes = []Mode{
	{"ionian", Ionian},
	{"dorian", Dorian},
	{"phrygian", Phrygian},
	{"lydian", Lydian},
	{"mixolydian", Mixolydian},
	{"aeolian", Aeolian},
	{"locrian", Locrian},
}

// ScaleByName looks up "pentatonic" or one of the Modes, case-insensitively.
func ScaleByName(name string) (Scale, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "pentatonic" {
		return CMajorPentatonic, true
	}
	for _, m := range Modes {
		if m.Name == n {
			return m.Scale, true
		}
	}
	return nil, false
}

// ScaleName is the inverse of ScaleByName. Unknown scales are reported as "custom".
func ScaleName(s Scale) string {
	if slices.Equal(s, CMajorPentatonic) {
		return "pentatonic"
	}
	for _, m := range Modes {
		if slices.Equal(s, m.Scale) {
			return m.Name
		}
	}
	return "custom"
}

// Roots maps note letters to MIDI numbers around middle C.
var Roots = map[rune]int{
	'A': 69, 'B': 71, 'C': 60, 'D': 62, 'E': 64, 'F': 65, 'G': 67,
}

// RandomRoots is the pool used when picking a random tonal center.
var RandomRoots = []int{60, 62, 64, 65, 67, 69, 71}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName renders a MIDI number as e.g. "C4".
func NoteName(midi int) string {
	octave := midi/12 - 1
	idx := midi % 12
	if idx < 0 {
		idx += 12
		octave--
	}
	return noteNames[idx] + strconv.Itoa(octave)
}
