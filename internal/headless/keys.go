package headless

import "github.com/ingyamilmolinar/swirl/internal/control"

const (
	esc   = 0x1b
	ctrlC = 0x03
)

// Decoder turns raw terminal bytes into control keys. Arrow keys arrive as
// the escape sequences ESC [ A..D.
type Decoder struct {
	state int
}

const (
	stateText = iota
	stateEsc
	stateCSI
)

var byteKeys = map[byte]control.Key{
	'a': control.KeyA, 'b': control.KeyB, 'c': control.KeyC, 'd': control.KeyD,
	'e': control.KeyE, 'f': control.KeyF, 'g': control.KeyG,
	'1': control.Key1, '2': control.Key2, '3': control.Key3, '4': control.Key4,
	'5': control.Key5, '6': control.Key6, '7': control.Key7,
	'r': control.KeyR, 't': control.KeyT, 'h': control.KeyH,
	' ': control.KeySpace,
	'+': control.KeyPlus, '=': control.KeyPlus,
	'-': control.KeyMinus, '_': control.KeyMinus,
	'\r': control.KeyEnter, '\n': control.KeyEnter,
	'q': control.KeyQuit, ctrlC: control.KeyQuit,
}

var arrowKeys = map[byte]control.Key{
	'A': control.KeyUp,
	'B': control.KeyDown,
	'C': control.KeyRight,
	'D': control.KeyLeft,
}

// Feed consumes one byte and reports the key it completes, if any.
func (d *Decoder) Feed(b byte) (control.Key, bool) {
	switch d.state {
	case stateEsc:
		if b == '[' || b == 'O' {
			d.state = stateCSI
			return control.KeyNone, false
		}
		d.state = stateText
	case stateCSI:
		// parameter bytes (e.g. "1;2") precede the final byte
		if b >= '0' && b <= '?' {
			return control.KeyNone, false
		}
		d.state = stateText
		k, ok := arrowKeys[b]
		return k, ok
	}
	if b == esc {
		d.state = stateEsc
		return control.KeyNone, false
	}
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	k, ok := byteKeys[b]
	return k, ok
}
