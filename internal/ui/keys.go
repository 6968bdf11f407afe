package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/swirl/internal/control"
)

// keyMap binds ebiten keys to control keys. Order matters only for logging.
var keyMap = []struct {
	k ebiten.Key
	c control.Key
}{
	{ebiten.KeyA, control.KeyA},
	{ebiten.KeyB, control.KeyB},
	{ebiten.KeyC, control.KeyC},
	{ebiten.KeyD, control.KeyD},
	{ebiten.KeyE, control.KeyE},
	{ebiten.KeyF, control.KeyF},
	{ebiten.KeyG, control.KeyG},
	{ebiten.KeyDigit1, control.Key1},
	{ebiten.KeyDigit2, control.Key2},
	{ebiten.KeyDigit3, control.Key3},
	{ebiten.KeyDigit4, control.Key4},
	{ebiten.KeyDigit5, control.Key5},
	{ebiten.KeyDigit6, control.Key6},
	{ebiten.KeyDigit7, control.Key7},
	{ebiten.KeyR, control.KeyR},
	{ebiten.KeyT, control.KeyT},
	{ebiten.KeySpace, control.KeySpace},
	{ebiten.KeyArrowRight, control.KeyRight},
	{ebiten.KeyArrowLeft, control.KeyLeft},
	{ebiten.KeyArrowUp, control.KeyUp},
	{ebiten.KeyArrowDown, control.KeyDown},
	{ebiten.KeyEqual, control.KeyPlus},
	{ebiten.KeyNumpadAdd, control.KeyPlus},
	{ebiten.KeyMinus, control.KeyMinus},
	{ebiten.KeyNumpadSubtract, control.KeyMinus},
	{ebiten.KeyH, control.KeyH},
	{ebiten.KeyEnter, control.KeyEnter},
	{ebiten.KeyEscape, control.KeyQuit},
}

// pressedKeys returns the control keys pressed this frame.
func pressedKeys() []control.Key {
	var out []control.Key
	for _, m := range keyMap {
		if isKeyJustPressed(m.k) {
			out = append(out, m.c)
		}
	}
	return out
}

func modifiers() control.Modifiers {
	return control.Modifiers{
		Shift: isKeyPressed(ebiten.KeyShiftLeft) || isKeyPressed(ebiten.KeyShiftRight),
		Alt:   isKeyPressed(ebiten.KeyAltLeft) || isKeyPressed(ebiten.KeyAltRight),
	}
}
