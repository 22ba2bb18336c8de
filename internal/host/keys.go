package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stmio/chip8/internal/chip8"
)

// keypad maps the 16-key hexadecimal keypad onto the left QWERTY block:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   ->   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var keypad = [16]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.KeyDigit1,
	0x2: ebiten.KeyDigit2,
	0x3: ebiten.KeyDigit3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.KeyDigit4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// snapshotKeys captures the current keypad state. The snapshot stays
// consistent for the full duration of one machine step.
func snapshotKeys() chip8.Keys {
	var keys chip8.Keys
	for value, key := range keypad {
		keys[value] = ebiten.IsKeyPressed(key)
	}
	return keys
}
