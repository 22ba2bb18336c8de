// Package options contains the program options.
package options

import "github.com/stmio/chip8/internal/chip8"

// Program options of the emulator.
type Program struct {
	ROM string // positional argument, path of the ROM to run

	ClockHz int // CPU clock frequency in Hz
	Scale   int // window scale factor

	LegacyShift bool // shift instructions load Vy before shifting
	Mute        bool // disable buzzer audio output
	Trace       bool // log every executed instruction
	Debug       bool // enable debug logging
	Quiet       bool // only log errors
}

// New returns program options with default values.
func New() Program {
	return Program{
		ClockHz: chip8.DefaultClockHz,
		Scale:   10,
	}
}
