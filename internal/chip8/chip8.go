// Package chip8 implements the CHIP-8 virtual machine core.
//
// The core owns all mutable machine state and executes exactly one
// instruction per Step call. It is driven synchronously by an external
// host loop that supplies key snapshots, renders emitted display frames
// and gates audio on the buzzer flag. Nothing in this package blocks or
// spawns background work; even the "wait for key" instruction is a pure
// state transition (see execute.go).
package chip8

import (
	"math/rand/v2"
	"time"
)

// Memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: interpreter area, font glyphs at 0x050-0x09F
//	0x200-0xFFF: user program space (3584 bytes)
const (
	// ProgramStart is the memory address where CHIP-8 programs begin execution.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = memorySize - ProgramStart

	// fontBase is the memory address of the built-in glyph table.
	fontBase = 0x050

	memorySize  = 4096
	addressMask = 0x0FFF // all address arithmetic is masked to 12 bits

	registerCount = 16
	stackDepth    = 16
	flagRegister  = 0xF
)

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// timerInterval is the fixed decay interval of the delay and sound
// timers, 1/60 second. Timer decay is tied to real time, not to the
// configured CPU clock.
const timerInterval = 16666667 * time.Nanosecond

// DefaultClockHz is the CPU clock frequency used when none is configured.
const DefaultClockHz = 700

// Display is a snapshot of the 64x32 monochrome frame buffer, indexed as
// [row][column]. Each cell is 0 (off) or 1 (on).
type Display [DisplayHeight][DisplayWidth]uint8

// Keys is a snapshot of the 16-key hexadecimal keypad, indexed by key
// value 0x0-0xF. A snapshot is only valid for the duration of one Step.
type Keys [16]bool

// ChipState is the complete mutable state of one CHIP-8 machine. It is
// exclusively owned by the loop driving Step; all mutation is routed
// through the execution engine.
type ChipState struct {
	memory    [memorySize]byte
	registers [registerCount]uint8
	pc        uint16
	index     uint16
	stack     [stackDepth]uint16
	pointer   uint8 // next free stack slot, 0 means empty

	display Display

	delayTimer uint8
	soundTimer uint8

	speed  time.Duration // duration of one instruction at the configured clock
	ticker time.Duration // time remaining until the next timer decay

	legacyShift bool
	random      func() uint8
}

// Option configures optional machine behavior.
type Option func(*ChipState)

// WithLegacyShift makes the shift instructions load Vy into Vx before
// shifting, matching the original COSMAC VIP interpreter. The default is
// the modern behavior of shifting Vx in place.
func WithLegacyShift() Option {
	return func(c *ChipState) {
		c.legacyShift = true
	}
}

// New returns a machine with zeroed memory except for the font glyph
// region, the program counter at ProgramStart and the clock period
// derived from the given frequency. A clock frequency of zero or less
// selects DefaultClockHz.
func New(clockHz int, opts ...Option) *ChipState {
	if clockHz <= 0 {
		clockHz = DefaultClockHz
	}

	c := &ChipState{
		pc:     ProgramStart,
		speed:  time.Second / time.Duration(clockHz),
		ticker: timerInterval,
		random: func() uint8 {
			return uint8(rand.UintN(256))
		},
	}
	copy(c.memory[fontBase:], font[:])
	return c
}

// Load copies a program image into memory at ProgramStart and resets the
// program counter. The image is a raw big-endian opcode stream without a
// header. Returns a LoadError if it does not fit into program space.
func (c *ChipState) Load(rom []byte) error {
	if len(rom) > MaxProgramSize {
		return LoadError{Size: len(rom)}
	}

	copy(c.memory[ProgramStart:], rom)
	c.pc = ProgramStart
	return nil
}

// Step fetches, decodes and executes a single instruction using the
// given key snapshot. It returns a display frame only for instructions
// that visibly change the display, and an error for decode failures and
// stack faults. A fault leaves the machine paused at the faulting
// instruction; it never corrupts memory or panics.
func (c *ChipState) Step(keys *Keys) (*Display, error) {
	opcode := c.fetch()

	ins, err := Decode(opcode)
	if err != nil {
		return nil, err
	}

	c.tick()

	return c.execute(ins, keys)
}

// ClockPeriod returns the configured duration of one instruction. The
// host paces its Step invocations by it.
func (c *ChipState) ClockPeriod() time.Duration {
	return c.speed
}

// BuzzerActive reports whether the sound timer is running. The host
// polls it once per cycle to drive audio output.
func (c *ChipState) BuzzerActive() bool {
	return c.soundTimer != 0
}

// PC returns the current program counter.
func (c *ChipState) PC() uint16 {
	return c.pc
}

// Peek returns the opcode at the current program counter without
// advancing it.
func (c *ChipState) Peek() uint16 {
	return uint16(c.memory[c.pc])<<8 | uint16(c.memory[(c.pc+1)&addressMask])
}

// fetch reads the big-endian opcode at the program counter and advances
// it by one instruction, wrapping within the 12-bit address space.
func (c *ChipState) fetch() uint16 {
	opcode := c.Peek()
	c.advancePC()
	return opcode
}

// tick subtracts one instruction duration from the timer accumulator.
// When the accumulator runs out, both timers decrement by one,
// saturating at zero, and the accumulator resets to exactly 1/60 s.
// This decouples timer decay from the CPU execution rate.
func (c *ChipState) tick() {
	c.ticker -= c.speed
	if c.ticker > 0 {
		return
	}

	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
	c.ticker = timerInterval
}

func (c *ChipState) advancePC() {
	c.pc = (c.pc + 2) & addressMask
}

func (c *ChipState) rewindPC() {
	c.pc = (c.pc - 2) & addressMask
}
