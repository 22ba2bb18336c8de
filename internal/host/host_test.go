package host

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/stmio/chip8/internal/chip8"
)

func TestAdvanceSpendsTimeBudget(t *testing.T) {
	chip := chip8.New(600)                           // 10 instructions per 60 Hz frame
	assert.NoError(t, chip.Load([]byte{0x12, 0x00})) // jump-to-self

	h := &Host{chip: chip}
	h.budget += frameDuration

	assert.NoError(t, h.advance(&chip8.Keys{}))

	// The budget remainder is smaller than one clock period and carries
	// over to the next frame.
	assert.True(t, h.budget < chip.ClockPeriod())
	assert.True(t, h.budget >= 0)
}

func TestAdvanceLatchesEmittedFrame(t *testing.T) {
	chip := chip8.New(60) // one instruction per frame
	rom := []byte{
		0x60, 0x00, // ld V0, $00
		0x61, 0x00, // ld V1, $00
		0xA2, 0x0A, // ld I, $20A
		0xD0, 0x11, // drw V0, V1, $1
		0x12, 0x08, // jump-to-self
		0x80, // sprite data: single pixel
	}
	assert.NoError(t, chip.Load(rom))

	h := &Host{chip: chip}
	for i := 0; i < 4; i++ {
		h.budget += frameDuration
		assert.NoError(t, h.advance(&chip8.Keys{}))
	}

	assert.Equal(t, uint8(1), h.frame[0][0])
}

func TestAdvanceReportsFault(t *testing.T) {
	chip := chip8.New(600)
	assert.NoError(t, chip.Load([]byte{0x00, 0xEE})) // return with empty stack

	h := &Host{chip: chip}
	h.budget = frameDuration

	err := h.advance(&chip8.Keys{})
	assert.Error(t, err)
}

func TestBuzzerRead(t *testing.T) {
	b := &Buzzer{}
	buf := make([]byte, 4*sampleRate/beepHz)

	t.Run("silent while inactive", func(t *testing.T) {
		n, err := b.Read(buf)
		assert.NoError(t, err)
		assert.Equal(t, len(buf), n)

		for i := 0; i < n; i += 4 {
			assert.Equal(t, float32(0), sampleAt(buf, i))
		}
	})

	t.Run("square wave while active", func(t *testing.T) {
		b.Set(true)
		b.phase = 0

		n, err := b.Read(buf)
		assert.NoError(t, err)
		assert.Equal(t, len(buf), n)

		// First half period high, second half low.
		high := sampleAt(buf, 0)
		assert.Equal(t, float32(beepVolume), high)

		half := sampleRate / beepHz / 2
		low := sampleAt(buf, half*4)
		assert.Equal(t, float32(-beepVolume), low)
	})
}

func sampleAt(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestFrameDuration(t *testing.T) {
	assert.Equal(t, time.Second/60, frameDuration)
}
