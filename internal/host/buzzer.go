package host

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate = 48000
	beepHz     = 440
	beepVolume = 0.25
)

// Buzzer renders the machine's boolean sound signal as a square wave.
// The audio device pulls samples through Read on its own goroutine, the
// host loop only flips the active flag.
type Buzzer struct {
	player *oto.Player
	active atomic.Bool
	phase  int // sample position, only touched by the audio goroutine
}

// NewBuzzer opens the audio device and starts the sample stream. The
// stream is silent until Set enables it.
func NewBuzzer() (*Buzzer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio context: %w", err)
	}
	<-ready

	b := &Buzzer{}
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b, nil
}

// Set enables or disables the beep.
func (b *Buzzer) Set(active bool) {
	b.active.Store(active)
}

// Read generates float32 little-endian samples, a square wave while
// active and silence otherwise.
func (b *Buzzer) Read(p []byte) (int, error) {
	const halfPeriod = sampleRate / beepHz / 2

	samples := len(p) / 4
	active := b.active.Load()

	for i := range samples {
		var s float32
		if active {
			if (b.phase/halfPeriod)%2 == 0 {
				s = beepVolume
			} else {
				s = -beepVolume
			}
		}
		b.phase++
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return samples * 4, nil
}

// Close stops audio output.
func (b *Buzzer) Close() error {
	if b.player != nil {
		return b.player.Close()
	}
	return nil
}
