// Package host drives the virtual machine core from a windowed front
// end. It paces instruction execution by the machine's configured clock,
// supplies key snapshots, renders emitted display frames and gates the
// buzzer on the sound timer.
package host

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrogolib/log"
	"github.com/stmio/chip8/internal/chip8"
	"github.com/stmio/chip8/internal/trace"
)

// frameDuration is the simulated time that one host frame covers, the
// window loop ticks at 60 Hz.
const frameDuration = time.Second / 60

// Config contains the host setup.
type Config struct {
	Chip   *chip8.ChipState
	Logger *log.Logger
	Title  string
	Scale  int
	Mute   bool
	Trace  bool
}

// Host implements ebiten.Game on top of a machine instance. The machine
// is exclusively owned by the host loop, there is exactly one writer and
// no concurrent readers.
type Host struct {
	chip   *chip8.ChipState
	logger *log.Logger
	buzzer *Buzzer
	trace  bool

	ctx    context.Context
	frame  chip8.Display
	pix    []byte
	budget time.Duration
	paused bool
}

// New returns a host for the given machine and configures the window.
func New(cfg Config) (*Host, error) {
	h := &Host{
		chip:   cfg.Chip,
		logger: cfg.Logger,
		trace:  cfg.Trace,
		pix:    make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4),
	}

	if !cfg.Mute {
		buzzer, err := NewBuzzer()
		if err != nil {
			return nil, fmt.Errorf("initializing buzzer: %w", err)
		}
		h.buzzer = buzzer
	}

	scale := cfg.Scale
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(chip8.DisplayWidth*scale, chip8.DisplayHeight*scale)
	ebiten.SetWindowTitle(cfg.Title)
	return h, nil
}

// Run drives the host loop until the window is closed or the context is
// canceled.
func (h *Host) Run(ctx context.Context) error {
	h.ctx = ctx
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("running host loop: %w", err)
	}
	return nil
}

// Close releases the audio output.
func (h *Host) Close() error {
	if h.buzzer != nil {
		return h.buzzer.Close()
	}
	return nil
}

// Update advances the machine by as many instructions as fit into one
// frame of simulated time. A fault pauses execution with the display
// left intact instead of terminating the host.
func (h *Host) Update() error {
	if h.ctx != nil && h.ctx.Err() != nil {
		return ebiten.Termination
	}
	if h.paused {
		return nil
	}

	keys := snapshotKeys()
	h.budget += frameDuration

	if err := h.advance(&keys); err != nil {
		h.paused = true
		if h.buzzer != nil {
			h.buzzer.Set(false)
		}
		h.logger.Error("Execution fault, pausing", log.Err(err))
		return nil
	}

	if h.buzzer != nil {
		h.buzzer.Set(h.chip.BuzzerActive())
	}
	return nil
}

// advance runs machine steps until the accumulated time budget is spent.
// The remainder carries over to the next frame so that the effective
// execution rate matches the configured clock.
func (h *Host) advance(keys *chip8.Keys) error {
	period := h.chip.ClockPeriod()

	for h.budget >= period {
		h.budget -= period

		if h.trace {
			h.logger.Debug("Executing instruction",
				log.Hex("pc", h.chip.PC()),
				log.String("asm", trace.Format(h.chip.Peek())),
			)
		}

		frame, err := h.chip.Step(keys)
		if err != nil {
			return err
		}
		if frame != nil {
			h.frame = *frame
		}
	}
	return nil
}

// Draw renders the last emitted display frame. The screen has the
// logical size of the display, the window scales it up.
func (h *Host) Draw(screen *ebiten.Image) {
	i := 0
	for y := range h.frame {
		for x := range h.frame[y] {
			v := byte(0)
			if h.frame[y][x] != 0 {
				v = 0xFF
			}
			h.pix[i] = v
			h.pix[i+1] = v
			h.pix[i+2] = v
			h.pix[i+3] = 0xFF
			i += 4
		}
	}
	screen.WritePixels(h.pix)
}

// Layout reports the logical screen size.
func (h *Host) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth, chip8.DisplayHeight
}
