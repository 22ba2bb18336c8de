package cli

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/stmio/chip8/internal/chip8"
	"github.com/stmio/chip8/internal/options"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts options.Program)
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.ch8"},
			check: func(t *testing.T, opts options.Program) {
				assert.Equal(t, "test.ch8", opts.ROM)
				assert.Equal(t, chip8.DefaultClockHz, opts.ClockHz)
				assert.Equal(t, 10, opts.Scale)
				assert.False(t, opts.Debug)
			},
		},
		{
			name: "custom clock frequency",
			args: []string{"prog", "-hz", "1000", "test.ch8"},
			check: func(t *testing.T, opts options.Program) {
				assert.Equal(t, 1000, opts.ClockHz)
			},
		},
		{
			name: "trace implies debug",
			args: []string{"prog", "-trace", "test.ch8"},
			check: func(t *testing.T, opts options.Program) {
				assert.True(t, opts.Trace)
				assert.True(t, opts.Debug)
			},
		},
		{
			name: "legacy shift and mute",
			args: []string{"prog", "-legacy-shift", "-mute", "test.ch8"},
			check: func(t *testing.T, opts options.Program) {
				assert.True(t, opts.LegacyShift)
				assert.True(t, opts.Mute)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args)
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	t.Run("missing ROM argument shows usage", func(t *testing.T) {
		_, err := parseFlags([]string{"prog"})
		assert.Error(t, err)

		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
	})

	t.Run("flag after ROM argument", func(t *testing.T) {
		_, err := parseFlags([]string{"prog", "test.ch8", "-debug"})
		assert.Error(t, err)

		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
	})

	t.Run("invalid clock frequency", func(t *testing.T) {
		_, err := parseFlags([]string{"prog", "-hz", "-5", "test.ch8"})
		assert.Error(t, err)
	})

	t.Run("invalid scale", func(t *testing.T) {
		_, err := parseFlags([]string{"prog", "-scale", "0", "test.ch8"})
		assert.Error(t, err)
	})
}
