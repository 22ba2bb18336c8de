package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/stmio/chip8/internal/chip8"
)

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		data := []byte{0x12, 0x00, 0x60, 0x42}
		tmpFile := createTempFile(t, data)

		rom, err := Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, data, rom)
	})

	t.Run("load maximum sized ROM", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxProgramSize))

		rom, err := Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, chip8.MaxProgramSize, len(rom))
	})

	t.Run("error on oversized ROM", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxProgramSize+1))

		_, err := Load(tmpFile)
		assert.Error(t, err)

		var loadErr chip8.LoadError
		assert.True(t, errors.As(err, &loadErr))
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		_, err := Load(tmpFile)
		assert.Error(t, err)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := Load("/nonexistent/rom.ch8")
		assert.Error(t, err)
	})

	t.Run("error on directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.Error(t, err)
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
