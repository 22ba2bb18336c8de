// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"os"

	"github.com/stmio/chip8/internal/chip8"
)

// Load reads a CHIP-8 ROM image from disk. The image is a raw big-endian
// opcode stream without a header. The size bound of the machine's
// program space is enforced here, before any cycle runs.
func Load(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading file info of %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a ROM file", path)
	}

	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	if len(rom) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	if len(rom) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("loading %s: %w", path, chip8.LoadError{Size: len(rom)})
	}

	return rom, nil
}
