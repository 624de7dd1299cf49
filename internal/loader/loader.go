// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file named by the input option.
// CHIP-8 ROMs are raw memory images without a header.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	program, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", opts.Input, err)
	}
	return program, nil
}

// LoadFromReader reads a ROM image from the reader. It fails if the image
// does not fit into the program area of the machine memory.
func (l *Loader) LoadFromReader(r io.Reader) ([]byte, error) {
	program, err := io.ReadAll(io.LimitReader(r, machine.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	if len(program) > machine.MaxProgramSize {
		return nil, fmt.Errorf("program exceeds %d bytes: %w", machine.MaxProgramSize, machine.ErrAddressOutOfRange)
	}
	return program, nil
}
