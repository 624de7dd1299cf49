// Package terminal implements a text terminal front end. The frame buffer is
// drawn with ANSI escape sequences, keys are read from the terminal in cbreak
// mode and the buzzer rings the terminal bell.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/runner"
)

const (
	escape      = 0x1B
	bell        = "\a"
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"

	inputBufferSize = 64
)

// Terminal is a runner.Frontend that renders to a text terminal.
//
// Terminals only report key presses, a pressed key is therefore held down
// for a fixed number of cycles. Repeated key presses of the terminal extend
// the hold.
type Terminal struct {
	output  io.Writer
	input   chan byte
	errs    chan error
	keyHold int
	held    [machine.KeyCount]int

	sounding bool
	restore  func() error
}

// New returns a terminal front end writing to output. Input has to be fed
// by Listen.
func New(output io.Writer, keyHold int) *Terminal {
	return &Terminal{
		output:  output,
		input:   make(chan byte, inputBufferSize),
		errs:    make(chan error, 1),
		keyHold: max(keyHold, 1),
	}
}

// Listen reads input bytes until the reader returns an error. io.EOF ends
// the input without an error. Bytes that arrive while the input buffer is
// full are dropped.
func (t *Terminal) Listen(r io.Reader) {
	var buf [16]byte
	for {
		n, err := r.Read(buf[:])
		for _, b := range buf[:n] {
			select {
			case t.input <- b:
			default:
			}
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
			select {
			case t.errs <- err:
			default:
			}
		}
		return
	}
}

// Poll implements runner.Frontend. It consumes the pending input and updates
// the key state of the machine. The escape key requests to quit.
func (t *Terminal) Poll(m *machine.Machine) error {
drain:
	for {
		select {
		case b := <-t.input:
			if b == escape {
				return runner.ErrQuit
			}
			if key, ok := keypad.Lookup(rune(b)); ok {
				t.held[key] = t.keyHold
			}

		case err := <-t.errs:
			return fmt.Errorf("reading terminal input: %w", err)

		default:
			break drain
		}
	}

	for key, cycles := range t.held {
		m.SetKey(key, cycles > 0)
		if cycles > 0 {
			t.held[key]--
		}
	}
	return nil
}

// Present implements runner.Frontend.
func (t *Terminal) Present(fb *machine.FrameBuffer) error {
	if _, err := io.WriteString(t.output, cursorHome+fb.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Sound implements runner.Frontend. The bell rings when the buzzer starts.
func (t *Terminal) Sound(active bool) {
	if active && !t.sounding {
		_, _ = io.WriteString(t.output, bell)
	}
	t.sounding = active
}

// Close restores the terminal settings if the terminal was opened by Open.
func (t *Terminal) Close() error {
	_, _ = io.WriteString(t.output, showCursor)
	if t.restore == nil {
		return nil
	}
	return t.restore()
}
