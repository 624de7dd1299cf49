//go:build linux || darwin

package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Open switches the controlling terminal into cbreak mode and returns a
// terminal front end reading from and drawing to it.
func Open(keyHold int) (*Terminal, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}

	var canonical unix.Termios
	if err := termios.Tcgetattr(tty.Fd(), &canonical); err != nil {
		_ = tty.Close()
		return nil, fmt.Errorf("reading terminal attributes: %w", err)
	}

	cbreak := canonical
	termios.Cfmakecbreak(&cbreak)
	if err := termios.Tcsetattr(tty.Fd(), termios.TCSANOW, &cbreak); err != nil {
		_ = tty.Close()
		return nil, fmt.Errorf("setting cbreak mode: %w", err)
	}

	t := New(tty, keyHold)
	t.restore = func() error {
		if err := termios.Tcsetattr(tty.Fd(), termios.TCSANOW, &canonical); err != nil {
			_ = tty.Close()
			return fmt.Errorf("restoring terminal attributes: %w", err)
		}
		if err := tty.Close(); err != nil {
			return fmt.Errorf("closing terminal: %w", err)
		}
		return nil
	}

	_, _ = io.WriteString(tty, clearScreen+hideCursor)
	go t.Listen(tty)
	return t, nil
}
