//go:build !(linux || darwin)

package terminal

import "errors"

// Open is not supported on this platform.
func Open(keyHold int) (*Terminal, error) {
	return nil, errors.New("terminal front end is not supported on this platform")
}
