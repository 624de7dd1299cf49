package machine

import (
	"fmt"
	"strings"
)

// Dimensions of the frame buffer in pixels.
const (
	Width  = 64
	Height = 32
)

// FrameBuffer is the monochrome 64x32 display of the machine. Each pixel is
// either 0 or 1. Coordinates wrap on both axes.
type FrameBuffer struct {
	pixels [Height][Width]byte
}

// Pixel returns the pixel at the given row and column, both wrapped into the
// display dimensions.
func (fb *FrameBuffer) Pixel(row, col int) byte {
	return fb.pixels[wrap(row, Height)][wrap(col, Width)]
}

// Clear sets all pixels to 0.
func (fb *FrameBuffer) Clear() {
	fb.pixels = [Height][Width]byte{}
}

// toggle flips the pixel at the wrapped coordinates and returns whether a
// set pixel got erased.
func (fb *FrameBuffer) toggle(row, col int) bool {
	p := &fb.pixels[wrap(row, Height)][wrap(col, Width)]
	erased := *p == 1
	*p ^= 1
	return erased
}

// String renders the frame buffer as text, one line per row prefixed by the
// row number, set pixels are shown as '*'.
func (fb *FrameBuffer) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 5))
	for row := range Height {
		fmt.Fprintf(&sb, "%2d: ", row)
		for col := range Width {
			if fb.pixels[row][col] != 0 {
				sb.WriteByte('*')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
