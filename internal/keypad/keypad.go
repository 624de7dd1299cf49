// Package keypad maps keyboard characters to the 16 keys of the CHIP-8
// hexadecimal keypad.
//
// The left hand block of a QWERTY keyboard is used:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
package keypad

import (
	"slices"
	"unicode"
)

// Binding assigns a keyboard character to a keypad key.
type Binding struct {
	Char rune
	Key  int
}

var bindings = [...]Binding{
	{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xC},
	{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xD},
	{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xE},
	{'z', 0xA}, {'x', 0x0}, {'c', 0xB}, {'v', 0xF},
}

// Bindings returns all bindings in keyboard layout order, row by row.
// Characters are lower case.
func Bindings() []Binding {
	return slices.Clone(bindings[:])
}

// Lookup returns the keypad key bound to the given character. Letters are
// matched case-insensitively.
func Lookup(r rune) (int, bool) {
	r = unicode.ToLower(r)
	for _, b := range bindings {
		if b.Char == r {
			return b.Key, true
		}
	}
	return 0, false
}
