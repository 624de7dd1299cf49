package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		char rune
		key  int
	}{
		{'1', 0x1}, {'4', 0xC},
		{'q', 0x4}, {'R', 0xD},
		{'a', 0x7}, {'F', 0xE},
		{'x', 0x0}, {'V', 0xF},
	}

	for _, tt := range tests {
		key, ok := Lookup(tt.char)
		assert.True(t, ok)
		assert.Equal(t, tt.key, key)
	}
}

func TestLookup_Unbound(t *testing.T) {
	for _, r := range []rune{'0', '5', 'p', ' ', '\n', 0x1B} {
		_, ok := Lookup(r)
		assert.False(t, ok)
	}
}

func TestBindings_CoverAllKeys(t *testing.T) {
	b := Bindings()
	assert.Len(t, b, 16)

	var seen [16]bool
	for _, binding := range b {
		assert.False(t, seen[binding.Key])
		seen[binding.Key] = true
	}
}

func TestBindings_ReturnsCopy(t *testing.T) {
	b := Bindings()
	b[0] = Binding{Char: 'p', Key: 0x0}

	key, ok := Lookup('1')
	assert.True(t, ok)
	assert.Equal(t, 0x1, key)
	assert.Equal(t, '1', Bindings()[0].Char)

	_, ok = Lookup('p')
	assert.False(t, ok)
}
