package machine

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestStep_ClearScreenProgram(t *testing.T) {
	m := newTestMachine(t)
	assert.NoError(t, m.Load([]byte{0x00, 0xE0}))
	for row := range Height {
		for col := range Width {
			if (row+col)%3 == 0 {
				m.frameBuffer.toggle(row, col)
			}
		}
	}

	assert.NoError(t, m.Step())

	assert.Equal(t, uint16(0x202), m.PC())
	for row := range Height {
		for col := range Width {
			assert.Equal(t, byte(0), m.FrameBuffer().Pixel(row, col))
		}
	}
}

func TestStep_CallProgram(t *testing.T) {
	m := newTestMachine(t)
	assert.NoError(t, m.Load([]byte{0x22, 0x04}))

	assert.NoError(t, m.Step())

	assert.Equal(t, 0, m.SP())
	assert.Equal(t, uint16(0x202), m.StackEntry(0))
	assert.Equal(t, uint16(0x204), m.PC())
}

func TestStep_CallAndReturn(t *testing.T) {
	m := newTestMachine(t,
		0x2206, // 0x200: call 0x206
		0x6001, // 0x202: V0 = 1
		0x1204, // 0x204: jump to self
		0x6102, // 0x206: V1 = 2
		0x00EE, // 0x208: return
	)

	for range 4 {
		assert.NoError(t, m.Step())
	}

	assert.Equal(t, byte(1), m.V(0))
	assert.Equal(t, byte(2), m.V(1))
	assert.Equal(t, -1, m.SP())
	assert.Equal(t, uint16(0x204), m.PC())
}

func TestStep_UnsupportedOpcode(t *testing.T) {
	tests := []uint16{
		0x0000, 0x00E1, 0x0123, 0x00FF, 0x8008, 0x800F, 0x80FD,
		0xE000, 0xE09F, 0xF000, 0xF0FF, 0xF066,
	}

	for _, word := range tests {
		m := newTestMachine(t, word)
		err := m.Step()
		assert.True(t, errors.Is(err, ErrUnsupportedOpcode))
		assert.Equal(t, uint16(0x202), m.PC())
	}
}

func TestStep_ProgramCounterOutOfRange(t *testing.T) {
	m := newTestMachine(t)
	m.SetPC(MemorySize)
	m.SetDelayTimer(5)

	err := m.Step()
	assert.True(t, errors.Is(err, ErrProgramCounterOutOfRange))
	assert.Equal(t, byte(5), m.DelayTimer())
	assert.Equal(t, uint16(MemorySize), m.PC())
}

func TestStep_RunsOffEndOfMemory(t *testing.T) {
	m := newTestMachine(t)
	assert.NoError(t, m.WriteOpcode(0x6001, 0xFFE))
	m.SetPC(0xFFE)

	assert.NoError(t, m.Step())
	assert.Equal(t, uint16(0x1000), m.PC())

	err := m.Step()
	assert.True(t, errors.Is(err, ErrProgramCounterOutOfRange))
}

func TestStep_CorruptedStackPointer(t *testing.T) {
	for _, sp := range []int{-2, StackSize, StackSize + 5} {
		m := newTestMachine(t, 0x6001)
		m.sp = sp

		err := m.Step()
		assert.True(t, errors.Is(err, ErrStackPointerOutOfRange))
		assert.Equal(t, byte(0), m.V(0))
	}
}

func TestStep_StackOverflow(t *testing.T) {
	m := newTestMachine(t, 0x2200) // call itself

	for i := range StackSize {
		assert.NoError(t, m.Step())
		assert.Equal(t, i, m.SP())
	}

	err := m.Step()
	assert.True(t, errors.Is(err, ErrStackPointerOutOfRange))
	assert.Equal(t, StackSize-1, m.SP())
}

func TestStep_StackUnderflow(t *testing.T) {
	m := newTestMachine(t, 0x00EE)

	err := m.Step()
	assert.True(t, errors.Is(err, ErrStackPointerOutOfRange))
	assert.Equal(t, -1, m.SP())
}

func TestStep_Timers(t *testing.T) {
	m := newTestMachine(t, 0x1200) // jump to self
	m.SetDelayTimer(3)
	m.SetSoundTimer(1)

	assert.NoError(t, m.Step())
	assert.Equal(t, byte(2), m.DelayTimer())
	assert.Equal(t, byte(0), m.SoundTimer())

	assert.NoError(t, m.Step())
	assert.NoError(t, m.Step())
	assert.NoError(t, m.Step())
	assert.Equal(t, byte(0), m.DelayTimer())
	assert.Equal(t, byte(0), m.SoundTimer())
}

func TestStep_TimersDecrementBeforeFailingDispatch(t *testing.T) {
	m := newTestMachine(t, 0xFFFF)
	m.SetDelayTimer(2)
	m.SetSoundTimer(2)

	err := m.Step()
	assert.True(t, errors.Is(err, ErrUnsupportedOpcode))
	assert.Equal(t, byte(1), m.DelayTimer())
	assert.Equal(t, byte(1), m.SoundTimer())
}

func TestStep_SetTimerAfterDecrement(t *testing.T) {
	m := newTestMachine(t, 0xF015, 0xF107)
	m.SetV(0, 10)
	m.SetDelayTimer(4)

	assert.NoError(t, m.Step())
	assert.Equal(t, byte(10), m.DelayTimer())

	assert.NoError(t, m.Step())
	assert.Equal(t, byte(9), m.V(1))
}

func TestStep_RedrawFlag(t *testing.T) {
	m := newTestMachine(t,
		0xD001, // draw 1 row
		0x6000, // V0 = 0
	)

	assert.NoError(t, m.Step())
	assert.True(t, m.RedrawPending())

	assert.NoError(t, m.Step())
	assert.False(t, m.RedrawPending())
}

func TestStep_WaitForKey(t *testing.T) {
	m := newTestMachine(t, 0xF30A)
	m.SetV(3, 0x77)
	m.SetDelayTimer(3)

	for range 2 {
		assert.NoError(t, m.Step())
		assert.Equal(t, uint16(ProgramStart), m.PC())
		assert.Equal(t, byte(0x77), m.V(3))
	}
	assert.Equal(t, byte(1), m.DelayTimer())

	m.SetKey(0xC, true)
	m.SetKey(0x9, true)
	assert.NoError(t, m.Step())
	assert.Equal(t, uint16(0x202), m.PC())
	assert.Equal(t, byte(0x9), m.V(3))
	assert.Equal(t, byte(0), m.DelayTimer())
}

func TestStep_Trace(t *testing.T) {
	m := New(WithLogger(log.NewTestLogger(t)), WithTrace())
	assert.True(t, m.trace)
	assert.NoError(t, m.WriteOpcode(0x6A42, ProgramStart))

	assert.NoError(t, m.Step())
	assert.Equal(t, byte(0x42), m.V(0xA))
}

func TestWithTraceRequiresLogger(t *testing.T) {
	m := New(WithTrace())
	assert.False(t, m.trace)
}
