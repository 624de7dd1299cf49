// Package machine implements the CHIP-8 virtual machine: memory, registers,
// timers, stack, frame buffer and key state, and the fetch-decode-execute
// cycle that mutates them one instruction at a time.
//
// The machine has no notion of time. A driver calls Step at its own cadence,
// feeds key state with SetKey and repaints the frame buffer whenever
// RedrawPending reports true after a cycle.
//
// A Machine is not safe for concurrent use.
package machine

import (
	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout and machine dimensions.
//
//	0x000-0x04F: font table
//	0x050-0x1FF: reserved for the interpreter
//	0x200-0xFFF: program and data area
const (
	// MemorySize is the number of addressable bytes.
	MemorySize = 4096
	// ProgramStart is the address where programs are loaded and start executing.
	ProgramStart = 0x200
	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16
	// StackSize is the number of return addresses the stack can hold.
	StackSize = 16
	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16

	addressMask  = 0x0FFF
	flagRegister = 0xF
	stackEmpty   = -1
)

// Machine is the CHIP-8 processor with its memory and peripheral state.
type Machine struct {
	memory [MemorySize]byte
	v      [RegisterCount]byte
	i      uint16
	pc     uint16

	stack [StackSize]uint16
	sp    int

	delayTimer byte
	soundTimer byte

	frameBuffer FrameBuffer
	keys        [KeyCount]bool
	redraw      bool

	random RandomSource
	logger *log.Logger
	trace  bool
}

// Option configures a machine.
type Option func(*Machine)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithTrace enables a debug log entry for every executed instruction.
// It has no effect without a logger.
func WithTrace() Option {
	return func(m *Machine) {
		m.trace = true
	}
}

// WithRandom sets the source of the random instruction.
func WithRandom(random RandomSource) Option {
	return func(m *Machine) {
		m.random = random
	}
}

// New returns a new machine in its reset state.
func New(opts ...Option) *Machine {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}
	if m.random == nil {
		m.random = NewRandom(0)
	}
	m.trace = m.trace && m.logger != nil
	m.Reset()
	return m
}

// Reset zeroes the memory, registers, stack, timers, frame buffer and key
// state and installs the font table.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[FontAddress:], fontSet[:])

	m.v = [RegisterCount]byte{}
	m.i = 0
	m.pc = ProgramStart

	m.stack = [StackSize]uint16{}
	m.sp = stackEmpty

	m.delayTimer = 0
	m.soundTimer = 0

	m.frameBuffer.Clear()
	m.keys = [KeyCount]bool{}
	m.redraw = false
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// SetPC sets the program counter.
func (m *Machine) SetPC(pc uint16) {
	m.pc = pc
}

// I returns the index register.
func (m *Machine) I() uint16 {
	return m.i
}

// SetI sets the index register.
func (m *Machine) SetI(i uint16) {
	m.i = i
}

// V returns the value of register x. The index is taken modulo 16.
func (m *Machine) V(x int) byte {
	return m.v[x&0xF]
}

// SetV sets register x. The index is taken modulo 16.
func (m *Machine) SetV(x int, value byte) {
	m.v[x&0xF] = value
}

// SP returns the stack pointer, -1 when the stack is empty.
func (m *Machine) SP() int {
	return m.sp
}

// StackEntry returns the return address stored in the given stack slot.
func (m *Machine) StackEntry(slot int) uint16 {
	return m.stack[slot&(StackSize-1)]
}

// DelayTimer returns the current value of the delay timer.
func (m *Machine) DelayTimer() byte {
	return m.delayTimer
}

// SetDelayTimer sets the delay timer.
func (m *Machine) SetDelayTimer(value byte) {
	m.delayTimer = value
}

// SoundTimer returns the current value of the sound timer. A tone should be
// played while it is not zero.
func (m *Machine) SoundTimer() byte {
	return m.soundTimer
}

// SetSoundTimer sets the sound timer.
func (m *Machine) SetSoundTimer(value byte) {
	m.soundTimer = value
}

// FrameBuffer returns the frame buffer of the machine.
func (m *Machine) FrameBuffer() *FrameBuffer {
	return &m.frameBuffer
}

// RedrawPending returns whether the last cycle drew a sprite.
func (m *Machine) RedrawPending() bool {
	return m.redraw
}

// Key returns whether the given key of the keypad is pressed.
// The key index is taken modulo 16.
func (m *Machine) Key(key int) bool {
	return m.keys[key&(KeyCount-1)]
}

// SetKey marks the given key of the keypad as pressed or released.
// The key index is taken modulo 16.
func (m *Machine) SetKey(key int, pressed bool) {
	m.keys[key&(KeyCount-1)] = pressed
}
