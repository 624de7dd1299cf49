package machine

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Load resets the machine and copies the program into memory starting at
// ProgramStart. Programs that do not fit into memory are rejected and leave
// the machine untouched.
func (m *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: program size %d exceeds %d bytes available at 0x%03X",
			ErrAddressOutOfRange, len(program), MaxProgramSize, ProgramStart)
	}

	m.Reset()
	copy(m.memory[ProgramStart:], program)

	if m.logger != nil {
		m.logger.Debug("Program loaded",
			log.Hex("address", uint16(ProgramStart)),
			log.Int("size", len(program)))
	}
	return nil
}

// ClearProgramMemory zeroes the program area, the font table and the machine
// state are left unchanged.
func (m *Machine) ClearProgramMemory() {
	clear(m.memory[ProgramStart:])
}

// Read returns the byte at the given address masked to 12 bits.
func (m *Machine) Read(addr uint16) byte {
	return m.memory[addr&addressMask]
}

// Write stores a byte at the given address masked to 12 bits.
func (m *Machine) Write(value byte, addr uint16) {
	m.memory[addr&addressMask] = value
}

// ReadOpcode returns the big endian instruction word stored at the given
// address masked to 12 bits. Instructions are only read from even addresses.
func (m *Machine) ReadOpcode(addr uint16) (uint16, error) {
	addr &= addressMask
	if addr%2 != 0 {
		return 0, fmt.Errorf("%w: address 0x%03X", ErrAddressValueIsNotEven, addr)
	}
	return m.fetch(addr), nil
}

// WriteOpcode stores the instruction word big endian at the given address
// masked to 12 bits. The address has to be even and outside of the
// interpreter area below ProgramStart.
func (m *Machine) WriteOpcode(word, addr uint16) error {
	addr &= addressMask
	if addr%2 != 0 {
		return fmt.Errorf("%w: address 0x%03X", ErrAddressValueIsNotEven, addr)
	}
	if addr < ProgramStart {
		return fmt.Errorf("%w: address 0x%03X is below 0x%03X", ErrAddressOutOfRange, addr, ProgramStart)
	}

	m.memory[addr] = byte(word >> 8)
	m.memory[addr+1] = byte(word)
	return nil
}

// fetch combines the bytes at addr and addr+1 into an instruction word.
// The address of the low byte wraps to stay inside memory.
func (m *Machine) fetch(addr uint16) uint16 {
	return uint16(m.memory[addr&addressMask])<<8 | uint16(m.memory[(addr+1)&addressMask])
}
