package machine

import (
	"github.com/retroenv/retrochip8/internal/opcode"
)

// 00E0 - CLS
func (m *Machine) clearScreen() {
	m.frameBuffer.Clear()
}

// 00EE - RET
func (m *Machine) ret() error {
	addr, err := m.pop()
	if err != nil {
		return err
	}
	m.pc = addr
	return nil
}

// 1nnn - JP addr
func (m *Machine) jump(f opcode.Fields) {
	m.pc = f.NNN
}

// 2nnn - CALL addr
func (m *Machine) call(f opcode.Fields) error {
	if err := m.push(m.pc); err != nil {
		return err
	}
	m.pc = f.NNN
	return nil
}

// 3xnn - SE Vx, byte
func (m *Machine) skipIfEqualImmediate(f opcode.Fields) {
	if m.v[f.X] == f.NN {
		m.pc += opcode.Size
	}
}

// 4xnn - SNE Vx, byte
func (m *Machine) skipIfNotEqualImmediate(f opcode.Fields) {
	if m.v[f.X] != f.NN {
		m.pc += opcode.Size
	}
}

// 5xy0 - SE Vx, Vy
func (m *Machine) skipIfRegistersEqual(f opcode.Fields) {
	if m.v[f.X] == m.v[f.Y] {
		m.pc += opcode.Size
	}
}

// 6xnn - LD Vx, byte
func (m *Machine) loadImmediate(f opcode.Fields) {
	m.v[f.X] = f.NN
}

// 7xnn - ADD Vx, byte. The flag register is not affected.
func (m *Machine) addImmediate(f opcode.Fields) {
	m.v[f.X] += f.NN
}

// 8xy0 - LD Vx, Vy
func (m *Machine) copyRegister(f opcode.Fields) {
	m.v[f.X] = m.v[f.Y]
}

// 8xy1 - OR Vx, Vy
func (m *Machine) or(f opcode.Fields) {
	m.v[f.X] |= m.v[f.Y]
}

// 8xy2 - AND Vx, Vy
func (m *Machine) and(f opcode.Fields) {
	m.v[f.X] &= m.v[f.Y]
}

// 8xy3 - XOR Vx, Vy
func (m *Machine) xor(f opcode.Fields) {
	m.v[f.X] ^= m.v[f.Y]
}

// 8xy4 - ADD Vx, Vy. VF is set to the carry, the result is stored after the
// flag so that it wins when x is F.
func (m *Machine) addWithCarry(f opcode.Fields) {
	sum := uint16(m.v[f.X]) + uint16(m.v[f.Y])
	m.v[flagRegister] = boolToByte(sum > 0xFF)
	m.v[f.X] = byte(sum)
}

// 8xy5 - SUB Vx, Vy. VF is set to 1 if Vx > Vy before the subtraction.
func (m *Machine) subtract(f opcode.Fields) {
	m.v[flagRegister] = boolToByte(m.v[f.X] > m.v[f.Y])
	m.v[f.X] -= m.v[f.Y]
}

// 8xy6 - SHR Vx. VF receives the shifted out bit 0.
func (m *Machine) shiftRight(f opcode.Fields) {
	m.v[flagRegister] = m.v[f.X] & 0x01
	m.v[f.X] >>= 1
}

// 8xy7 - SUBN Vx, Vy. VF is set to 1 if Vy > Vx before the subtraction.
func (m *Machine) reverseSubtract(f opcode.Fields) {
	m.v[flagRegister] = boolToByte(m.v[f.Y] > m.v[f.X])
	m.v[f.X] = m.v[f.Y] - m.v[f.X]
}

// 8xyE - SHL Vx. VF receives the shifted out bit 7 unshifted, 0x80 or 0.
func (m *Machine) shiftLeft(f opcode.Fields) {
	m.v[flagRegister] = m.v[f.X] & 0x80
	m.v[f.X] <<= 1
}

// 9xy0 - SNE Vx, Vy
func (m *Machine) skipIfRegistersNotEqual(f opcode.Fields) {
	if m.v[f.X] != m.v[f.Y] {
		m.pc += opcode.Size
	}
}

// Annn - LD I, addr
func (m *Machine) loadIndex(f opcode.Fields) {
	m.i = f.NNN
}

// Bnnn - JP V0, addr
func (m *Machine) jumpWithOffset(f opcode.Fields) {
	m.pc = uint16(m.v[0]) + f.NNN
}

// Cxnn - RND Vx, byte
func (m *Machine) randomByte(f opcode.Fields) {
	m.v[f.X] = m.random.Byte() & f.NN
}

// Dxyn - DRW Vx, Vy, nibble. Draws n sprite rows read from memory at I by
// XORing them onto the frame buffer at (Vx, Vy), wrapping on both axes.
// VF is set to 1 if any set pixel got erased.
// VF is cleared before the coordinates are read and Vx and Vy are read for
// every pixel, so a draw at VF moves once a collision sets the flag.
func (m *Machine) drawSprite(f opcode.Fields) {
	m.v[flagRegister] = 0
	for row := range int(f.N) {
		sprite := m.Read(m.i + uint16(row))
		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			x := int(m.v[f.X])
			y := int(m.v[f.Y])
			if m.frameBuffer.toggle(y+row, x+col) {
				m.v[flagRegister] = 1
			}
		}
	}

	m.redraw = true
}

// Ex9E - SKP Vx
func (m *Machine) skipIfKeyDown(f opcode.Fields) {
	if m.keys[m.v[f.X]%KeyCount] {
		m.pc += opcode.Size
	}
}

// ExA1 - SKNP Vx
func (m *Machine) skipIfKeyUp(f opcode.Fields) {
	if !m.keys[m.v[f.X]%KeyCount] {
		m.pc += opcode.Size
	}
}

// Fx07 - LD Vx, DT
func (m *Machine) readDelayTimer(f opcode.Fields) {
	m.v[f.X] = m.delayTimer
}

// Fx0A - LD Vx, K. Stores the lowest pressed key in Vx. Without a pressed key
// the program counter is moved back onto this instruction, which gets
// executed again by the next cycle.
func (m *Machine) waitForKey(f opcode.Fields) {
	for key, pressed := range m.keys {
		if pressed {
			m.v[f.X] = byte(key)
			return
		}
	}
	m.pc -= opcode.Size
}

// Fx15 - LD DT, Vx
func (m *Machine) writeDelayTimer(f opcode.Fields) {
	m.delayTimer = m.v[f.X]
}

// Fx18 - LD ST, Vx
func (m *Machine) writeSoundTimer(f opcode.Fields) {
	m.soundTimer = m.v[f.X]
}

// Fx1E - ADD I, Vx. I wraps at 16 bits and may exceed the 12 bit address
// space, memory accesses mask it.
func (m *Machine) addToIndex(f opcode.Fields) {
	m.i += uint16(m.v[f.X])
}

// Fx29 - LD F, Vx
func (m *Machine) fontAddress(f opcode.Fields) {
	m.i = FontAddress + uint16(m.v[f.X]%16)*glyphSize
}

// Fx33 - LD B, Vx
func (m *Machine) storeBCD(f opcode.Fields) {
	value := m.v[f.X]
	m.Write(value/100, m.i)
	m.Write(value/10%10, m.i+1)
	m.Write(value%10, m.i+2)
}

// Fx55 - LD [I], Vx
func (m *Machine) dumpRegisters(f opcode.Fields) {
	for x := range int(f.X) + 1 {
		m.Write(m.v[x], m.i+uint16(x))
	}
}

// Fx65 - LD Vx, [I]
func (m *Machine) loadRegisters(f opcode.Fields) {
	for x := range int(f.X) + 1 {
		m.v[x] = m.Read(m.i + uint16(x))
	}
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
