package machine

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/log"
)

// Step executes a single cycle:
//
//  1. validate the program counter and stack pointer
//  2. clear the redraw flag
//  3. decrement the delay and sound timers if they are not zero
//  4. fetch the instruction word at the program counter
//  5. advance the program counter by 2
//  6. decode and execute the instruction
//
// Any returned error aborts the cycle. Effects of the steps that already
// completed, like the timer decrement, are kept.
func (m *Machine) Step() error {
	if int(m.pc) >= MemorySize {
		return fmt.Errorf("%w: pc 0x%04X", ErrProgramCounterOutOfRange, m.pc)
	}
	if m.sp < stackEmpty || m.sp >= StackSize {
		return fmt.Errorf("%w: sp %d", ErrStackPointerOutOfRange, m.sp)
	}

	m.redraw = false

	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}

	pc := m.pc
	word := m.fetch(pc)
	m.pc += opcode.Size

	if m.trace {
		m.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("instruction", opcode.Name(word)),
			log.String("flow", opcode.Flow(word)))
	}

	if err := m.execute(opcode.Decode(word)); err != nil {
		return fmt.Errorf("executing opcode 0x%04X at 0x%03X: %w", word, pc, err)
	}
	return nil
}

// execute dispatches the decoded instruction to its handler.
//
//nolint:cyclop,funlen // the dispatch mirrors the instruction set
func (m *Machine) execute(f opcode.Fields) error {
	switch f.Group {
	case 0x0:
		switch f.NN {
		case 0xE0:
			m.clearScreen()
			return nil
		case 0xEE:
			return m.ret()
		}

	case 0x1:
		m.jump(f)
		return nil
	case 0x2:
		return m.call(f)
	case 0x3:
		m.skipIfEqualImmediate(f)
		return nil
	case 0x4:
		m.skipIfNotEqualImmediate(f)
		return nil
	case 0x5:
		m.skipIfRegistersEqual(f)
		return nil
	case 0x6:
		m.loadImmediate(f)
		return nil
	case 0x7:
		m.addImmediate(f)
		return nil

	case 0x8:
		switch f.N {
		case 0x0:
			m.copyRegister(f)
			return nil
		case 0x1:
			m.or(f)
			return nil
		case 0x2:
			m.and(f)
			return nil
		case 0x3:
			m.xor(f)
			return nil
		case 0x4:
			m.addWithCarry(f)
			return nil
		case 0x5:
			m.subtract(f)
			return nil
		case 0x6:
			m.shiftRight(f)
			return nil
		case 0x7:
			m.reverseSubtract(f)
			return nil
		case 0xE:
			m.shiftLeft(f)
			return nil
		}

	case 0x9:
		m.skipIfRegistersNotEqual(f)
		return nil
	case 0xA:
		m.loadIndex(f)
		return nil
	case 0xB:
		m.jumpWithOffset(f)
		return nil
	case 0xC:
		m.randomByte(f)
		return nil
	case 0xD:
		m.drawSprite(f)
		return nil

	case 0xE:
		switch f.NN {
		case 0x9E:
			m.skipIfKeyDown(f)
			return nil
		case 0xA1:
			m.skipIfKeyUp(f)
			return nil
		}

	case 0xF:
		switch f.NN {
		case 0x07:
			m.readDelayTimer(f)
			return nil
		case 0x0A:
			m.waitForKey(f)
			return nil
		case 0x15:
			m.writeDelayTimer(f)
			return nil
		case 0x18:
			m.writeSoundTimer(f)
			return nil
		case 0x1E:
			m.addToIndex(f)
			return nil
		case 0x29:
			m.fontAddress(f)
			return nil
		case 0x33:
			m.storeBCD(f)
			return nil
		case 0x55:
			m.dumpRegisters(f)
			return nil
		case 0x65:
			m.loadRegisters(f)
			return nil
		}
	}

	return ErrUnsupportedOpcode
}

// push stores a return address on the stack.
func (m *Machine) push(addr uint16) error {
	if m.sp+1 >= StackSize {
		return fmt.Errorf("%w: stack overflow at sp %d", ErrStackPointerOutOfRange, m.sp)
	}
	m.sp++
	m.stack[m.sp] = addr
	return nil
}

// pop removes and returns the most recent return address from the stack.
func (m *Machine) pop() (uint16, error) {
	if m.sp <= stackEmpty {
		return 0, fmt.Errorf("%w: stack underflow", ErrStackPointerOutOfRange)
	}
	addr := m.stack[m.sp]
	m.sp--
	return addr, nil
}
