// Package opcode decodes CHIP-8 instruction words into their operand fields
// and maps them to the instruction definitions of retrogolib.
package opcode

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Size is the size of CHIP-8 instructions in bytes.
const Size = 2

// Fields contains the operand fields of a decoded 16-bit instruction word.
//
// Layout of the word, most significant nibble first:
//
//	G X Y N
//	  +-NN-+
//	+--NNN-+
type Fields struct {
	Word  uint16
	Group uint8  // top nibble, selects the instruction group
	NNN   uint16 // 12-bit address
	NN    uint8  // 8-bit immediate
	N     uint8  // lowest nibble
	X     uint8  // register index from bits 8-11
	Y     uint8  // register index from bits 4-7
}

// Decode splits an instruction word into its operand fields.
func Decode(word uint16) Fields {
	return Fields{
		Word:  word,
		Group: uint8(word >> 12),
		NNN:   word & 0x0FFF,
		NN:    uint8(word & 0x00FF),
		N:     uint8(word & 0x000F),
		X:     uint8((word & 0x0F00) >> 8),
		Y:     uint8((word & 0x00F0) >> 4),
	}
}

// Opcode wraps a matched entry of the retrogolib CHIP-8 opcode table.
type Opcode struct {
	op chip8.Opcode
}

// Lookup returns the opcode table entry matching the instruction word.
func Lookup(word uint16) (Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return Opcode{op: op}, true
		}
	}
	return Opcode{}, false
}

// Name returns the mnemonic of the instruction word or "unknown" if the
// word does not match any table entry.
func Name(word uint16) string {
	op, ok := Lookup(word)
	if !ok {
		return "unknown"
	}
	return op.Name()
}

// Name returns the instruction name.
func (o Opcode) Name() string {
	if o.op.Instruction == nil {
		return ""
	}
	return o.op.Instruction.Name
}

// IsCall returns true if the instruction is a call instruction.
func (o Opcode) IsCall() bool {
	return o.Name() == chip8.CallName
}

// IsJump returns true if the instruction is a jump instruction.
func (o Opcode) IsJump() bool {
	return o.Name() == chip8.JpName
}

// IsReturn returns true if the instruction is a return instruction.
func (o Opcode) IsReturn() bool {
	return o.Name() == chip8.RetName
}

// IsSkip returns true if the instruction is a conditional skip instruction.
func (o Opcode) IsSkip() bool {
	if o.op.Instruction == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(o.op.Instruction.Name)
}

// Flow describes how the instruction word changes the program flow: "call",
// "jump", "return", "skip" or an empty string for sequential instructions.
func Flow(word uint16) string {
	op, ok := Lookup(word)
	if !ok {
		return ""
	}
	switch {
	case op.IsCall():
		return "call"
	case op.IsJump():
		return "jump"
	case op.IsReturn():
		return "return"
	case op.IsSkip():
		return "skip"
	default:
		return ""
	}
}
