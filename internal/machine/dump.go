package machine

import (
	"fmt"
	"strings"
)

// String returns a multi line dump of the machine state: the program counter
// with the instruction bytes it points to, the index register, all registers
// and the stack.
func (m *Machine) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "pc = 0x%04X   memory[0x%04X] = 0x%02X memory[0x%04X] = 0x%02X\n",
		m.pc, m.pc&addressMask, m.Read(m.pc), (m.pc+1)&addressMask, m.Read(m.pc+1))
	fmt.Fprintf(&sb, "I  = 0x%04X\n", m.i)

	sb.WriteString("     ")
	for x := RegisterCount - 1; x >= 0; x-- {
		fmt.Fprintf(&sb, "%3X |", x)
	}
	sb.WriteString("\nV    ")
	for x := RegisterCount - 1; x >= 0; x-- {
		fmt.Fprintf(&sb, "0x%02X|", m.v[x])
	}

	fmt.Fprintf(&sb, "\nsp = %d     Stack", m.sp)
	for slot := StackSize - 1; slot >= 0; slot-- {
		fmt.Fprintf(&sb, "\n%12s-- ------\n%12s%2d|0x%04X", "", "", slot, m.stack[slot])
	}
	sb.WriteByte('\n')

	return sb.String()
}
