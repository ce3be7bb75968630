package vm

import (
	"fmt"
	"strconv"
	"strings"

	"gradsym/word"
)

// Instruction is the tagged (opcode, word) record the codegen pass
// emits. Only Push uses Word.
type Instruction struct {
	Op   Opcode
	Word word.Word
}

// Program is an ordered sequence of instructions.
type Program []Instruction

// Disassemble renders the program one instruction per line, for
// debug output; not part of the symbolic execution contract itself.
func (p Program) Disassemble() string {
	var sb strings.Builder
	width := len(strconv.Itoa(len(p)))
	for i, instr := range p {
		fmt.Fprintf(&sb, "%*d: %s", width, i, instr.Op)
		if instr.Op == Push {
			fmt.Fprintf(&sb, " %g", instr.Word.Float())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
