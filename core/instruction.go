package core

import "fmt"

// Opcode represents the operation code for an instruction.
type Opcode int

const (
	OpNop Opcode = iota
	OpAcc
	OpJmp
)

var opNames = map[Opcode]string{
	OpNop: "nop",
	OpAcc: "acc",
	OpJmp: "jmp",
}

func (o Opcode) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}

	return fmt.Sprintf("Opcode(%d)", int(o))
}

// Flip swaps jmp and nop. acc is returned unchanged.
func (o Opcode) Flip() Opcode {
	switch o {
	case OpJmp:
		return OpNop
	case OpNop:
		return OpJmp
	default:
		return o
	}
}

// ParseOpcode maps a mnemonic to its opcode. Unknown mnemonics are coerced to
// OpNop and reported with known set to false.
func ParseOpcode(mnemonic string) (op Opcode, known bool) {
	switch mnemonic {
	case "nop":
		return OpNop, true
	case "acc":
		return OpAcc, true
	case "jmp":
		return OpJmp, true
	default:
		return OpNop, false
	}
}

// Instruction represents one line of a boot-code listing.
type Instruction struct {
	Opcode  Opcode // The operation to perform
	Operand int    // Signed argument; ignored by nop
	Line    int    // 1-based source line, zero if built in memory
	Raw     string // Mnemonic as written in the source
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s %+d", i.Opcode, i.Operand)
}

// Flipped returns a copy of the instruction with its opcode flipped.
func (i Instruction) Flipped() Instruction {
	i.Opcode = i.Opcode.Flip()
	return i
}

// Patchable reports whether flipping the instruction changes it.
func (i Instruction) Patchable() bool {
	return i.Opcode != OpAcc
}
