package chip8

import (
	"fmt"

	arch "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Kind identifies a decoded CHIP-8 instruction.
type Kind uint8

// Instruction kinds. Comments show the opcode pattern.
const (
	Unknown Kind = iota
	Cls          // 00E0
	Ret          // 00EE
	Jp           // 1nnn
	Call         // 2nnn
	SeByte       // 3xkk
	SneByte      // 4xkk
	SeReg        // 5xy0
	LdByte       // 6xkk
	AddByte      // 7xkk
	LdReg        // 8xy0
	Or           // 8xy1
	And          // 8xy2
	Xor          // 8xy3
	AddReg       // 8xy4
	Sub          // 8xy5
	Shr          // 8xy6
	Subn         // 8xy7
	Shl          // 8xyE
	SneReg       // 9xy0
	LdI          // Annn
	JpV0         // Bnnn
	Rnd          // Cxkk
	Drw          // Dxyn
	Skp          // Ex9E
	Sknp         // ExA1
	LdVxDT       // Fx07
	LdVxK        // Fx0A
	LdDTVx       // Fx15
	LdSTVx       // Fx18
	AddIVx       // Fx1E
	LdFVx        // Fx29
	LdBVx        // Fx33
	LdMemVx      // Fx55
	LdVxMem      // Fx65
)

// kinds maps the opcode values of the instruction set to the instruction
// kinds that the machine executes.
var kinds = map[uint16]Kind{
	0x00E0: Cls,
	0x00EE: Ret,
	0x1000: Jp,
	0x2000: Call,
	0x3000: SeByte,
	0x4000: SneByte,
	0x5000: SeReg,
	0x6000: LdByte,
	0x7000: AddByte,
	0x8000: LdReg,
	0x8001: Or,
	0x8002: And,
	0x8003: Xor,
	0x8004: AddReg,
	0x8005: Sub,
	0x8006: Shr,
	0x8007: Subn,
	0x800E: Shl,
	0x9000: SneReg,
	0xA000: LdI,
	0xB000: JpV0,
	0xC000: Rnd,
	0xD000: Drw,
	0xE09E: Skp,
	0xE0A1: Sknp,
	0xF007: LdVxDT,
	0xF00A: LdVxK,
	0xF015: LdDTVx,
	0xF018: LdSTVx,
	0xF01E: AddIVx,
	0xF029: LdFVx,
	0xF033: LdBVx,
	0xF055: LdMemVx,
	0xF065: LdVxMem,
}

// Instruction is a decoded opcode.
type Instruction struct {
	Kind   Kind
	Opcode Opcode
	ins    *arch.Instruction
}

// Decode matches the opcode against the instruction set. Opcodes that do
// not match any instruction decode to the Unknown kind.
func Decode(op Opcode) Instruction {
	w := uint16(op)
	for _, opcode := range arch.Opcodes[op.Nibble(0)] {
		if w&opcode.Info.Mask != opcode.Info.Value {
			continue
		}
		kind, ok := kinds[opcode.Info.Value]
		if !ok {
			break
		}
		return Instruction{
			Kind:   kind,
			Opcode: op,
			ins:    opcode.Instruction,
		}
	}
	return Instruction{Kind: Unknown, Opcode: op}
}

// Name returns the instruction mnemonic, or an empty string for unknown
// opcodes.
func (i Instruction) Name() string {
	if i.ins == nil {
		return ""
	}
	return i.ins.Name
}

// IsSkip returns true if the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	return i.ins != nil && arch.SkipInstructions.Contains(i.ins.Name)
}

// IsJump returns true if the instruction unconditionally changes the
// program counter.
func (i Instruction) IsJump() bool {
	switch i.Kind {
	case Jp, JpV0, Call, Ret:
		return true
	default:
		return false
	}
}

// String returns the instruction in assembly notation.
func (i Instruction) String() string {
	if i.Kind == Unknown {
		return fmt.Sprintf("dw $%04X", uint16(i.Opcode))
	}
	if params := i.params(); params != "" {
		return fmt.Sprintf("%s %s", i.Name(), params)
	}
	return i.Name()
}

// params formats the instruction parameters.
func (i Instruction) params() string {
	op := i.Opcode
	x, y := op.XYRegisters()

	switch i.Kind {
	case Jp, Call:
		return fmt.Sprintf("$%03X", op.Address())
	case JpV0:
		return fmt.Sprintf("V0, $%03X", op.Address())
	case LdI:
		return fmt.Sprintf("I, $%03X", op.Address())
	case SeByte, SneByte, LdByte, AddByte, Rnd:
		return fmt.Sprintf("V%X, $%02X", x, op.LowestByte())
	case SeReg, SneReg, LdReg, Or, And, Xor, AddReg, Sub, Subn:
		return fmt.Sprintf("V%X, V%X", x, y)
	case Shr, Shl, Skp, Sknp:
		return fmt.Sprintf("V%X", x)
	case Drw:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, op.Nibble(3))
	case LdVxDT:
		return fmt.Sprintf("V%X, DT", x)
	case LdVxK:
		return fmt.Sprintf("V%X, K", x)
	case LdDTVx:
		return fmt.Sprintf("DT, V%X", x)
	case LdSTVx:
		return fmt.Sprintf("ST, V%X", x)
	case AddIVx:
		return fmt.Sprintf("I, V%X", x)
	case LdFVx:
		return fmt.Sprintf("F, V%X", x)
	case LdBVx:
		return fmt.Sprintf("B, V%X", x)
	case LdMemVx:
		return fmt.Sprintf("[I], V%X", x)
	case LdVxMem:
		return fmt.Sprintf("V%X, [I]", x)
	default:
		return ""
	}
}
