// Package disasm implements a tracing CHIP-8 disassembler that separates
// reachable code from data.
package disasm

import (
	"context"
	"fmt"
	"hash/crc32"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/program"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	program *program.Program

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]

	// references maps all addresses that are branched to or loaded into I
	// to the type of the reference.
	references   map[uint16]program.OffsetType
	instructions map[uint16]chip8.Instruction
}

// New returns a new disassembler for the program bytes, which are located
// at the program start address.
func New(logger *log.Logger, data []byte) *Disasm {
	if logger == nil {
		logger = log.NewNop()
	}

	app := program.New(data, chip8.ProgramStart)
	app.Checksum = crc32.ChecksumIEEE(data)

	return &Disasm{
		logger:              logger,
		program:             app,
		offsetsToParseAdded: set.New[uint16](),
		references:          map[uint16]program.OffsetType{},
		instructions:        map[uint16]chip8.Instruction{},
	}
}

// Process traces all code paths starting at the program entry point and
// returns the program with every offset classified as code or data.
func (dis *Disasm) Process(ctx context.Context) (*program.Program, error) {
	dis.addReference(chip8.ProgramStart, program.JumpDestination)
	dis.addAddressToParse(chip8.ProgramStart)

	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("tracing code: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]
		dis.processOffset(address)
	}

	dis.processReferences()
	dis.processCode()
	return dis.program, nil
}

// addAddressToParse queues an address to be traced, every address is only
// queued once.
func (dis *Disasm) addAddressToParse(address uint16) {
	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

func (dis *Disasm) addReference(address uint16, typ program.OffsetType) {
	dis.references[address] |= typ
}

// processOffset decodes the instruction at the address and follows its
// control flow.
func (dis *Disasm) processOffset(address uint16) {
	offsetInfo := dis.program.OffsetInfo(address)
	if offsetInfo == nil || offsetInfo.IsType(program.CodeOffset|program.CodeOperand) {
		return
	}
	operand := dis.program.OffsetInfo(address + 1)
	if operand == nil || operand.IsType(program.CodeOffset|program.CodeOperand) {
		dis.logger.Debug("Instruction overlaps other code or the program end",
			log.Hex("address", address))
		return
	}

	ins := chip8.Decode(chip8.NewOpcode(offsetInfo.Data[0], operand.Data[0]))
	if ins.Kind == chip8.Unknown {
		dis.logger.Debug("Unknown opcode reached, treating it as data",
			log.Hex("address", address),
			log.Hex("opcode", uint16(ins.Opcode)))
		return
	}

	offsetInfo.ClearType(program.DataOffset)
	offsetInfo.SetType(program.CodeOffset)
	offsetInfo.Data = []byte{offsetInfo.Data[0], operand.Data[0]}
	operand.ClearType(program.DataOffset)
	operand.SetType(program.CodeOperand)
	dis.instructions[address] = ins

	dis.handleControlFlow(address, ins)
}

// handleControlFlow queues the addresses that execution can continue at
// after the instruction.
func (dis *Disasm) handleControlFlow(address uint16, ins chip8.Instruction) {
	next := address + 2
	target := ins.Opcode.Address()

	switch {
	case ins.Kind == chip8.Ret:
		// execution continues at the caller

	case ins.Kind == chip8.Jp:
		if target >= chip8.ProgramStart {
			dis.addReference(target, program.JumpDestination)
			dis.addAddressToParse(target)
		}

	case ins.Kind == chip8.JpV0:
		// the base of a jump table, entries are only known at runtime
		if target >= chip8.ProgramStart {
			dis.addReference(target, program.JumpDestination)
			dis.addAddressToParse(target)
		}

	case ins.Kind == chip8.Call:
		if target >= chip8.ProgramStart {
			dis.addReference(target, program.CallDestination)
			dis.addAddressToParse(target)
		}
		dis.addAddressToParse(next)

	case ins.IsSkip():
		dis.addAddressToParse(next)
		dis.addAddressToParse(next + 2)

	case ins.Kind == chip8.LdI:
		if target >= chip8.ProgramStart {
			dis.addReference(target, program.DataOffset)
			if offsetInfo := dis.program.OffsetInfo(target); offsetInfo != nil && offsetInfo.Type == program.UnknownOffset {
				offsetInfo.SetType(program.DataOffset)
			}
		}
		dis.addAddressToParse(next)

	default:
		dis.addAddressToParse(next)
	}
}

// processReferences assigns labels to all referenced addresses. References
// that can not be labeled inline are output as aliases.
func (dis *Disasm) processReferences() {
	addresses := make([]uint16, 0, len(dis.references))
	for address := range dis.references {
		addresses = append(addresses, address)
	}
	slices.Sort(addresses)

	for _, address := range addresses {
		typ := dis.references[address]
		name := labelName(address, typ)

		offsetInfo := dis.program.OffsetInfo(address)
		if offsetInfo == nil || offsetInfo.IsType(program.CodeOperand) {
			if address == chip8.ProgramStart {
				continue // empty program
			}
			dis.logger.Debug("Reference can not be labeled inline",
				log.String("label", name),
				log.Hex("address", address))
			dis.program.Aliases[name] = address
			continue
		}

		offsetInfo.Label = name
		offsetInfo.SetType(typ)
		if typ&program.CallDestination != 0 && !offsetInfo.IsType(program.CodeOffset) {
			offsetInfo.LabelComment = "unreachable subroutine"
		}
	}
}

// processCode sets the assembly output of all instructions, addresses that
// have a label are referenced by name.
func (dis *Disasm) processCode() {
	for address, ins := range dis.instructions {
		offsetInfo := dis.program.OffsetInfo(address)
		offsetInfo.Code = ins.String()

		switch ins.Kind {
		case chip8.Jp, chip8.JpV0, chip8.Call, chip8.LdI:
		default:
			continue
		}

		target := ins.Opcode.Address()
		typ, ok := dis.references[target]
		if !ok || target < chip8.ProgramStart {
			continue
		}
		name := labelName(target, typ)
		offsetInfo.Code = strings.Replace(offsetInfo.Code, fmt.Sprintf("$%03X", target), name, 1)
	}
}

func labelName(address uint16, typ program.OffsetType) string {
	switch {
	case address == chip8.ProgramStart:
		return "Start"
	case typ&program.CallDestination != 0:
		return fmt.Sprintf("sub_%03X", address)
	case typ&program.JumpDestination != 0:
		return fmt.Sprintf("jump_%03X", address)
	default:
		return fmt.Sprintf("data_%03X", address)
	}
}
