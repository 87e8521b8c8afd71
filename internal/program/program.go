// Package program represents a disassembled CHIP-8 program.
package program

import (
	"fmt"
	"strings"
)

// Offset defines the content of an offset in a program that can represent data or code.
type Offset struct {
	Address uint16
	Data    []byte // data byte or both opcode bytes of an instruction

	Type OffsetType

	Label        string // name of label or subroutine if identified as a jump destination
	Code         string // asm output of this instruction
	Comment      string
	LabelComment string
}

// HexCodeComment returns the offset bytes as hex string.
func (o *Offset) HexCodeComment() string {
	buf := &strings.Builder{}
	for i, b := range o.Data {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%02X", b)
	}
	return buf.String()
}

// Program defines a CHIP-8 program that contains code or data.
type Program struct {
	Offsets []Offset // one entry per program byte

	CodeBaseAddress uint16
	Checksum        uint32 // CRC32 of the program file

	// Aliases names referenced addresses that are outside of the program.
	Aliases map[string]uint16
}

// New creates a new program for the given program bytes, loaded at the
// base address.
func New(data []byte, baseAddress uint16) *Program {
	p := &Program{
		Offsets:         make([]Offset, len(data)),
		CodeBaseAddress: baseAddress,
		Aliases:         map[string]uint16{},
	}
	for i, b := range data {
		p.Offsets[i] = Offset{
			Address: baseAddress + uint16(i),
			Data:    []byte{b},
		}
	}
	return p
}

// OffsetInfo returns the offset for an address, or nil if the address is
// not part of the program.
func (p *Program) OffsetInfo(address uint16) *Offset {
	if address < p.CodeBaseAddress {
		return nil
	}
	index := int(address - p.CodeBaseAddress)
	if index >= len(p.Offsets) {
		return nil
	}
	return &p.Offsets[index]
}
