package chip8

// Opcode is a fetched 16-bit CHIP-8 instruction word.
type Opcode uint16

// NewOpcode builds an opcode from two consecutive memory bytes,
// the high byte comes first.
func NewOpcode(high, low byte) Opcode {
	return Opcode(uint16(high)<<8 | uint16(low))
}

// Nibble returns the n-th 4-bit group of the opcode, counting from the most
// significant one: nibble 0 is bits 15-12 and nibble 3 is bits 3-0.
func (o Opcode) Nibble(n int) uint8 {
	return uint8(o>>(12-uint(n)*4)) & 0xF
}

// LowestByte returns bits 7-0, the immediate byte operand kk.
func (o Opcode) LowestByte() uint8 {
	return uint8(o & 0x00FF)
}

// Address returns bits 11-0, the 12-bit address operand nnn.
func (o Opcode) Address() uint16 {
	return uint16(o & 0x0FFF)
}

// XYRegisters returns the two register index operands x and y.
func (o Opcode) XYRegisters() (uint8, uint8) {
	return o.Nibble(1), o.Nibble(2)
}
