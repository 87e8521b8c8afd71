package chip8

import (
	"testing"

	arch "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		op       Opcode
		expected Kind
	}{
		{0x00E0, Cls},
		{0x00EE, Ret},
		{0x0123, Unknown},
		{0x1200, Jp},
		{0x2300, Call},
		{0x3512, SeByte},
		{0x4512, SneByte},
		{0x5120, SeReg},
		{0x5121, Unknown},
		{0x6A05, LdByte},
		{0x7A05, AddByte},
		{0x8120, LdReg},
		{0x8121, Or},
		{0x8122, And},
		{0x8123, Xor},
		{0x8124, AddReg},
		{0x8125, Sub},
		{0x8126, Shr},
		{0x8127, Subn},
		{0x812E, Shl},
		{0x8128, Unknown},
		{0x9120, SneReg},
		{0x9121, Unknown},
		{0xA300, LdI},
		{0xB300, JpV0},
		{0xC1FF, Rnd},
		{0xD125, Drw},
		{0xE19E, Skp},
		{0xE1A1, Sknp},
		{0xE1A2, Unknown},
		{0xF107, LdVxDT},
		{0xF10A, LdVxK},
		{0xF115, LdDTVx},
		{0xF118, LdSTVx},
		{0xF11E, AddIVx},
		{0xF129, LdFVx},
		{0xF133, LdBVx},
		{0xF155, LdMemVx},
		{0xF165, LdVxMem},
		{0xF1FF, Unknown},
	}

	for _, tt := range tests {
		ins := Decode(tt.op)
		assert.Equal(t, tt.expected, ins.Kind)
		assert.Equal(t, tt.op, ins.Opcode)
	}
}

func TestInstruction_String(t *testing.T) {
	tests := []struct {
		op       Opcode
		expected string
	}{
		{0x00E0, "cls"},
		{0x00EE, "ret"},
		{0x12A0, "jp $2A0"},
		{0x2300, "call $300"},
		{0x3312, "se V3, $12"},
		{0x4AFF, "sne VA, $FF"},
		{0x5120, "se V1, V2"},
		{0x6312, "ld V3, $12"},
		{0x7E01, "add VE, $01"},
		{0x8AB0, "ld VA, VB"},
		{0x8AB1, "or VA, VB"},
		{0x8AB2, "and VA, VB"},
		{0x8AB3, "xor VA, VB"},
		{0x8AB4, "add VA, VB"},
		{0x8AB5, "sub VA, VB"},
		{0x8A06, "shr VA"},
		{0x8AB7, "subn VA, VB"},
		{0x8A0E, "shl VA"},
		{0x9120, "sne V1, V2"},
		{0xA2F0, "ld I, $2F0"},
		{0xB200, "jp V0, $200"},
		{0xC40F, "rnd V4, $0F"},
		{0xD015, "drw V0, V1, $5"},
		{0xE59E, "skp V5"},
		{0xE5A1, "sknp V5"},
		{0xF207, "ld V2, DT"},
		{0xF20A, "ld V2, K"},
		{0xF215, "ld DT, V2"},
		{0xF218, "ld ST, V2"},
		{0xF21E, "add I, V2"},
		{0xF229, "ld F, V2"},
		{0xF233, "ld B, V2"},
		{0xF455, "ld [I], V4"},
		{0xF465, "ld V4, [I]"},
		{0x0123, "dw $0123"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.op).String())
		})
	}
}

func TestInstruction_Name(t *testing.T) {
	assert.Equal(t, "drw", Decode(0xD125).Name())
	assert.Equal(t, "", Decode(0x0000).Name())
}

func TestDecode_InstructionSet(t *testing.T) {
	for nibble, opcodes := range arch.Opcodes {
		for _, opcode := range opcodes {
			ins := Decode(Opcode(opcode.Info.Value))
			assert.Equal(t, nibble, int(ins.Opcode.Nibble(0)))
			assert.NotEqual(t, Unknown, ins.Kind, "opcode %04X", opcode.Info.Value)
			assert.Equal(t, opcode.Instruction.Name, ins.Name())
		}
	}
}

func TestInstruction_IsSkip(t *testing.T) {
	tests := []struct {
		name     string
		op       Opcode
		expected bool
	}{
		{"SE byte", 0x3000, true},
		{"SNE byte", 0x4000, true},
		{"SE reg", 0x5000, true},
		{"SNE reg", 0x9000, true},
		{"SKP", 0xE09E, true},
		{"SKNP", 0xE0A1, true},
		{"JP", 0x1000, false},
		{"LD", 0x6000, false},
		{"unknown", 0x0000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.op).IsSkip())
		})
	}
}

func TestInstruction_IsJump(t *testing.T) {
	tests := []struct {
		name     string
		op       Opcode
		expected bool
	}{
		{"JP", 0x1000, true},
		{"JP V0", 0xB000, true},
		{"CALL", 0x2000, true},
		{"RET", 0x00EE, true},
		{"SE", 0x3000, false},
		{"CLS", 0x00E0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.op).IsJump())
		})
	}
}
