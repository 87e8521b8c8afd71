package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMachine_ExecutionErrors(t *testing.T) {
	tests := []struct {
		name    string
		op      uint16
		setup   func(m *Machine)
		err     error
		address uint16
	}{
		{
			name: "unsupported opcode",
			op:   0x0123,
			err:  ErrUnsupportedOpcode,
		},
		{
			name: "unsupported arithmetic variant",
			op:   0x8128,
			err:  ErrUnsupportedOpcode,
		},
		{
			name: "return with empty stack",
			op:   0x00EE,
			err:  ErrStackUnderflow,
		},
		{
			name: "bcd beyond memory",
			op:   0xF133,
			setup: func(m *Machine) {
				m.i = 0xFFE
			},
			err:     ErrMemoryOutOfBounds,
			address: 0x1000,
		},
		{
			name: "register store beyond memory",
			op:   0xF255,
			setup: func(m *Machine) {
				m.i = 0xFFE
			},
			err:     ErrMemoryOutOfBounds,
			address: 0x1000,
		},
		{
			name: "register load beyond memory",
			op:   0xF565,
			setup: func(m *Machine) {
				m.i = 0xFFC
			},
			err:     ErrMemoryOutOfBounds,
			address: 0x1001,
		},
		{
			name: "sprite beyond memory",
			op:   0xD012,
			setup: func(m *Machine) {
				m.i = 0xFFF
				m.v[FlagRegister] = 7
			},
			err:     ErrMemoryOutOfBounds,
			address: 0x1000,
		},
		{
			name: "indexed jump beyond memory",
			op:   0xBFFF,
			setup: func(m *Machine) {
				m.v[0] = 0xFF
			},
			err:     ErrMemoryOutOfBounds,
			address: 0x10FE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, Config{}, tt.op)
			if tt.setup != nil {
				tt.setup(m)
			}
			before := m.state
			before.delay, before.sound, before.display = nil, nil, nil
			pixels := m.display.Rows()

			_, err := m.Tick()
			assert.Equal(t, true, errors.Is(err, tt.err))

			var execErr *ExecutionError
			assert.Equal(t, true, errors.As(err, &execErr))
			assert.Equal(t, uint16(ProgramStart), execErr.PC)
			assert.Equal(t, Opcode(tt.op), execErr.Opcode)
			assert.Equal(t, tt.address, execErr.Address)

			after := m.state
			after.delay, after.sound, after.display = nil, nil, nil
			assert.Equal(t, before, after)
			assert.Equal(t, pixels, m.display.Rows())
			assert.Equal(t, uint64(0), m.Cycles())
		})
	}
}

func TestMachine_StackOverflow(t *testing.T) {
	m := newTestMachine(t, Config{}, 0x2200) // call $200
	runTicks(t, m, StackSize)
	assert.Equal(t, uint8(StackSize), m.sp)

	_, err := m.Tick()
	assert.Equal(t, true, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint8(StackSize), m.sp)
	assert.Equal(t, uint16(ProgramStart), m.pc)
}

func TestMachine_FetchBeyondMemory(t *testing.T) {
	m := newTestMachine(t, Config{}, 0x1FFF) // jp $FFF
	runTicks(t, m, 1)
	assert.Equal(t, uint16(0xFFF), m.pc)

	_, err := m.Tick()
	assert.Equal(t, true, errors.Is(err, ErrMemoryOutOfBounds))

	var execErr *ExecutionError
	assert.Equal(t, true, errors.As(err, &execErr))
	assert.Equal(t, uint16(0xFFF), execErr.PC)
	assert.Equal(t, uint16(0x1000), execErr.Address)
	assert.Equal(t, uint16(0xFFF), m.pc)
}

func TestMachine_TimersStopOnError(t *testing.T) {
	m := newTestMachine(t, Config{}, 0x0123)
	m.delay.Set(5)

	_, err := m.Tick()
	assert.Equal(t, true, errors.Is(err, ErrUnsupportedOpcode))
	assert.Equal(t, uint8(5), m.delay.Value())
}

func TestExecutionError_Error(t *testing.T) {
	err := &ExecutionError{Err: ErrUnsupportedOpcode, PC: 0x200, Opcode: 0x0123}
	assert.Equal(t, "unsupported opcode: opcode $0123 at $200", err.Error())

	err = &ExecutionError{Err: ErrMemoryOutOfBounds, PC: 0x204, Opcode: 0xF133, Address: 0x1000}
	assert.Equal(t, "memory access out of bounds: address $1000 (opcode $F133 at $204)", err.Error())
}
