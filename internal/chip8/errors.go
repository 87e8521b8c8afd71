package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOpcode is returned for opcodes that match no instruction.
	ErrUnsupportedOpcode = errors.New("unsupported opcode")
	// ErrStackOverflow is returned for a call with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned for a return without an active call.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrMemoryOutOfBounds is returned for memory accesses beyond MaxAddress.
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")

	// ErrProgramTooLarge is returned when loading a program that does not fit.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrNotAwaitingKey is returned when resuming a machine that is not
	// waiting for a key press.
	ErrNotAwaitingKey = errors.New("machine is not awaiting a key")
	// ErrInvalidKey is returned for key values outside of 0x0-0xF.
	ErrInvalidKey = errors.New("invalid key")
)

// ExecutionError describes a fault raised while executing an instruction.
type ExecutionError struct {
	Err     error  // one of the sentinel errors of this package
	PC      uint16 // address of the faulting instruction
	Opcode  Opcode
	Address uint16 // offending address, set for ErrMemoryOutOfBounds
}

func (e *ExecutionError) Error() string {
	if errors.Is(e.Err, ErrMemoryOutOfBounds) {
		return fmt.Sprintf("%s: address $%04X (opcode $%04X at $%03X)",
			e.Err, e.Address, uint16(e.Opcode), e.PC)
	}
	return fmt.Sprintf("%s: opcode $%04X at $%03X", e.Err, uint16(e.Opcode), e.PC)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func outOfBounds(address int) error {
	return &ExecutionError{
		Err:     ErrMemoryOutOfBounds,
		Address: uint16(address),
	}
}
