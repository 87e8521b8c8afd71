package chip8

// Snapshot is a read-only copy of the register state of a machine.
type Snapshot struct {
	PC         uint16
	I          uint16
	SP         uint8
	V          [RegisterCount]uint8
	Stack      [StackSize]uint16
	DelayTimer uint8
	SoundTimer uint8
	Status     Status
	Cycles     uint64
	Next       Instruction // instruction at PC, Unknown if PC is out of range
}

// Snapshot returns a copy of the current register state.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		PC:         m.pc,
		I:          m.i,
		SP:         m.sp,
		V:          m.v,
		Stack:      m.stack,
		DelayTimer: m.delay.Value(),
		SoundTimer: m.sound.Value(),
		Status:     m.status,
		Cycles:     m.cycles,
	}
	if int(m.pc)+1 < MemorySize {
		s.Next = Decode(NewOpcode(m.memory[m.pc], m.memory[m.pc+1]))
	}
	return s
}

// ReadMemory returns the byte at the given address.
func (m *Machine) ReadMemory(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, outOfBounds(int(address))
	}
	return m.memory[address], nil
}
