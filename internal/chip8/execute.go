package chip8

import "github.com/retroenv/retrochip8/internal/display"

// execute applies the effect of a decoded instruction to the machine state.
// The program counter already points to the next instruction.
// All checks happen before the first write, a returned error means that
// nothing was modified.
//
//nolint:cyclop,funlen // one case per instruction
func (m *Machine) execute(ins Instruction) error {
	op := ins.Opcode
	x, y := op.XYRegisters()
	kk := op.LowestByte()
	nnn := op.Address()

	switch ins.Kind {
	// CLS  00E0 | Clear the display
	case Cls:
		m.display.Clear()

	// RET  00EE | Return from subroutine
	case Ret:
		if m.sp == 0 {
			return ErrStackUnderflow
		}
		m.pc = m.stack[m.sp-1]
		m.sp--

	// JP   1nnn | Jump to nnn
	case Jp:
		m.pc = nnn

	// CALL 2nnn | Call subroutine at nnn
	case Call:
		if m.sp >= StackSize {
			return ErrStackOverflow
		}
		m.stack[m.sp] = m.pc
		m.sp++
		m.pc = nnn

	// SE   3xkk | Skip next instruction if Vx == kk
	case SeByte:
		m.skipIf(m.v[x] == kk)

	// SNE  4xkk | Skip next instruction if Vx != kk
	case SneByte:
		m.skipIf(m.v[x] != kk)

	// SE   5xy0 | Skip next instruction if Vx == Vy
	case SeReg:
		m.skipIf(m.v[x] == m.v[y])

	// LD   6xkk | Vx = kk
	case LdByte:
		m.v[x] = kk

	// ADD  7xkk | Vx += kk, VF is not affected
	case AddByte:
		m.v[x] += kk

	case LdReg, Or, And, Xor, AddReg, Sub, Shr, Subn, Shl:
		m.executeALU(ins.Kind, x, y)

	// SNE  9xy0 | Skip next instruction if Vx != Vy
	case SneReg:
		m.skipIf(m.v[x] != m.v[y])

	// LD   Annn | I = nnn
	case LdI:
		m.i = nnn

	// JP   Bnnn | Jump to V0 + nnn
	case JpV0:
		target := int(m.v[0]) + int(nnn)
		if target > MaxAddress {
			return outOfBounds(target)
		}
		m.pc = uint16(target)

	// RND  Cxkk | Vx = random byte & kk
	case Rnd:
		m.v[x] = uint8(m.random.Uint32()) & kk

	// DRW  Dxyn | Draw n byte sprite from [I] at (Vx, Vy), VF = collision
	case Drw:
		return m.draw(x, y, op.Nibble(3))

	// SKP  Ex9E | Skip next instruction if key Vx is pressed
	case Skp:
		m.skipIf(m.keyPressed(m.v[x]))

	// SKNP ExA1 | Skip next instruction if key Vx is not pressed
	case Sknp:
		m.skipIf(!m.keyPressed(m.v[x]))

	case LdVxDT, LdVxK, LdDTVx, LdSTVx, AddIVx, LdFVx, LdBVx, LdMemVx, LdVxMem:
		return m.executeMisc(ins.Kind, x)

	default:
		return ErrUnsupportedOpcode
	}

	return nil
}

// executeALU executes the register to register instructions of group 8.
// Operands are read before any register is written. The flag register is
// written before Vx, so for x == F the result of the operation wins.
func (m *Machine) executeALU(kind Kind, x, y uint8) {
	vx, vy := m.v[x], m.v[y]

	switch kind {
	// LD   8xy0 | Vx = Vy
	case LdReg:
		m.v[x] = vy

	// OR   8xy1 | Vx |= Vy
	case Or:
		m.v[x] = vx | vy

	// AND  8xy2 | Vx &= Vy
	case And:
		m.v[x] = vx & vy

	// XOR  8xy3 | Vx ^= Vy
	case Xor:
		m.v[x] = vx ^ vy

	// ADD  8xy4 | Vx += Vy, VF = carry
	case AddReg:
		sum := uint16(vx) + uint16(vy)
		m.v[FlagRegister] = boolToFlag(sum > 0xFF)
		m.v[x] = uint8(sum & 0xFF)

	// SUB  8xy5 | Vx -= Vy, VF = Vx > Vy
	case Sub:
		m.v[FlagRegister] = boolToFlag(vx > vy)
		m.v[x] = vx - vy

	// SHR  8xy6 | Vx >>= 1, VF = shifted out bit
	case Shr:
		m.v[FlagRegister] = vx & 1
		m.v[x] = vx >> 1

	// SUBN 8xy7 | Vx = Vy - Vx, VF = Vy > Vx
	case Subn:
		m.v[FlagRegister] = boolToFlag(vy > vx)
		m.v[x] = vy - vx

	// SHL  8xyE | Vx <<= 1, VF = shifted out bit
	case Shl:
		m.v[FlagRegister] = vx >> 7
		m.v[x] = vx << 1
	}
}

// executeMisc executes the timer, key wait and memory instructions of
// group F.
func (m *Machine) executeMisc(kind Kind, x uint8) error {
	switch kind {
	// LD   Fx07 | Vx = delay timer
	case LdVxDT:
		m.v[x] = m.delay.Value()

	// LD   Fx0A | Suspend until a key is pressed, Vx = key
	case LdVxK:
		m.status = StatusAwaitingKey
		m.waitRegister = x

	// LD   Fx15 | delay timer = Vx
	case LdDTVx:
		m.delay.Set(m.v[x])

	// LD   Fx18 | sound timer = Vx
	case LdSTVx:
		m.sound.Set(m.v[x])

	// ADD  Fx1E | I = Vx, the register value replaces I instead of being added
	case AddIVx:
		m.i = uint16(m.v[x])

	// LD   Fx29 | I = address of the glyph for digit Vx
	case LdFVx:
		m.i = uint16(m.v[x]) * glyphSize

	// LD   Fx33 | [I], [I+1], [I+2] = BCD of Vx
	case LdBVx:
		if err := m.checkMemory(int(m.i), 3); err != nil {
			return err
		}
		value := m.v[x]
		m.memory[m.i] = value / 100
		m.memory[m.i+1] = (value / 10) % 10
		m.memory[m.i+2] = value % 10

	// LD   Fx55 | [I..I+x] = V0..Vx
	case LdMemVx:
		if err := m.checkMemory(int(m.i), int(x)+1); err != nil {
			return err
		}
		copy(m.memory[m.i:int(m.i)+int(x)+1], m.v[:x+1])

	// LD   Fx65 | V0..Vx = [I..I+x]
	case LdVxMem:
		if err := m.checkMemory(int(m.i), int(x)+1); err != nil {
			return err
		}
		copy(m.v[:x+1], m.memory[m.i:int(m.i)+int(x)+1])
	}
	return nil
}

// draw XORs an n byte sprite read from [I] onto the framebuffer at
// (Vx, Vy). Coordinates wrap around the screen edges. VF is set to 1 if any
// lit pixel was turned off.
func (m *Machine) draw(x, y, n uint8) error {
	if err := m.checkMemory(int(m.i), int(n)); err != nil {
		return err
	}

	originX, originY := int(m.v[x]), int(m.v[y])
	m.v[FlagRegister] = 0

	for row := range int(n) {
		sprite := m.memory[int(m.i)+row]
		py := (originY + row) % display.Height

		for bit := range 8 {
			px := (originX + bit) % display.Width
			color := (sprite >> (7 - bit)) & 1
			m.v[FlagRegister] |= m.display.Plot(px, py, color)
		}
	}

	m.display.MarkDirty()
	return nil
}

// checkMemory verifies that length bytes starting at address are inside
// of the memory.
func (m *Machine) checkMemory(address, length int) error {
	if length == 0 {
		return nil
	}
	if end := address + length - 1; end > MaxAddress {
		return outOfBounds(end)
	}
	return nil
}

// skipIf skips the next instruction if the condition is true.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += opcodeSize
	}
}

func (m *Machine) keyPressed(key uint8) bool {
	if m.keypad == nil {
		return false
	}
	return m.keypad.IsKeyPressed(key & 0xF)
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
