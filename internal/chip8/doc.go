// Package chip8 implements the CHIP-8 virtual machine: its state, the opcode
// decoder and the instruction dispatcher.
//
// # Architecture Overview
//
// CHIP-8 is an interpreted programming language developed in the 1970s for
// simple games on early microcomputers. The virtual machine consists of:
//   - 4KB of memory (0x000-MaxAddress)
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - a 16-bit address register I
//   - a program counter and a 16 entry call stack
//   - a delay timer and a sound timer
//   - a monochrome 64x32 framebuffer
//
// # Memory Layout
//
//   - 0x000-0x04F: built-in hexadecimal glyph sprites, 5 bytes each
//   - 0x050-0x1FF: reserved interpreter area
//   - ProgramStart-MaxAddress: program and data area
//
// # Execution
//
// A host drives the machine by calling Machine.Tick at its chosen cadence.
// Every tick fetches one instruction, advances the program counter by 2,
// executes the instruction, ticks both timers and hands a changed
// framebuffer to the configured Renderer.
//
// The instruction that waits for a key press (LD Vx, K) suspends the machine
// instead of blocking. Tick then reports StatusAwaitingKey and the host
// resumes execution by passing the next key press to Machine.ResumeWithKey.
//
// # Errors
//
// Faults caused by program content are returned as *ExecutionError values
// which wrap one of the sentinel errors of this package. An instruction that
// fails leaves the machine state untouched.
//
// # Usage Example
//
//	m := chip8.New(chip8.Config{
//		Keypad:   keys,
//		Renderer: renderer,
//		Beep:     beeper.Beep,
//	})
//	if err := m.Load(program); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//
//	for {
//		status, err := m.Tick()
//		if err != nil {
//			return err
//		}
//		if status == chip8.StatusAwaitingKey {
//			// wait for input, then call m.ResumeWithKey(key)
//		}
//	}
package chip8
