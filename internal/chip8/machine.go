package chip8

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// Keypad reports the state of the 16-key hexadecimal keypad.
type Keypad interface {
	IsKeyPressed(key uint8) bool
}

// Renderer displays the framebuffer. It is called after a tick that left the
// framebuffer dirty.
type Renderer interface {
	Render(fb *display.Framebuffer) error
}

// RandomSource provides the random numbers for the RND instruction.
// *rand.Rand of math/rand/v2 implements it.
type RandomSource interface {
	Uint32() uint32
}

// Status is the execution status of the machine after a tick.
type Status int

const (
	// StatusRunning indicates that the machine executes instructions.
	StatusRunning Status = iota
	// StatusAwaitingKey indicates that the machine is suspended until the
	// host passes a key press to ResumeWithKey.
	StatusAwaitingKey
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusAwaitingKey:
		return "awaiting key"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Config contains the collaborators of a machine. All fields are optional.
type Config struct {
	Keypad   Keypad       // keypad for the key skip instructions, no key is pressed if nil
	Renderer Renderer     // called with the framebuffer when it changed
	Beep     func()       // invoked when the sound timer starts counting down
	Random   RandomSource // random numbers, a randomly seeded source is used if nil
	Logger   *log.Logger  // trace logger, every instruction is logged at debug level
}

// Machine is a CHIP-8 virtual machine.
type Machine struct {
	state

	keypad   Keypad
	renderer Renderer
	random   RandomSource
	logger   *log.Logger

	program      []byte
	status       Status
	waitRegister uint8
	cycles       uint64
}

// New returns a new machine with cleared memory, the glyph sprites
// installed and the program counter at ProgramStart.
func New(cfg Config) *Machine {
	random := cfg.Random
	if random == nil {
		random = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	m := &Machine{
		keypad:   cfg.Keypad,
		renderer: cfg.Renderer,
		random:   random,
		logger:   cfg.Logger,
	}
	m.delay = timer.New(nil)
	m.sound = timer.New(cfg.Beep)
	m.display = display.New()
	m.Reset()
	return m
}

// Load copies the program into memory at ProgramStart and resets the
// machine. The program is kept for later resets.
func (m *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	m.program = make([]byte, len(program))
	copy(m.program, program)
	m.Reset()
	return nil
}

// Reset returns the machine to the state directly after construction and
// loading of the last program.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[:], glyphs[:])
	copy(m.memory[ProgramStart:], m.program)

	m.v = [RegisterCount]uint8{}
	m.i = 0
	m.pc = ProgramStart
	m.sp = 0
	m.stack = [StackSize]uint16{}
	m.delay.Reset()
	m.sound.Reset()
	m.display.Reset()

	m.status = StatusRunning
	m.waitRegister = 0
	m.cycles = 0
}

// Tick runs one machine cycle: it executes one instruction unless the
// machine awaits a key, ticks the delay and sound timers and passes a changed
// framebuffer to the renderer.
// A failing instruction aborts the cycle and leaves the state unchanged.
func (m *Machine) Tick() (Status, error) {
	if m.status == StatusRunning {
		if err := m.step(); err != nil {
			return m.status, err
		}
	}

	m.delay.Tick()
	m.sound.Tick()

	if err := m.flush(); err != nil {
		return m.status, err
	}
	return m.status, nil
}

// ResumeWithKey passes a key press to a machine that is suspended by a
// wait for key instruction. The key is stored in the target register and the
// machine continues executing on the next tick.
func (m *Machine) ResumeWithKey(key uint8) error {
	if m.status != StatusAwaitingKey {
		return ErrNotAwaitingKey
	}
	if key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}

	m.v[m.waitRegister] = key
	m.status = StatusRunning
	return nil
}

// Status returns the current execution status.
func (m *Machine) Status() Status {
	return m.status
}

// Display returns the framebuffer of the machine.
func (m *Machine) Display() *display.Framebuffer {
	return m.display
}

// Cycles returns the number of executed instructions since the last reset.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// step fetches, decodes and executes one instruction.
func (m *Machine) step() error {
	pc := m.pc
	if int(pc)+1 >= MemorySize {
		return &ExecutionError{
			Err:     ErrMemoryOutOfBounds,
			PC:      pc,
			Address: pc + 1,
		}
	}

	op := NewOpcode(m.memory[pc], m.memory[pc+1])
	ins := Decode(op)
	m.trace(ins)

	m.pc += opcodeSize
	if err := m.execute(ins); err != nil {
		m.pc = pc

		var execErr *ExecutionError
		if !errors.As(err, &execErr) {
			execErr = &ExecutionError{Err: err}
		}
		execErr.PC = pc
		execErr.Opcode = op
		return execErr
	}

	m.cycles++
	return nil
}

// flush hands a dirty framebuffer to the renderer.
func (m *Machine) flush() error {
	if !m.display.Dirty() || m.renderer == nil {
		return nil
	}
	if err := m.renderer.Render(m.display); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	m.display.MarkClean()
	return nil
}

// trace logs the instruction about to be executed together with the
// register state.
func (m *Machine) trace(ins Instruction) {
	if m.logger == nil || !m.logger.Enabled(context.Background(), log.DebugLevel) {
		return
	}

	m.logger.Debug("Executing instruction",
		log.Hex("pc", m.pc),
		log.Hex("opcode", uint16(ins.Opcode)),
		log.String("instruction", ins.String()),
		log.Hex("i", m.i),
		log.Uint8("sp", m.sp),
		log.String("v", fmt.Sprintf("% X", m.v[:])),
	)
}
