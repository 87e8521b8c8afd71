package chip8

import (
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/timer"
)

// state is the complete virtual machine state that instructions mutate.
type state struct {
	memory  [MemorySize]byte
	v       [RegisterCount]uint8
	i       uint16
	pc      uint16
	sp      uint8
	stack   [StackSize]uint16
	delay   *timer.Timer
	sound   *timer.Timer
	display *display.Framebuffer
}
