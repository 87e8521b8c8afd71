// Package video implements the window host: a renderer that converts the
// framebuffer into RGBA pixels and an ebiten game that shows them, feeds
// the keypad and drives the machine once per frame.
package video

import (
	"errors"
	"fmt"
	"sync"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/display"
)

// FramesPerSecond is the update rate of the window.
const FramesPerSecond = 60

// ErrWindowUnavailable is returned by builds without window support.
var ErrWindowUnavailable = errors.New("window mode is not available in this build")

// Machine is the part of the machine that the window drives.
type Machine interface {
	Tick() (chip8.Status, error)
	ResumeWithKey(key uint8) error
	Status() chip8.Status
	Reset()
	Snapshot() chip8.Snapshot
}

// Config configures the window.
type Config struct {
	Title string
	Scale int // size of one pixel on screen
	Hz    int // instructions per second
}

// Screen holds the last rendered frame as RGBA pixels. It implements
// chip8.Renderer and is safe for concurrent use.
type Screen struct {
	bufferMutex sync.RWMutex
	on, off     [4]byte
	pixels      []byte
	text        string
	frames      uint64
}

// NewScreen returns a screen showing an empty framebuffer in the
// background color.
func NewScreen(foreground, background [4]byte) *Screen {
	s := &Screen{
		on:  foreground,
		off: background,
	}
	fb := display.New()
	s.pixels = fb.RGBA(nil, s.on, s.off)
	s.text = fb.String()
	return s
}

// Render copies the framebuffer.
func (s *Screen) Render(fb *display.Framebuffer) error {
	s.bufferMutex.Lock()
	s.pixels = fb.RGBA(s.pixels, s.on, s.off)
	s.text = fb.String()
	s.frames++
	s.bufferMutex.Unlock()
	return nil
}

// Pixels copies the RGBA pixels of the last frame into dst, which is
// reallocated if it is too small.
func (s *Screen) Pixels(dst []byte) []byte {
	s.bufferMutex.RLock()
	defer s.bufferMutex.RUnlock()

	if len(dst) < len(s.pixels) {
		dst = make([]byte, len(s.pixels))
	}
	n := copy(dst, s.pixels)
	return dst[:n]
}

// Text returns the last frame as text.
func (s *Screen) Text() string {
	s.bufferMutex.RLock()
	defer s.bufferMutex.RUnlock()
	return s.text
}

// Frames returns the number of rendered frames.
func (s *Screen) Frames() uint64 {
	s.bufferMutex.RLock()
	defer s.bufferMutex.RUnlock()
	return s.frames
}

// CyclesPerFrame returns the number of machine ticks per window frame for
// the instruction rate, at least one.
func CyclesPerFrame(hz int) int {
	return max(1, hz/FramesPerSecond)
}

func statusLine(s chip8.Snapshot, fps float64) string {
	return fmt.Sprintf("%s | PC $%03X | %s | %.0f FPS",
		s.Status, s.PC, s.Next, fps)
}
