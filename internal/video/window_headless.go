//go:build headless

package video

import (
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrogolib/log"
)

// Window is not supported in headless builds.
type Window struct{}

// NewWindow returns a window that fails to run.
func NewWindow(_ *Screen, _ *input.Keypad, _ Config, _ *log.Logger) *Window {
	return &Window{}
}

// Run returns ErrWindowUnavailable.
func (w *Window) Run(_ Machine) error {
	return ErrWindowUnavailable
}
