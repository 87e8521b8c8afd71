// Package terminal implements the terminal host: an ANSI renderer and raw
// mode keyboard input.
package terminal

import (
	"bytes"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/display"
)

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Renderer draws the framebuffer with ANSI escape sequences. Two pixel rows
// share one text line using half block characters, so the screen needs
// 64 columns and 16 lines.
type Renderer struct {
	out    io.Writer
	buf    bytes.Buffer
	frames uint64
}

// NewRenderer returns a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render redraws the whole screen from the top left corner.
func (r *Renderer) Render(fb *display.Framebuffer) error {
	rows := fb.Rows()

	r.buf.Reset()
	r.buf.WriteString(cursorHome)
	for y := 0; y < display.Height; y += 2 {
		for x := range display.Width {
			r.buf.WriteString(halfBlock(rows[y][x], rows[y+1][x]))
		}
		r.buf.WriteString("\r\n")
	}

	if _, err := r.out.Write(r.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	r.frames++
	return nil
}

// Frames returns the number of rendered frames.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

func halfBlock(top, bottom uint8) string {
	switch {
	case top != 0 && bottom != 0:
		return "█"
	case top != 0:
		return "▀"
	case bottom != 0:
		return "▄"
	default:
		return " "
	}
}
