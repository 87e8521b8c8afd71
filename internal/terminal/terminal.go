package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when the input is not a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

const ctrlC = 0x03

// Terminal reads raw key presses from the terminal and taps the matching
// keypad keys. Terminals report no key releases, so every press holds
// the key down for a fixed duration. Ctrl+C stops the host.
type Terminal struct {
	in     *os.File
	out    io.Writer
	keypad *input.Keypad
	hold   time.Duration
	logger *log.Logger

	fd       int
	oldState *term.State

	quit     chan struct{}
	quitOnce sync.Once
}

// New returns a terminal host for the given input and output.
func New(in *os.File, out io.Writer, keypad *input.Keypad, hold time.Duration, logger *log.Logger) *Terminal {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Terminal{
		in:     in,
		out:    out,
		keypad: keypad,
		hold:   hold,
		logger: logger,
		quit:   make(chan struct{}),
	}
}

// Start switches the terminal into raw mode, clears the screen and starts
// reading keys. Stop restores the terminal.
func (t *Terminal) Start() error {
	t.fd = int(t.in.Fd())
	if !term.IsTerminal(t.fd) {
		return ErrNotTerminal
	}

	if width, height, err := term.GetSize(t.fd); err == nil {
		if width < display.Width || height < display.Height/2 {
			t.logger.Warn("Terminal is smaller than the screen",
				log.Int("columns", width),
				log.Int("lines", height))
		}
	}

	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	t.oldState = oldState

	if _, err := io.WriteString(t.out, clearScreen+hideCursor); err != nil {
		_ = term.Restore(t.fd, t.oldState)
		return fmt.Errorf("clearing screen: %w", err)
	}

	go t.readKeys(t.in)
	return nil
}

// Stop shows the cursor again and restores the terminal state.
func (t *Terminal) Stop() error {
	if t.oldState == nil {
		return nil
	}

	_, _ = io.WriteString(t.out, showCursor+"\r\n")
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	if err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// Quit is closed when the user stops the host or the input ends.
func (t *Terminal) Quit() <-chan struct{} {
	return t.quit
}

// readKeys blocks on the reader until it fails. The goroutine is not
// stopped by Stop, a blocked read ends with the process.
func (t *Terminal) readKeys(reader io.Reader) {
	buf := make([]byte, 64)

	for {
		n, err := reader.Read(buf)
		for _, b := range buf[:n] {
			t.handleByte(b)
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.logger.Error("Reading terminal input failed", log.Err(err))
			}
			t.stop()
			return
		}
	}
}

func (t *Terminal) handleByte(b byte) {
	if b == ctrlC {
		t.stop()
		return
	}

	key, ok := input.KeyForRune(rune(b))
	if !ok {
		return
	}
	t.keypad.Tap(key, t.hold)
}

func (t *Terminal) stop() {
	t.quitOnce.Do(func() {
		close(t.quit)
	})
}
