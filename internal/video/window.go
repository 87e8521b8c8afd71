//go:build !headless

package video

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrogolib/log"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const (
	statusBarHeight  = 18
	statusBarPadding = 6
)

var (
	statusBarColor  = color.RGBA{0, 0, 0, 180}
	statusTextColor = color.RGBA{190, 190, 190, 255}
	statusFace      = text.NewGoXFace(basicfont.Face7x13)
)

// keyMap maps the keypad keys to the left block of a QWERTY keyboard,
// matching input.KeyForRune.
var keyMap = [input.KeyCount]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.Key1,
	0x2: ebiten.Key2,
	0x3: ebiten.Key3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.Key4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// Window is an ebiten game that runs a machine.
//
// Keys: Escape quits, F9 copies the screen as text to the clipboard,
// F10 resets the machine, F12 toggles the status bar.
type Window struct {
	cfg    Config
	screen *Screen
	keypad *input.Keypad
	logger *log.Logger

	machine        Machine
	cyclesPerFrame int
	image          *ebiten.Image
	pixels         []byte
	showStatusBar  bool

	clipboardOnce sync.Once
	clipboardOK   bool
}

// NewWindow returns a window that shows the screen and feeds the keypad.
func NewWindow(screen *Screen, keypad *input.Keypad, cfg Config, logger *log.Logger) *Window {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Window{
		cfg:            cfg,
		screen:         screen,
		keypad:         keypad,
		logger:         logger,
		cyclesPerFrame: CyclesPerFrame(cfg.Hz),
	}
}

// Run opens the window and drives the machine until the window is closed
// or an instruction fails.
func (w *Window) Run(machine Machine) error {
	w.machine = machine

	ebiten.SetWindowSize(display.Width*w.cfg.Scale, display.Height*w.cfg.Scale)
	ebiten.SetWindowTitle(w.cfg.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(FramesPerSecond)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update handles the host keys and the keypad and runs the ticks of one
// frame.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		w.copyScreen()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		w.machine.Reset()
		w.keypad.ReleaseAll()
		w.logger.Info("Machine reset")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		w.showStatusBar = !w.showStatusBar
	}

	if err := w.resume(); err != nil {
		return err
	}
	w.handleKeypad()
	return w.runFrame()
}

// Draw scales the last rendered frame to the window.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(display.Width, display.Height)
	}

	w.pixels = w.screen.Pixels(w.pixels)
	w.image.WritePixels(w.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.cfg.Scale), float64(w.cfg.Scale))
	screen.DrawImage(w.image, op)

	if w.showStatusBar {
		w.drawStatusBar(screen)
	}
}

// Layout returns the scaled screen size.
func (w *Window) Layout(_, _ int) (int, int) {
	return display.Width * w.cfg.Scale, display.Height * w.cfg.Scale
}

// resume passes the oldest key press to a machine that waits for a key.
// Presses made while the machine runs are discarded.
func (w *Window) resume() error {
	if w.machine.Status() != chip8.StatusAwaitingKey {
		w.keypad.DiscardPresses()
		return nil
	}

	key, ok := w.keypad.NextPress()
	if !ok {
		return nil
	}
	if err := w.machine.ResumeWithKey(key); err != nil {
		return fmt.Errorf("resuming with key %X: %w", key, err)
	}
	return nil
}

func (w *Window) handleKeypad() {
	for key, k := range keyMap {
		switch {
		case inpututil.IsKeyJustPressed(k):
			w.keypad.Press(uint8(key))
		case inpututil.IsKeyJustReleased(k):
			w.keypad.Release(uint8(key))
		}
	}
}

func (w *Window) runFrame() error {
	for range w.cyclesPerFrame {
		status, err := w.machine.Tick()
		if err != nil {
			return fmt.Errorf("executing machine cycle: %w", err)
		}
		if status == chip8.StatusAwaitingKey {
			return nil
		}
	}
	return nil
}

func (w *Window) drawStatusBar(screen *ebiten.Image) {
	width, height := w.Layout(0, 0)
	if statusBarHeight >= height {
		return
	}

	y := height - statusBarHeight
	vector.DrawFilledRect(screen, 0, float32(y), float32(width), statusBarHeight, statusBarColor, false)

	line := statusLine(w.machine.Snapshot(), ebiten.ActualFPS())
	text.Draw(screen, line, statusFace, statusTextOptions(y))
}

// statusTextOptions positions the status text vertically centered in a
// status bar starting at line y.
func statusTextOptions(y int) *text.DrawOptions {
	m := statusFace.Metrics()
	top := float64(y) + (statusBarHeight-(m.HAscent+m.HDescent))/2

	op := &text.DrawOptions{}
	op.GeoM.Translate(statusBarPadding, top)
	op.ColorScale.ScaleWithColor(statusTextColor)
	return op
}

func (w *Window) copyScreen() {
	w.clipboardOnce.Do(func() {
		w.clipboardOK = clipboard.Init() == nil
	})
	if !w.clipboardOK {
		w.logger.Warn("Clipboard is not available")
		return
	}

	clipboard.Write(clipboard.FmtText, []byte(w.screen.Text()))
	w.logger.Info("Copied screen to clipboard")
}
