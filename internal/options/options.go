// Package options contains the program options.
package options

import "time"

// Host modes.
const (
	ModeWindow   = "window"
	ModeTerminal = "terminal"
	ModeHeadless = "headless"
)

// Modes lists the supported host modes.
var Modes = []string{ModeWindow, ModeTerminal, ModeHeadless}

// Parameters contains file path options.
type Parameters struct {
	Input string `arg:"positional" usage:"program file to run"`
}

// Flags contains behavior options.
type Flags struct {
	Mode   string `flag:"mode" usage:"host mode: window, terminal, headless" default:"window"`
	Hz     int    `flag:"hz" usage:"instructions per second" default:"600"`
	Cycles uint64 `flag:"cycles" usage:"stop after this many cycles, required in headless mode"`
	Seed   uint64 `flag:"seed" usage:"seed of the random number generator (default: random)"`
	Trace  bool   `flag:"trace" usage:"log every executed instruction"`
	Debug  bool   `flag:"debug" usage:"enable debug logging"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains display and sound options.
type OutputFlags struct {
	Scale      int           `flag:"scale" usage:"window pixel scale" default:"10"`
	Foreground string        `flag:"fg" usage:"color of lit pixels as hex RGB" default:"33ff66"`
	Background string        `flag:"bg" usage:"color of unlit pixels as hex RGB" default:"000000"`
	Beep       time.Duration `flag:"beep" usage:"length of the sound timer tone" default:"100ms"`
	KeyHold    time.Duration `flag:"hold" usage:"time a key stays pressed in terminal mode" default:"150ms"`
}

// DisasmFlags contains disassembly listing options.
type DisasmFlags struct {
	Disasm        bool `flag:"disasm" usage:"print a disassembly listing instead of running the program"`
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	OutputFlags
	DisasmFlags
}
