// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	opts.Input = args[0]

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("Only one program file can be run, got %d", len(args)),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Mode = strings.ToLower(opts.Mode)
	if !slices.Contains(options.Modes, opts.Mode) {
		return fmt.Errorf("unsupported mode: %s. Valid options: %s",
			opts.Mode, strings.Join(options.Modes, ", "))
	}

	switch {
	case opts.Hz <= 0:
		return fmt.Errorf("invalid instruction rate %d: must be positive", opts.Hz)
	case opts.Scale <= 0:
		return fmt.Errorf("invalid scale %d: must be positive", opts.Scale)
	case opts.Beep < 0:
		return fmt.Errorf("invalid beep duration %s", opts.Beep)
	case opts.KeyHold <= 0:
		return fmt.Errorf("invalid key hold duration %s", opts.KeyHold)
	case opts.Mode == options.ModeHeadless && opts.Cycles == 0 && !opts.Disasm:
		return errors.New("headless mode requires a cycle limit, set -cycles")
	}

	for _, c := range []string{opts.Foreground, opts.Background} {
		if _, err := display.ParseColor(c); err != nil {
			return err
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Mode, "mode", options.ModeWindow, "host mode (window/terminal/headless)")
	flags.IntVar(&opts.Hz, "hz", 600, "instructions per second, also scales the timers")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after this many cycles, 0 runs until quit, required in headless mode")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a random seed")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction with the register state")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.IntVar(&opts.Scale, "scale", 10, "size of a pixel in the window")
	flags.StringVar(&opts.Foreground, "fg", "33ff66", "color of lit pixels as hex RGB")
	flags.StringVar(&opts.Background, "bg", "000000", "color of unlit pixels as hex RGB")
	flags.DurationVar(&opts.Beep, "beep", 100*time.Millisecond, "length of the tone played by the sound timer")
	flags.DurationVar(&opts.KeyHold, "hold", 150*time.Millisecond, "time a key stays pressed in terminal mode")

	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing instead of running the program")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")
}
