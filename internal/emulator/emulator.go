// Package emulator wires the machine to the host selected by the program options.
package emulator

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrochip8/internal/video"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner logs the program name and version.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}

// Run loads the program and runs it on the host selected by the mode
// option. In headless mode the final screen is written to out, with the
// disasm option the disassembly listing is written to out instead.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, out io.Writer) error {
	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	if opts.Disasm {
		return runDisasm(ctx, logger, opts, program, out)
	}
	if !opts.Quiet {
		logger.Info("Running CHIP-8 program",
			log.String("file", opts.Input),
			log.Int("size", len(program)),
			log.String("mode", opts.Mode),
		)
	}

	switch opts.Mode {
	case options.ModeHeadless:
		return runHeadless(ctx, logger, opts, program, out)
	case options.ModeTerminal:
		return runTerminal(ctx, logger, opts, program)
	default:
		return runWindow(logger, opts, program)
	}
}

func runDisasm(ctx context.Context, logger *log.Logger, opts options.Program, program []byte, out io.Writer) error {
	dis := disasm.New(logger, program)
	app, err := dis.Process(ctx)
	if err != nil {
		return fmt.Errorf("disassembling program: %w", err)
	}

	w := writer.New(app, out, writer.Options{
		HexComments:    !opts.NoHexComments,
		OffsetComments: !opts.NoOffsets,
	})
	if err := w.Write(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

func runHeadless(ctx context.Context, logger *log.Logger, opts options.Program, program []byte, out io.Writer) error {
	m, err := newMachine(logger, opts, program, chip8.Config{})
	if err != nil {
		return err
	}

	r, err := runner.New(m, runner.Config{
		MaxCycles: opts.Cycles,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}
	if err := r.Run(ctx); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	logger.Debug("Execution finished",
		log.Uint64("ticks", r.Ticks()),
		log.Uint64("instructions", m.Cycles()),
		log.String("status", m.Status().String()),
	)
	if _, err := io.WriteString(out, m.Display().String()); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	return nil
}

func runTerminal(ctx context.Context, logger *log.Logger, opts options.Program, program []byte) error {
	keypad := input.NewKeypad()
	beep, closeAudio := openAudio(logger, opts)
	defer closeAudio()

	m, err := newMachine(logger, opts, program, chip8.Config{
		Keypad:   keypad,
		Renderer: terminal.NewRenderer(os.Stdout),
		Beep:     beep,
	})
	if err != nil {
		return err
	}

	host := terminal.New(os.Stdin, os.Stdout, keypad, opts.KeyHold, logger)
	if err := host.Start(); err != nil {
		return fmt.Errorf("starting terminal: %w", err)
	}
	defer func() { _ = host.Stop() }()

	r, err := runner.New(m, runner.Config{
		Hz:        opts.Hz,
		MaxCycles: opts.Cycles,
		Keys:      keypad.Presses(),
		Quit:      host.Quit(),
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}
	if err := r.Run(ctx); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func runWindow(logger *log.Logger, opts options.Program, program []byte) error {
	foreground, err := display.ParseColor(opts.Foreground)
	if err != nil {
		return err
	}
	background, err := display.ParseColor(opts.Background)
	if err != nil {
		return err
	}

	keypad := input.NewKeypad()
	screen := video.NewScreen(foreground, background)
	beep, closeAudio := openAudio(logger, opts)
	defer closeAudio()

	m, err := newMachine(logger, opts, program, chip8.Config{
		Keypad:   keypad,
		Renderer: screen,
		Beep:     beep,
	})
	if err != nil {
		return err
	}

	window := video.NewWindow(screen, keypad, video.Config{
		Title: "retrochip8 - " + opts.Input,
		Scale: opts.Scale,
		Hz:    opts.Hz,
	}, logger)
	if err := window.Run(m); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// newMachine creates a machine with the program loaded. The random source
// and the trace logger are set from the options.
func newMachine(logger *log.Logger, opts options.Program, program []byte, cfg chip8.Config) (*chip8.Machine, error) {
	if opts.Seed != 0 {
		cfg.Random = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}
	if opts.Trace {
		cfg.Logger = logger
	}

	m := chip8.New(cfg)
	if err := m.Load(program); err != nil {
		return nil, fmt.Errorf("loading program into memory: %w", err)
	}
	return m, nil
}

// openAudio opens the audio output and returns the beep callback and a
// function closing the output. Without an audio device the program runs
// silently.
func openAudio(logger *log.Logger, opts options.Program) (func(), func()) {
	beeper, err := audio.NewBeeper(opts.Beep, logger)
	if err != nil {
		logger.Warn("Audio output is not available", log.Err(err))
		return nil, func() {}
	}
	return beeper.Beep, func() { _ = beeper.Close() }
}
