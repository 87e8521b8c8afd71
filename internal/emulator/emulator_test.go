package emulator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeProgram(t *testing.T, data []byte) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(file, data, 0600); err != nil {
		t.Fatalf("Failed to create program file: %v", err)
	}
	return file
}

func headlessOptions(input string, cycles uint64) options.Program {
	var opts options.Program
	opts.Input = input
	opts.Mode = options.ModeHeadless
	opts.Cycles = cycles
	return opts
}

func TestRun_Headless(t *testing.T) {
	file := writeProgram(t, []byte{
		0x60, 0x0A, // ld V0, $0A
		0xF0, 0x29, // ld F, V0
		0x61, 0x02, // ld V1, $02
		0xD1, 0x15, // drw V1, V1, $5
		0x12, 0x08, // jp $208
	})

	var out bytes.Buffer
	logger := log.NewTestLogger(t)
	err := Run(context.Background(), logger, headlessOptions(file, 50), &out)
	assert.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, display.Height+1, len(lines))
	assert.Equal(t, strings.Repeat(".", display.Width), lines[0])
	assert.Equal(t, "..####", lines[2][:6]) // top row of glyph A
}

func TestRun_HeadlessExecutionError(t *testing.T) {
	file := writeProgram(t, []byte{0x00, 0xEE}) // ret

	var out bytes.Buffer
	err := Run(context.Background(), log.NewTestLogger(t), headlessOptions(file, 10), &out)
	assert.Equal(t, true, errors.Is(err, chip8.ErrStackUnderflow))

	var execErr *chip8.ExecutionError
	assert.Equal(t, true, errors.As(err, &execErr))
	assert.Equal(t, uint16(chip8.ProgramStart), execErr.PC)
	assert.Equal(t, 0, out.Len())
}

func TestRun_MissingFile(t *testing.T) {
	opts := headlessOptions(filepath.Join(t.TempDir(), "missing.ch8"), 10)
	err := Run(context.Background(), log.NewTestLogger(t), opts, &bytes.Buffer{})
	assert.Equal(t, true, errors.Is(err, os.ErrNotExist))
}

func TestRun_Disasm(t *testing.T) {
	file := writeProgram(t, []byte{
		0x00, 0xE0, // cls
		0x12, 0x02, // jp $202
	})

	var opts options.Program
	opts.Input = file
	opts.Disasm = true
	opts.NoHexComments = true

	var out bytes.Buffer
	err := Run(context.Background(), log.NewTestLogger(t), opts, &out)
	assert.NoError(t, err)

	listing := out.String()
	assert.Equal(t, true, strings.Contains(listing, "Start:\n  cls                            ; $0200\n"))
	assert.Equal(t, true, strings.Contains(listing, "jump_202:\n  jp jump_202                    ; $0202\n"))
}

func TestNewMachine_Seed(t *testing.T) {
	program := []byte{0xC0, 0xFF} // rnd V0, $FF
	opts := headlessOptions("", 1)
	opts.Seed = 1234
	logger := log.NewTestLogger(t)

	var values [2]uint8
	for i := range values {
		m, err := newMachine(logger, opts, program, chip8.Config{})
		assert.NoError(t, err)
		_, err = m.Tick()
		assert.NoError(t, err)
		values[i] = m.Snapshot().V[0]
	}
	assert.Equal(t, values[0], values[1])
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithConfig(log.Config{Output: &buf, Level: log.InfoLevel})

	PrintBanner(logger, options.Program{}, "1.0.0", "", "")
	assert.Contains(t, buf.String(), "retrochip8")
	assert.Contains(t, buf.String(), `"version":"1.0.0 built with: `)

	buf.Reset()
	opts := options.Program{}
	opts.Quiet = true
	PrintBanner(logger, opts, "1.0.0", "", "")
	assert.Equal(t, 0, buf.Len())
}
