package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load program file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x00, 0xE0, 0x12, 0x00})

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, 4, len(data))
		assert.Equal(t, byte(0xE0), data[1])
	})

	t.Run("load program of maximum size", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxProgramSize))

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, chip8.MaxProgramSize, len(data))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().Load("/nonexistent/file.ch8")
		assert.Equal(t, true, errors.Is(err, os.ErrNotExist))
	})

	t.Run("error on too large file", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxProgramSize+1))

		_, err := New().Load(tmpFile)
		assert.Equal(t, true, errors.Is(err, chip8.ErrProgramTooLarge))
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		_, err := New().Load(tmpFile)
		assert.Equal(t, true, errors.Is(err, ErrEmptyProgram))
	})
}

func TestLoadFromReader(t *testing.T) {
	program := []byte{0x6A, 0x42, 0x12, 0x02}

	data, err := New().LoadFromReader(bytes.NewReader(program))
	assert.NoError(t, err)
	assert.Equal(t, [4]byte(program), [4]byte(data))

	m := chip8.New(chip8.Config{})
	assert.NoError(t, m.Load(data))
	b, err := m.ReadMemory(chip8.ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x6A), b)
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
