// Package writer implements assembly listing output of a disassembled program.
package writer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/program"
)

const dataBytesPerLine = 16

type lineWriterFunc func(line string, byteCount int) error

// Writer implements assembly listing output.
type Writer struct {
	app     *program.Program
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	HexComments    bool
	OffsetComments bool
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer, options Options) *Writer {
	return &Writer{
		app:     app,
		options: options,
		writer:  writer,
	}
}

// Write writes the assembly listing of the program.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}
	if err := w.OutputAliasMap(w.app.Aliases); err != nil {
		return err
	}

	offsets := w.app.Offsets
	for i := 0; i < len(offsets); {
		offset := offsets[i]
		if err := w.writeLabel(i, offset); err != nil {
			return err
		}

		if offset.IsType(program.CodeOffset) {
			if err := w.writeCodeLine(offset); err != nil {
				return fmt.Errorf("writing code line: %w", err)
			}
			i += len(offset.Data)
			continue
		}

		n, err := w.bundleDataWrites(i)
		if err != nil {
			return err
		}
		i += n
	}
	return nil
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString("  .byte ")
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02x, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "%s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

// OutputAliasMap outputs an alias map of addresses that are referenced
// but can not be labeled inline.
func (w Writer) OutputAliasMap(aliases map[string]uint16) error {
	if len(aliases) == 0 {
		return nil
	}

	// sort the aliases by name before outputting to avoid random map order
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	slices.Sort(names)

	for _, alias := range names {
		address := aliases[alias]
		if _, err := fmt.Fprintf(w.writer, "%s = $%04X\n", alias, address); err != nil {
			return fmt.Errorf("writing alias: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// WriteCommentHeader writes the checksum and base address header.
func (w Writer) WriteCommentHeader() error {
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n", w.app.Checksum); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code base address: $%04x\n\n", w.app.CodeBaseAddress); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

func (w Writer) writeLabel(index int, offset program.Offset) error {
	if offset.Label == "" {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	if offset.LabelComment == "" {
		if _, err := fmt.Fprintf(w.writer, "%s:\n", offset.Label); err != nil {
			return fmt.Errorf("writing label: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "%-32s ; %s\n", offset.Label+":", offset.LabelComment); err != nil {
			return fmt.Errorf("writing label: %w", err)
		}
	}
	return nil
}

func (w Writer) writeCodeLine(offset program.Offset) error {
	comment := w.comment(offset)
	if comment == "" {
		if _, err := fmt.Fprintf(w.writer, "  %s\n", offset.Code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", offset.Code, comment); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// comment returns the line comment of an offset including the enabled
// address and opcode byte comments.
func (w Writer) comment(offset program.Offset) string {
	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", offset.Address))
	}
	if w.options.HexComments && offset.IsType(program.CodeOffset) {
		parts = append(parts, offset.HexCodeComment())
	}
	if offset.Comment != "" {
		parts = append(parts, offset.Comment)
	}
	return strings.Join(parts, "  ")
}

// bundleDataWrites writes the data bytes starting at the index until the
// next code offset or label and returns the number of bytes written.
func (w Writer) bundleDataWrites(startIndex int) (int, error) {
	data := getData(w.app.Offsets, startIndex)

	currentIndex := startIndex
	lineWriter := func(line string, byteCount int) error {
		var err error

		comment := w.comment(w.app.Offsets[currentIndex])
		if comment == "" {
			_, err = fmt.Fprintf(w.writer, "%s\n", line)
		} else {
			_, err = fmt.Fprintf(w.writer, "%-32s ; %s\n", line, comment)
		}
		if err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}

		currentIndex += byteCount
		return nil
	}

	if err := w.BundleDataWrites(data, lineWriter); err != nil {
		return 0, fmt.Errorf("writing data: %w", err)
	}
	return len(data), nil
}

func getData(offsets []program.Offset, startIndex int) []byte {
	data := []byte{offsets[startIndex].Data[0]}
	for i := startIndex + 1; i < len(offsets); i++ {
		offset := offsets[i]
		if offset.IsType(program.CodeOffset) || offset.Label != "" {
			break
		}
		data = append(data, offset.Data[0])
	}
	return data
}
