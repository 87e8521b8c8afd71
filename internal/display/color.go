package display

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseColor parses a hex RGB color like "33ff66" or "#33FF66" into RGBA
// bytes with full opacity.
func ParseColor(s string) ([4]byte, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return [4]byte{}, fmt.Errorf("invalid color '%s': expected 6 hex digits", s)
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [4]byte{}, fmt.Errorf("invalid color '%s': %w", s, err)
	}
	return [4]byte{byte(value >> 16), byte(value >> 8), byte(value), 0xFF}, nil
}
