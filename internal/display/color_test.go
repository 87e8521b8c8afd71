package display

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseColor(t *testing.T) {
	green := [4]byte{0x33, 0xFF, 0x66, 0xFF}

	tests := []struct {
		input    string
		expected [4]byte
		valid    bool
	}{
		{"33ff66", green, true},
		{"#33FF66", green, true},
		{"000000", [4]byte{0, 0, 0, 0xFF}, true},
		{"fff", [4]byte{}, false},
		{"gg0000", [4]byte{}, false},
		{"", [4]byte{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			assert.Equal(t, tt.valid, err == nil)
			assert.Equal(t, tt.expected, c)
		})
	}
}
