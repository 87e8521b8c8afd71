package display

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFramebuffer_Plot(t *testing.T) {
	fb := New()

	collision := fb.Plot(3, 4, 1)
	assert.Equal(t, uint8(0), collision)
	assert.Equal(t, uint8(1), fb.Pixel(3, 4))

	collision = fb.Plot(3, 4, 1)
	assert.Equal(t, uint8(1), collision)
	assert.Equal(t, uint8(0), fb.Pixel(3, 4))

	// plotting an unset bit never changes the pixel
	fb.Plot(5, 5, 1)
	collision = fb.Plot(5, 5, 0)
	assert.Equal(t, uint8(0), collision)
	assert.Equal(t, uint8(1), fb.Pixel(5, 5))

	// plot does not mark dirty on its own
	assert.Equal(t, false, fb.Dirty())
}

func TestFramebuffer_PlotWraps(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		wantX int
		wantY int
	}{
		{"inside", 10, 10, 10, 10},
		{"right edge", 64, 0, 0, 0},
		{"past right edge", 67, 1, 3, 1},
		{"bottom edge", 0, 32, 0, 0},
		{"both", 70, 40, 6, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := New()
			fb.Plot(tt.x, tt.y, 1)
			assert.Equal(t, uint8(1), fb.Rows()[tt.wantY][tt.wantX])
		})
	}
}

func TestFramebuffer_Dirty(t *testing.T) {
	fb := New()
	assert.Equal(t, false, fb.Dirty())

	fb.Clear()
	assert.Equal(t, true, fb.Dirty())

	fb.MarkClean()
	assert.Equal(t, false, fb.Dirty())

	fb.MarkDirty()
	assert.Equal(t, true, fb.Dirty())

	fb.Plot(0, 0, 1)
	fb.Reset()
	assert.Equal(t, false, fb.Dirty())
	assert.Equal(t, uint8(0), fb.Pixel(0, 0))
}

func TestFramebuffer_Clear(t *testing.T) {
	fb := New()
	fb.Plot(1, 1, 1)
	fb.Plot(63, 31, 1)

	fb.Clear()
	assert.Equal(t, [Height][Width]uint8{}, fb.Rows())
}

func TestFramebuffer_RGBA(t *testing.T) {
	fb := New()
	fb.Plot(1, 0, 1)

	on := [4]byte{0xff, 0xff, 0xff, 0xff}
	off := [4]byte{0x00, 0x00, 0x00, 0xff}
	data := fb.RGBA(nil, on, off)

	assert.Equal(t, Width*Height*4, len(data))
	assert.Equal(t, off, [4]byte(data[0:4]))
	assert.Equal(t, on, [4]byte(data[4:8]))

	// buffer is reused
	again := fb.RGBA(data, off, on)
	assert.Equal(t, &data[0], &again[0])
	assert.Equal(t, on, [4]byte(again[0:4]))
}

func TestFramebuffer_String(t *testing.T) {
	fb := New()
	fb.Plot(0, 0, 1)
	fb.Plot(63, 31, 1)

	lines := strings.Split(strings.TrimSuffix(fb.String(), "\n"), "\n")
	assert.Equal(t, Height, len(lines))
	assert.Equal(t, "#"+strings.Repeat(".", Width-1), lines[0])
	assert.Equal(t, strings.Repeat(".", Width-1)+"#", lines[Height-1])
}
