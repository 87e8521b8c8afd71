// Package display implements the logical CHIP-8 framebuffer.
//
// The framebuffer only holds the monochrome pixel state and a dirty flag.
// Turning it into an on-screen image is left to the renderers of the host.
package display

import "strings"

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Framebuffer is a fixed size grid of binary pixels.
type Framebuffer struct {
	pixels [Height][Width]uint8
	dirty  bool
}

// New returns a new cleared framebuffer.
func New() *Framebuffer {
	return &Framebuffer{}
}

// Clear turns all pixels off and marks the framebuffer as dirty.
func (f *Framebuffer) Clear() {
	f.pixels = [Height][Width]uint8{}
	f.dirty = true
}

// Plot XORs the given color bit onto the pixel at the coordinates.
// Coordinates wrap around the screen edges. The returned collision value is 1
// if a lit pixel was turned off.
// Plot does not mark the framebuffer dirty, callers plotting a whole sprite
// call MarkDirty once it is complete.
func (f *Framebuffer) Plot(x, y int, color uint8) uint8 {
	px := x % Width
	py := y % Height
	color &= 1

	collision := color & f.pixels[py][px]
	f.pixels[py][px] ^= color
	return collision
}

// Pixel returns the pixel value at the coordinates, 0 or 1.
func (f *Framebuffer) Pixel(x, y int) uint8 {
	return f.pixels[y%Height][x%Width]
}

// Dirty returns whether the framebuffer changed since it was last consumed.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// MarkDirty flags the framebuffer as changed.
func (f *Framebuffer) MarkDirty() {
	f.dirty = true
}

// MarkClean clears the dirty flag after a renderer consumed the frame.
func (f *Framebuffer) MarkClean() {
	f.dirty = false
}

// Reset clears all pixels and the dirty flag.
func (f *Framebuffer) Reset() {
	f.pixels = [Height][Width]uint8{}
	f.dirty = false
}

// Rows returns a copy of the pixel grid.
func (f *Framebuffer) Rows() [Height][Width]uint8 {
	return f.pixels
}

// RGBA converts the framebuffer to 4 byte per pixel RGBA data, as expected by
// image.RGBA and ebiten.Image.WritePixels. The destination slice is reused if
// it is large enough.
func (f *Framebuffer) RGBA(dst []byte, on, off [4]byte) []byte {
	size := Width * Height * 4
	if len(dst) < size {
		dst = make([]byte, size)
	}

	for y := range Height {
		for x := range Width {
			c := off
			if f.pixels[y][x] != 0 {
				c = on
			}
			offset := (y*Width + x) * 4
			copy(dst[offset:offset+4], c[:])
		}
	}
	return dst[:size]
}

// String renders the framebuffer as text, one line per pixel row,
// using '#' for lit and '.' for unlit pixels.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)

	for y := range Height {
		for x := range Width {
			if f.pixels[y][x] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
