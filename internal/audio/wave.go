// Package audio plays the tone of the sound timer.
package audio

import (
	"encoding/binary"
	"io"
	"math"
	"time"
)

const (
	// SampleRate is the output sample rate in Hz.
	SampleRate = 44100

	toneFrequency = 440
	amplitude     = 0.25
	sampleSize    = 4 // mono float32
)

// squareWave produces a fixed length mono square wave as float32 little
// endian samples.
type squareWave struct {
	remaining  int
	position   int
	halfPeriod int
}

func newSquareWave(duration time.Duration) *squareWave {
	return &squareWave{
		remaining:  int(duration.Seconds() * SampleRate),
		halfPeriod: max(1, SampleRate/toneFrequency/2),
	}
}

// Read fills p with the next samples and returns io.EOF once the tone is
// complete.
func (w *squareWave) Read(p []byte) (int, error) {
	if w.remaining == 0 {
		return 0, io.EOF
	}

	samples := min(len(p)/sampleSize, w.remaining)
	for i := range samples {
		value := float32(amplitude)
		if (w.position/w.halfPeriod)%2 == 1 {
			value = -value
		}
		binary.LittleEndian.PutUint32(p[i*sampleSize:], math.Float32bits(value))
		w.position++
	}

	w.remaining -= samples
	return samples * sampleSize, nil
}
