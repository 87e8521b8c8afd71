//go:build headless

package audio

import (
	"sync"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Beeper counts tones without an audio device.
type Beeper struct {
	logger *log.Logger

	mutex sync.Mutex
	beeps int
}

// NewBeeper returns a silent beeper.
func NewBeeper(_ time.Duration, logger *log.Logger) (*Beeper, error) {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Beeper{logger: logger}, nil
}

// Beep counts the tone.
func (b *Beeper) Beep() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.beeps++
	b.logger.Debug("Beep", log.Int("count", b.beeps))
}

// Beeps returns the number of started tones.
func (b *Beeper) Beeps() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.beeps
}

// Close does nothing.
func (b *Beeper) Close() error {
	return nil
}
