//go:build !headless

package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/retrogolib/log"
)

// Beeper plays a square wave tone of fixed length through oto.
type Beeper struct {
	ctx      *oto.Context
	duration time.Duration
	logger   *log.Logger

	mutex  sync.Mutex
	player *oto.Player
	beeps  int
}

// NewBeeper opens the audio device.
func NewBeeper(duration time.Duration, logger *log.Logger) (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	if logger == nil {
		logger = log.NewNop()
	}
	return &Beeper{
		ctx:      ctx,
		duration: duration,
		logger:   logger,
	}, nil
}

// Beep starts the tone unless it is still playing. It does not block.
func (b *Beeper) Beep() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player != nil {
		if b.player.IsPlaying() {
			return
		}
		_ = b.player.Close()
	}

	b.player = b.ctx.NewPlayer(newSquareWave(b.duration))
	b.player.Play()
	b.beeps++
	b.logger.Debug("Beep", log.Int("count", b.beeps))
}

// Beeps returns the number of started tones.
func (b *Beeper) Beeps() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.beeps
}

// Close stops a playing tone.
func (b *Beeper) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
