// Package input contains the state of the hexadecimal keypad and the mapping
// of host keyboard keys to keypad keys.
package input

import (
	"sync"
	"time"
)

// KeyCount is the number of keys of the keypad.
const KeyCount = 16

const pressQueueSize = 16

// Keypad tracks which of the 16 keys are held down and queues key presses
// for a machine that waits for a key. It is safe for concurrent use.
type Keypad struct {
	mu      sync.RWMutex
	pressed [KeyCount]bool
	presses chan uint8
}

// NewKeypad returns a keypad with all keys released.
func NewKeypad() *Keypad {
	return &Keypad{
		presses: make(chan uint8, pressQueueSize),
	}
}

// Press marks the key as held down and queues the press.
// Keys outside of 0x0-0xF are ignored. A full queue drops the press.
func (k *Keypad) Press(key uint8) {
	if key >= KeyCount {
		return
	}

	k.mu.Lock()
	k.pressed[key] = true
	k.mu.Unlock()

	select {
	case k.presses <- key:
	default:
	}
}

// Release marks the key as released.
func (k *Keypad) Release(key uint8) {
	if key >= KeyCount {
		return
	}

	k.mu.Lock()
	k.pressed[key] = false
	k.mu.Unlock()
}

// Tap presses the key and releases it after the hold duration. It is used
// by hosts that receive no key release events.
func (k *Keypad) Tap(key uint8, hold time.Duration) {
	k.Press(key)
	time.AfterFunc(hold, func() {
		k.Release(key)
	})
}

// ReleaseAll releases all keys and discards queued presses.
func (k *Keypad) ReleaseAll() {
	k.mu.Lock()
	k.pressed = [KeyCount]bool{}
	k.mu.Unlock()
	k.DiscardPresses()
}

// IsKeyPressed returns whether the key is held down.
func (k *Keypad) IsKeyPressed(key uint8) bool {
	if key >= KeyCount {
		return false
	}

	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.pressed[key]
}

// Presses returns the queue of key presses.
func (k *Keypad) Presses() <-chan uint8 {
	return k.presses
}

// NextPress returns the oldest queued key press without blocking.
func (k *Keypad) NextPress() (uint8, bool) {
	select {
	case key := <-k.presses:
		return key, true
	default:
		return 0, false
	}
}

// DiscardPresses empties the press queue.
func (k *Keypad) DiscardPresses() {
	for {
		if _, ok := k.NextPress(); !ok {
			return
		}
	}
}
