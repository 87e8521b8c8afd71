package input

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad_PressRelease(t *testing.T) {
	k := NewKeypad()
	assert.Equal(t, false, k.IsKeyPressed(0xA))

	k.Press(0xA)
	assert.Equal(t, true, k.IsKeyPressed(0xA))
	assert.Equal(t, false, k.IsKeyPressed(0xB))

	k.Release(0xA)
	assert.Equal(t, false, k.IsKeyPressed(0xA))
}

func TestKeypad_InvalidKey(t *testing.T) {
	k := NewKeypad()
	k.Press(KeyCount)
	k.Release(KeyCount)
	assert.Equal(t, false, k.IsKeyPressed(KeyCount))

	_, ok := k.NextPress()
	assert.Equal(t, false, ok)
}

func TestKeypad_PressQueue(t *testing.T) {
	k := NewKeypad()
	k.Press(3)
	k.Press(7)

	key, ok := k.NextPress()
	assert.Equal(t, true, ok)
	assert.Equal(t, uint8(3), key)

	key = <-k.Presses()
	assert.Equal(t, uint8(7), key)

	_, ok = k.NextPress()
	assert.Equal(t, false, ok)
}

func TestKeypad_PressQueueFull(t *testing.T) {
	k := NewKeypad()
	for range pressQueueSize + 4 {
		k.Press(1)
	}

	var queued int
	for {
		if _, ok := k.NextPress(); !ok {
			break
		}
		queued++
	}
	assert.Equal(t, pressQueueSize, queued)
}

func TestKeypad_ReleaseAll(t *testing.T) {
	k := NewKeypad()
	k.Press(1)
	k.Press(0xF)

	k.ReleaseAll()
	assert.Equal(t, false, k.IsKeyPressed(1))
	assert.Equal(t, false, k.IsKeyPressed(0xF))

	_, ok := k.NextPress()
	assert.Equal(t, false, ok)
}

func TestKeypad_Tap(t *testing.T) {
	k := NewKeypad()
	k.Tap(5, time.Millisecond)
	assert.Equal(t, true, k.IsKeyPressed(5))

	deadline := time.Now().Add(time.Second)
	for k.IsKeyPressed(5) && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, false, k.IsKeyPressed(5))
}

func TestKeyForRune(t *testing.T) {
	tests := []struct {
		r   rune
		key uint8
	}{
		{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xC},
		{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xD},
		{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xE},
		{'z', 0xA}, {'x', 0x0}, {'c', 0xB}, {'v', 0xF},
		{'Q', 0x4}, {'V', 0xF},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			key, ok := KeyForRune(tt.r)
			assert.Equal(t, true, ok)
			assert.Equal(t, tt.key, key)
		})
	}

	_, ok := KeyForRune('p')
	assert.Equal(t, false, ok)
}

func TestRuneForKey(t *testing.T) {
	for key := range uint8(KeyCount) {
		r, ok := RuneForKey(key)
		assert.Equal(t, true, ok)

		mapped, ok := KeyForRune(r)
		assert.Equal(t, true, ok)
		assert.Equal(t, key, mapped)
	}

	_, ok := RuneForKey(KeyCount)
	assert.Equal(t, false, ok)
}
