// Package timer implements the CHIP-8 countdown timers.
package timer

// Timer is an 8-bit countdown counter that is ticked once per machine cycle.
// A timer becomes active on the first tick that observes a nonzero value
// while inactive, and it becomes inactive again once the value reaches zero.
type Timer struct {
	value      uint8
	active     bool
	onActivate func()
}

// New returns a new timer. The callback is invoked once every time the timer
// transitions from idle to active, it may be nil.
func New(onActivate func()) *Timer {
	if onActivate == nil {
		onActivate = func() {}
	}
	return &Timer{
		onActivate: onActivate,
	}
}

// Value returns the current countdown value.
func (t *Timer) Value() uint8 {
	return t.value
}

// Set assigns a new countdown value. It does not change the active state,
// activation happens on the next tick.
func (t *Timer) Set(value uint8) {
	t.value = value
}

// Active returns whether the timer is currently counting down.
func (t *Timer) Active() bool {
	return t.active
}

// Reset returns the timer to the idle state.
func (t *Timer) Reset() {
	t.value = 0
	t.active = false
}

// Tick advances the timer by one cycle.
// The order of the steps is significant: a freshly assigned value is
// decremented on the same tick that activates the timer.
func (t *Timer) Tick() {
	// saturates at zero, an active timer set to 0 must not wrap to 255
	if t.active && t.value > 0 {
		t.value--
	}

	if t.value > 0 && !t.active {
		t.active = true
		t.value--
		t.onActivate()
	}

	if t.value == 0 {
		t.active = false
	}
}
