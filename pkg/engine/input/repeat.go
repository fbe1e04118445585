package input

import "time"

const (
	KeyRepeatInitialDelay = 500 * time.Millisecond // Initial delay before first repeat
	KeyRepeatInterval     = 100 * time.Millisecond // Interval between repeat events
)

// keyRepeatInfo tracks the repeat state for a held key
type keyRepeatInfo struct {
	firstPressed time.Time
	lastRepeat   time.Time
}

// Repeater turns polled key state into press events with auto-repeat, for
// devices that report whether a key is down rather than key events.
type Repeater struct {
	delay    time.Duration
	interval time.Duration
	state    map[string]keyRepeatInfo
}

// NewRepeater uses KeyRepeatInitialDelay and KeyRepeatInterval.
func NewRepeater() *Repeater {
	return &Repeater{
		delay:    KeyRepeatInitialDelay,
		interval: KeyRepeatInterval,
		state:    make(map[string]keyRepeatInfo),
	}
}

// ShouldFire reports whether key should trigger at now: on the first poll it is
// down, then once per interval after the initial delay while held. Every key
// must be polled each tick so releases are seen.
func (r *Repeater) ShouldFire(key string, pressed bool, now time.Time) bool {
	st, exists := r.state[key]

	if !pressed {
		// Key released - clean up state
		delete(r.state, key)
		return false
	}

	if !exists {
		// First press - record it and trigger immediately
		r.state[key] = keyRepeatInfo{firstPressed: now, lastRepeat: now}
		return true
	}

	// Key is held - check if we should repeat
	if now.Sub(st.firstPressed) >= r.delay && now.Sub(st.lastRepeat) >= r.interval {
		st.lastRepeat = now
		r.state[key] = st
		return true
	}
	return false
}
