package input

import (
	"testing"
	"time"
)

func TestRepeater(t *testing.T) {
	r := NewRepeater()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

	steps := []struct {
		ms      int
		pressed bool
		want    bool
	}{
		{0, true, true},     // first press
		{16, true, false},   // held, within initial delay
		{499, true, false},  // still within delay
		{500, true, true},   // delay elapsed, last repeat was at 0
		{550, true, false},  // within interval
		{600, true, true},   // interval elapsed
		{650, false, false}, // released
		{660, true, true},   // pressed again fires immediately
		{700, true, false},
	}
	for _, s := range steps {
		if got := r.ShouldFire("arrow_down", s.pressed, at(s.ms)); got != s.want {
			t.Errorf("ShouldFire(pressed=%v) at %dms = %v, want %v", s.pressed, s.ms, got, s.want)
		}
	}
}

func TestRepeater_KeysIndependent(t *testing.T) {
	r := NewRepeater()
	now := time.Now()
	if !r.ShouldFire("a", true, now) || !r.ShouldFire("b", true, now) {
		t.Fatal("first presses of distinct keys must both fire")
	}
	if r.ShouldFire("a", true, now.Add(10*time.Millisecond)) {
		t.Error("held key fired early")
	}
}
