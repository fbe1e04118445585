package input

import (
	"bytes"
	"strings"
	"testing"
)

func TestKeyQueue_DropsWhenFullAndWarnsOnce(t *testing.T) {
	q := NewKeyQueue(2)
	var warnings bytes.Buffer
	q.Warn = &warnings

	codes := []string{"arrow_down", "arrow_down", "2", "8"}
	var accepted []bool
	for _, code := range codes {
		accepted = append(accepted, q.Offer(RawInput{Device: DeviceKeyboard, Code: code}))
	}
	want := []bool{true, true, false, false}
	for i := range want {
		if accepted[i] != want[i] {
			t.Errorf("Offer(%q) = %v, want %v", codes[i], accepted[i], want[i])
		}
	}
	if q.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", q.Dropped())
	}
	if n := strings.Count(warnings.String(), "Warning"); n != 1 {
		t.Errorf("got %d warnings, want 1: %q", n, warnings.String())
	}
	if !strings.Contains(warnings.String(), `"2"`) {
		t.Errorf("warning %q does not name the dropped key", warnings.String())
	}

	if ev := <-q.C(); ev.Code != "arrow_down" {
		t.Errorf("first queued code = %q, want arrow_down", ev.Code)
	}
	if !q.Offer(RawInput{Code: "5"}) {
		t.Error("Offer() after draining one slot = false, want true")
	}
}
