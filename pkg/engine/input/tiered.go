package input

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrClosed is returned by a key source once no more keys will arrive
// (window closed, stdin at EOF).
var ErrClosed = errors.New("input closed")

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
	DeviceScript
)

// Action represents a high-level intent in the viewer.
type Action int

const (
	ActionNone Action = iota
	ActionScrollUp
	ActionScrollDown
	ActionQuit
)

// Intent is the 4th-layer, high-level description of what the reader wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-independent key name (e.g. "arrow_up", "enter", "8").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after debouncing/deduplication.
// Devices already deliver one event per press (or per repeat tick), so this is
// a thin copy that keeps the layering explicit.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// Bindings maps key codes to actions (3rd layer).
// Multiple codes may point to the same Action.
type Bindings map[string]Action

// DefaultBindings returns the keypad-style layout: confirm, escape or 5 quits,
// 2 and 8 scroll like the arrows they sit on.
func DefaultBindings() Bindings {
	return Bindings{
		"enter":  ActionQuit,
		"escape": ActionQuit,
		"5":      ActionQuit,

		"arrow_down": ActionScrollDown,
		"2":          ActionScrollDown,

		"arrow_up": ActionScrollUp,
		"8":        ActionScrollUp,
	}
}

// Bind maps code to action, replacing whatever code was bound to before.
func (b Bindings) Bind(code string, action Action) {
	b[code] = action
}

// Merge adds bindings given as action name -> codes. The default codes are
// reserved and cannot be rebound. Nothing is added if any entry is rejected.
func (b Bindings) Merge(extra map[string][]string) error {
	reserved := DefaultBindings()
	resolved := make(map[string]Action)
	for name, codes := range extra {
		act, ok := ActionByName(name)
		if !ok {
			return fmt.Errorf("unknown action %q", name)
		}
		for _, code := range codes {
			if code == "" {
				return fmt.Errorf("empty key for action %q", name)
			}
			if prev, ok := reserved[code]; ok && prev != act {
				return fmt.Errorf("key %q is reserved for %s", code, ActionName(prev))
			}
			resolved[code] = act
		}
	}
	for code, act := range resolved {
		b.Bind(code, act)
	}
	return nil
}

// MapToIntent is the 3rd+4th layer: it applies the bindings to a debounced
// input and returns a high-level Intent.
func (b Bindings) MapToIntent(ev DebouncedInput) Intent {
	if act, ok := b[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ByAction returns the bindings grouped by action.
func (b Bindings) ByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range b {
		result[act] = append(result[act], code)
	}
	// Stable ordering of codes within each action.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionScrollUp:
		return "Scroll Up"
	case ActionScrollDown:
		return "Scroll Down"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// ActionByName resolves the identifiers used in config files.
func ActionByName(name string) (Action, bool) {
	switch name {
	case "scroll_up":
		return ActionScrollUp, true
	case "scroll_down":
		return ActionScrollDown, true
	case "quit":
		return ActionQuit, true
	}
	return ActionNone, false
}
