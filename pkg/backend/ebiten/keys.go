package ebiten

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// repeatKeys scroll, so holding them repeats like a held key on the device keypad.
var repeatKeys = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyDigit2, "2"},
	{ebiten.KeyNumpad2, "2"},
	{ebiten.KeyDigit8, "8"},
	{ebiten.KeyNumpad8, "8"},
}

// pressKeys trigger once per press.
var pressKeys = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyEnter, "enter"},
	{ebiten.KeyNumpadEnter, "enter"},
	{ebiten.KeyEscape, "escape"},
	{ebiten.KeyDigit5, "5"},
	{ebiten.KeyNumpad5, "5"},
	{ebiten.KeySpace, "space"},
	{ebiten.KeyTab, "tab"},
	{ebiten.KeyBackspace, "backspace"},
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
}

// pressedCodes returns the key codes that fire this tick.
func (w *Window) pressedCodes() []string {
	var codes []string
	now := time.Now()
	for _, k := range repeatKeys {
		if w.repeater.ShouldFire(k.key.String(), ebiten.IsKeyPressed(k.key), now) {
			codes = append(codes, k.code)
		}
	}
	for _, k := range pressKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			codes = append(codes, k.code)
		}
	}
	// Letters and the remaining digits are only reachable through config bindings.
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if code, ok := extraCode(key.String()); ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// extraCode maps Ebiten key names like "J" or "Digit7" to binding codes.
// Keys already handled above are left out.
func extraCode(name string) (string, bool) {
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return strings.ToLower(name), true
	}
	if digit, ok := strings.CutPrefix(name, "Digit"); ok && len(digit) == 1 {
		switch digit {
		case "2", "5", "8":
			return "", false
		}
		return digit, true
	}
	return "", false
}
