package viewer

import (
	"errors"
	"fmt"

	"glyphview/pkg/engine/input"
)

// KeySource delivers key presses, blocking until one is available.
// It returns input.ErrClosed once no more keys will come.
type KeySource interface {
	NextKey() (input.RawInput, error)
}

// Session is the input loop: it opens the viewport, then turns keys into
// scroll and quit commands until the reader quits or input ends.
type Session struct {
	vp       *Viewport
	keys     KeySource
	bindings input.Bindings
}

func NewSession(vp *Viewport, keys KeySource, bindings input.Bindings) *Session {
	if bindings == nil {
		bindings = input.DefaultBindings()
	}
	return &Session{vp: vp, keys: keys, bindings: bindings}
}

// Run blocks until the session is closed. Unbound keys and scrolls past either
// end are ignored. Closed input ends the session like a quit.
func (s *Session) Run() error {
	defer s.vp.Close()

	if err := s.vp.Open(); err != nil {
		return fmt.Errorf("initial render: %w", err)
	}

	for {
		raw, err := s.keys.NextKey()
		if errors.Is(err, input.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		intent := s.bindings.MapToIntent(input.NewDebouncedInput(raw))
		switch intent.Action {
		case input.ActionQuit:
			return nil
		case input.ActionScrollDown:
			_, err = s.vp.ScrollDown()
		case input.ActionScrollUp:
			_, err = s.vp.ScrollUp()
		}
		if err != nil {
			return fmt.Errorf("scroll: %w", err)
		}
	}
}

// ScriptKeys replays codes in order and then reports input.ErrClosed.
type ScriptKeys struct {
	codes []string
}

func NewScriptKeys(codes ...string) *ScriptKeys {
	return &ScriptKeys{codes: codes}
}

func (k *ScriptKeys) NextKey() (input.RawInput, error) {
	if len(k.codes) == 0 {
		return input.RawInput{}, input.ErrClosed
	}
	code := k.codes[0]
	k.codes = k.codes[1:]
	return input.RawInput{Device: input.DeviceScript, Code: code}, nil
}
