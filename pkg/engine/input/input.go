package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// TerminalKeys reads single key presses from a terminal in raw mode.
type TerminalKeys struct {
	reader   *bufio.Reader
	fd       int
	oldState *term.State
}

// OpenTerminalKeys puts f into raw mode and reads keys from it.
// Close restores the previous terminal state.
func OpenTerminalKeys(f *os.File) (*TerminalKeys, error) {
	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("cannot set terminal to raw mode: %w", err)
	}
	return &TerminalKeys{
		reader:   bufio.NewReader(f),
		fd:       fd,
		oldState: oldState,
	}, nil
}

// NewKeyReader decodes keys from r without touching any terminal state.
func NewKeyReader(r io.Reader) *TerminalKeys {
	return &TerminalKeys{reader: bufio.NewReader(r), fd: -1}
}

// NextKey blocks until a recognizable key arrives. Unknown escape sequences are
// skipped. Ctrl+C, Ctrl+D and end of input report ErrClosed.
func (k *TerminalKeys) NextKey() (RawInput, error) {
	for {
		code, err := k.readCode()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return RawInput{}, ErrClosed
			}
			return RawInput{}, fmt.Errorf("cannot read key: %w", err)
		}
		if code != "" {
			return RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}, nil
		}
	}
}

// readCode returns "" for input that maps to no key.
func (k *TerminalKeys) readCode() (string, error) {
	r, _, err := k.reader.ReadRune()
	if err != nil {
		return "", err
	}

	switch r {
	case 0x1b:
		return k.readEscape()
	case '\r', '\n':
		return "enter", nil
	case 3, 4:
		return "", io.EOF
	case 127, 8:
		return "backspace", nil
	case '\t':
		return "tab", nil
	case ' ':
		return "space", nil
	}

	if r < 32 || r == 0xfffd {
		return "", nil
	}
	return string(r), nil
}

// readEscape decodes what follows an ESC byte. A lone ESC (nothing else
// buffered) is the escape key itself.
func (k *TerminalKeys) readEscape() (string, error) {
	if k.reader.Buffered() == 0 {
		return "escape", nil
	}

	b2, err := k.reader.ReadByte()
	if err != nil {
		return "escape", nil
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		k.reader.UnreadByte()
		return "escape", nil
	}

	for {
		b3, err := k.reader.ReadByte()
		if err != nil {
			return "", err
		}
		switch b3 {
		case 'A':
			return "arrow_up", nil
		case 'B':
			return "arrow_down", nil
		case 'C':
			return "arrow_right", nil
		case 'D':
			return "arrow_left", nil
		}
		// Parameters and intermediates; anything else ends an unknown sequence.
		if b3 < 0x20 || b3 > 0x3f {
			return "", nil
		}
	}
}

// Close restores the terminal, if OpenTerminalKeys changed it.
func (k *TerminalKeys) Close() error {
	if k.oldState == nil {
		return nil
	}
	err := term.Restore(k.fd, k.oldState)
	k.oldState = nil
	return err
}
