// Package tui shows the viewer surface in a truecolor terminal using half-block
// characters and reads keys from the terminal in raw mode.
package tui

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	gcolor "github.com/gookit/color"

	"glyphview/pkg/engine/input"
	"glyphview/pkg/engine/surface"
	"glyphview/pkg/engine/terminal"
	"glyphview/pkg/viewer"
)

const halfBlock = "▀"

// Control sequences for the alternate screen and cursor.
const (
	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	cursorHome     = "\x1b[H"
)

// Options configures the terminal view.
type Options struct {
	// Step is how many device pixels one terminal column covers. Each cell shows
	// Step x 2*Step pixels. Defaults to 1.
	Step int
	// Cols and Rows crop the output. Zero means the size of the terminal.
	Cols int
	Rows int
}

// Screen is a viewer.Device that draws into a terminal.
type Screen struct {
	fb   *surface.Framebuffer
	out  io.Writer
	keys viewer.KeySource
	opts Options
}

// New creates a screen writing frames to out and reading keys from keys.
func New(out io.Writer, keys viewer.KeySource, opts Options) *Screen {
	if opts.Step < 1 {
		opts.Step = 1
	}
	if opts.Cols <= 0 || opts.Rows <= 0 {
		w, h := terminal.GetSize(os.Stdout)
		if opts.Cols <= 0 {
			opts.Cols = w
		}
		if opts.Rows <= 0 {
			opts.Rows = h
		}
	}
	s := &Screen{out: out, keys: keys, opts: opts}
	s.fb = surface.NewFramebuffer(viewer.ScreenWidth, viewer.ScreenHeight, surface.WithPresenter(s.present))
	return s
}

// Open prepares the controlling terminal: raw-mode keys (from /dev/tty when
// stdin is a pipe) and the alternate screen. The returned function restores it.
func Open(opts Options) (*Screen, func() error, error) {
	keyFile := os.Stdin
	var tty *os.File
	if !terminal.IsTerminal(os.Stdin) {
		f, err := terminal.OpenTTY()
		if err != nil {
			return nil, nil, fmt.Errorf("no terminal to read keys from: %w", err)
		}
		tty = f
		keyFile = f
	}

	keys, err := input.OpenTerminalKeys(keyFile)
	if err != nil {
		if tty != nil {
			tty.Close()
		}
		return nil, nil, err
	}

	out := bufio.NewWriter(os.Stdout)
	s := New(&flushWriter{out}, keys, opts)
	fmt.Fprint(s.out, enterAltScreen+hideCursor)

	restore := func() error {
		fmt.Fprint(s.out, showCursor+leaveAltScreen)
		err := keys.Close()
		if tty != nil {
			tty.Close()
		}
		return err
	}
	return s, restore, nil
}

// flushWriter flushes after every write so each frame appears at once.
type flushWriter struct {
	w *bufio.Writer
}

func (f *flushWriter) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	if err != nil {
		return n, err
	}
	return n, f.w.Flush()
}

// Surface implements viewer.Device.
func (s *Screen) Surface() surface.Surface {
	return s.fb
}

// NextKey implements viewer.Device.
func (s *Screen) NextKey() (input.RawInput, error) {
	return s.keys.NextKey()
}

func (s *Screen) present(img *image.RGBA) error {
	lines := Render(img, s.opts.Step, s.opts.Cols, s.opts.Rows)
	_, err := io.WriteString(s.out, cursorHome+strings.Join(lines, "\r\n"))
	return err
}

// Render converts img into terminal lines of half blocks, at most cols wide and
// rows high. The upper half of each cell is the foreground, the lower half the
// background. Each half shows the brightest pixel of its step x step block so
// thin strokes survive downsampling.
func Render(img *image.RGBA, step, cols, rows int) []string {
	b := img.Bounds()
	cols = min(cols, (b.Dx()+step-1)/step)
	rows = min(rows, (b.Dy()+2*step-1)/(2*step))

	lines := make([]string, 0, rows)
	for cy := 0; cy < rows; cy++ {
		var sb strings.Builder
		y := b.Min.Y + cy*2*step

		runStart := 0
		var runFg, runBg color.RGBA
		flush := func(end int) {
			if end == runStart {
				return
			}
			style := gcolor.NewRGBStyle(
				gcolor.RGB(runFg.R, runFg.G, runFg.B),
				gcolor.RGB(runBg.R, runBg.G, runBg.B, true),
			)
			sb.WriteString(style.Sprint(strings.Repeat(halfBlock, end-runStart)))
		}

		for cx := 0; cx < cols; cx++ {
			x := b.Min.X + cx*step
			fg := brightest(img, image.Rect(x, y, x+step, y+step))
			bg := brightest(img, image.Rect(x, y+step, x+step, y+2*step))
			if cx > 0 && (fg != runFg || bg != runBg) {
				flush(cx)
				runStart = cx
			}
			runFg, runBg = fg, bg
		}
		flush(cols)
		lines = append(lines, sb.String())
	}
	return lines
}

// brightest returns the per-channel maximum over r, clipped to img.
func brightest(img *image.RGBA, r image.Rectangle) color.RGBA {
	r = r.Intersect(img.Bounds())
	c := color.RGBA{A: 0xff}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := img.RGBAAt(x, y)
			c.R = max(c.R, p.R)
			c.G = max(c.G, p.G)
			c.B = max(c.B, p.B)
		}
	}
	return c
}
