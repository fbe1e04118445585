package viewer

import (
	"errors"
	"image"
	"time"

	"glyphview/pkg/engine/glyph"
	"glyphview/pkg/engine/surface"
	"glyphview/pkg/engine/wrap"
)

var (
	// ErrNotOpen is returned when scrolling a viewport that has not been drawn yet.
	ErrNotOpen = errors.New("viewport not open")
	// ErrClosed is returned when using a viewport after Close.
	ErrClosed = errors.New("viewport closed")
)

// State is the lifecycle of a Viewport.
type State int

const (
	StateInitial State = iota
	StateSettled
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateSettled:
		return "settled"
	case StateClosed:
		return "closed"
	default:
		return "initial"
	}
}

// Viewport shows a window of display lines on a surface and scrolls it one
// line at a time. When the surface can copy in place, a scroll shifts the
// existing pixels and draws only the row that came into view.
type Viewport struct {
	lines    []wrap.DisplayLine
	geom     Geometry
	surf     surface.Surface
	cache    *glyph.Cache
	render   lineRenderer
	observer Observer

	first int
	state State
}

// ViewportOption configures a Viewport.
type ViewportOption func(*Viewport)

// WithTintAll draws every line in the highlight color.
func WithTintAll(on bool) ViewportOption {
	return func(v *Viewport) {
		v.render.tintAll = on
	}
}

// WithViewportObserver reports every presented frame to o.
func WithViewportObserver(o Observer) ViewportOption {
	return func(v *Viewport) {
		v.observer = o
	}
}

// NewViewport prepares lines for display on s. Nothing is drawn until Open.
func NewViewport(lines []wrap.DisplayLine, geom Geometry, s surface.Surface, cache *glyph.Cache, opts ...ViewportOption) *Viewport {
	v := &Viewport{
		lines:  lines,
		geom:   geom,
		surf:   s,
		cache:  cache,
		render: lineRenderer{geom: geom, cache: cache},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Open draws the first window and presents it.
func (v *Viewport) Open() error {
	switch v.state {
	case StateClosed:
		return ErrClosed
	case StateSettled:
		return nil
	}
	if err := v.repaint(); err != nil {
		return err
	}
	v.state = StateSettled
	return nil
}

// ScrollDown moves the window one line towards the end. It reports false, and
// changes nothing, when the last line is already visible.
func (v *Viewport) ScrollDown() (bool, error) {
	if err := v.checkSettled(); err != nil {
		return false, err
	}
	if len(v.lines)-v.first <= v.geom.MaxLines {
		return false, nil
	}
	v.first++

	if !v.surf.Caps().InPlaceCopy {
		return true, v.repaint()
	}

	start := time.Now()
	area := v.geom.TextArea()
	h := v.geom.CharHeight
	v.surf.Copy(area.Min, image.Rect(area.Min.X, area.Min.Y+h, area.Max.X, area.Max.Y))
	last := v.geom.MaxLines - 1
	if err := v.patch(last, v.first+last); err != nil {
		return true, err
	}
	return true, v.present(EventScroll, 1, start)
}

// ScrollUp moves the window one line towards the start. It reports false, and
// changes nothing, at the top.
func (v *Viewport) ScrollUp() (bool, error) {
	if err := v.checkSettled(); err != nil {
		return false, err
	}
	if v.first == 0 {
		return false, nil
	}
	v.first--

	if !v.surf.Caps().InPlaceCopy {
		return true, v.repaint()
	}

	start := time.Now()
	area := v.geom.TextArea()
	h := v.geom.CharHeight
	v.surf.Copy(image.Pt(area.Min.X, area.Min.Y+h), image.Rect(area.Min.X, area.Min.Y, area.Max.X, area.Max.Y-h))
	if err := v.patch(0, v.first); err != nil {
		return true, err
	}
	return true, v.present(EventScroll, 1, start)
}

// Close ends the session. The surface keeps its last frame.
func (v *Viewport) Close() {
	v.state = StateClosed
}

// FirstVisible returns the index of the top visible line.
func (v *Viewport) FirstVisible() int {
	return v.first
}

// Visible returns how many lines the window currently shows.
func (v *Viewport) Visible() int {
	return min(v.geom.MaxLines, len(v.lines)-v.first)
}

// Len returns the number of display lines.
func (v *Viewport) Len() int {
	return len(v.lines)
}

func (v *Viewport) State() State {
	return v.state
}

func (v *Viewport) checkSettled() error {
	switch v.state {
	case StateInitial:
		return ErrNotOpen
	case StateClosed:
		return ErrClosed
	}
	return nil
}

// repaint clears the text area and draws every visible line.
func (v *Viewport) repaint() error {
	start := time.Now()
	v.surf.Fill(v.geom.TextArea(), surface.Background)
	n := v.Visible()
	for row := 0; row < n; row++ {
		if err := v.render.drawLine(v.surf, v.lines[v.first+row], row); err != nil {
			return err
		}
	}
	return v.present(EventRepaint, n, start)
}

// patch clears visible row and draws line index into it.
func (v *Viewport) patch(row, index int) error {
	v.surf.Fill(v.geom.Row(row), surface.Background)
	return v.render.drawLine(v.surf, v.lines[index], row)
}

func (v *Viewport) present(kind EventKind, lines int, start time.Time) error {
	if err := v.surf.Present(); err != nil {
		return err
	}
	if v.observer != nil {
		v.observer.Rendered(RenderEvent{
			Kind:      kind,
			FirstLine: v.first,
			Visible:   v.Visible(),
			Total:     len(v.lines),
			Lines:     lines,
			Duration:  time.Since(start),
			Cache:     v.cache.Stats(),
		})
	}
	return nil
}
