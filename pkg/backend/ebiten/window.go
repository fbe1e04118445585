// Package ebiten shows the viewer surface in a desktop window and reads keys from it.
package ebiten

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"

	"glyphview/pkg/engine/input"
	"glyphview/pkg/engine/surface"
	"glyphview/pkg/viewer"
)

const (
	statusHeight   = 12
	statusFontSize = 9
)

var (
	colorStatusBackground = color.RGBA{20, 20, 20, 255}
	colorStatusText       = color.RGBA{120, 130, 180, 255}
)

// Options configures the window.
type Options struct {
	Title string
	// Scale multiplies the window size; the framebuffer stays at device resolution.
	Scale int
	// Status shows the visible line range in a strip under the device screen.
	Status bool
}

// Window is a viewer.Device backed by an Ebiten window. Ebiten owns the main
// goroutine, so the session runs on its own goroutine and talks to the game
// loop through the presented frame and a key channel.
type Window struct {
	opts Options
	fb   *surface.Framebuffer

	frameMu sync.Mutex
	frame   []byte
	dirty   bool
	canvas  *ebiten.Image

	keys      *input.KeyQueue
	done      chan struct{}
	closeOnce sync.Once
	finished  atomic.Bool

	repeater *input.Repeater

	statusMu   sync.Mutex
	status     string
	statusFace *text.GoTextFace

	windowOpenedLogged bool
}

// New creates a window-backed device with a viewer.ScreenWidth x viewer.ScreenHeight surface.
func New(opts Options) (*Window, error) {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	w := &Window{
		opts:     opts,
		keys:     input.NewKeyQueue(16),
		done:     make(chan struct{}),
		repeater: input.NewRepeater(),
	}
	w.fb = surface.NewFramebuffer(viewer.ScreenWidth, viewer.ScreenHeight, surface.WithPresenter(w.present))

	if opts.Status {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to load status font: %w", err)
		}
		w.statusFace = &text.GoTextFace{Source: src, Size: statusFontSize}
	}
	return w, nil
}

// Surface implements viewer.Device.
func (w *Window) Surface() surface.Surface {
	return w.fb
}

// NextKey implements viewer.Device. It reports input.ErrClosed once the window is closed.
func (w *Window) NextKey() (input.RawInput, error) {
	select {
	case k := <-w.keys.C():
		return k, nil
	case <-w.done:
		return input.RawInput{}, input.ErrClosed
	}
}

// Rendered implements viewer.Observer and feeds the status strip.
func (w *Window) Rendered(ev viewer.RenderEvent) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status = statusText(ev)
}

func statusText(ev viewer.RenderEvent) string {
	if ev.Total == 0 {
		return "(empty)"
	}
	return fmt.Sprintf("lines %d-%d of %d", ev.FirstLine+1, ev.FirstLine+ev.Visible, ev.Total)
}

// Run opens the window and runs session until it returns or the window is closed.
func (w *Window) Run(session func() error) error {
	b := w.fb.Bounds()
	height := b.Dy()
	if w.opts.Status {
		height += statusHeight
	}
	ebiten.SetWindowSize(b.Dx()*w.opts.Scale, height*w.opts.Scale)
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetWindowClosingHandled(true)

	errc := make(chan error, 1)
	go func() {
		errc <- session()
		w.finished.Store(true)
	}()

	if err := ebiten.RunGame(w); err != nil {
		w.close()
		<-errc
		return fmt.Errorf("window: %w", err)
	}
	w.close()
	return <-errc
}

func (w *Window) close() {
	w.closeOnce.Do(func() { close(w.done) })
}

// present copies the finished frame for the next Draw.
func (w *Window) present(img *image.RGBA) error {
	w.frameMu.Lock()
	defer w.frameMu.Unlock()
	if len(w.frame) != len(img.Pix) {
		w.frame = make([]byte, len(img.Pix))
	}
	copy(w.frame, img.Pix)
	w.dirty = true
	return nil
}

// Update polls keys (Ebiten interface)
func (w *Window) Update() error {
	if !w.windowOpenedLogged {
		w.windowOpenedLogged = true
		ww, wh := ebiten.WindowSize()
		log.Printf("Main window opened successfully (%dx%d)", ww, wh)
	}

	if w.finished.Load() {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() {
		w.close()
		return ebiten.Termination
	}

	for _, code := range w.pressedCodes() {
		w.keys.Offer(input.RawInput{Device: input.DeviceKeyboard, Code: code, Timestamp: time.Now()})
	}
	return nil
}

// Draw shows the last presented frame (Ebiten interface)
func (w *Window) Draw(screen *ebiten.Image) {
	b := w.fb.Bounds()
	if w.canvas == nil {
		w.canvas = ebiten.NewImage(b.Dx(), b.Dy())
	}

	w.frameMu.Lock()
	if w.dirty {
		w.canvas.WritePixels(w.frame)
		w.dirty = false
	}
	w.frameMu.Unlock()

	screen.DrawImage(w.canvas, nil)

	if w.statusFace != nil {
		w.drawStatus(screen, b.Dy())
	}
}

func (w *Window) drawStatus(screen *ebiten.Image, top int) {
	strip := screen.SubImage(image.Rect(0, top, screen.Bounds().Dx(), top+statusHeight)).(*ebiten.Image)
	strip.Fill(colorStatusBackground)

	w.statusMu.Lock()
	s := w.status
	w.statusMu.Unlock()

	op := &text.DrawOptions{}
	op.GeoM.Translate(2, float64(top)+1)
	op.ColorScale.ScaleWithColor(colorStatusText)
	text.Draw(screen, s, w.statusFace, op)
}

// Layout returns the device resolution (Ebiten interface)
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := w.fb.Bounds()
	if w.opts.Status {
		return b.Dx(), b.Dy() + statusHeight
	}
	return b.Dx(), b.Dy()
}
