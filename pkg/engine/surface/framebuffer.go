package surface

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Presenter receives the finished frame. It must not retain img past the call.
type Presenter func(img *image.RGBA) error

// Framebuffer is a Surface backed by an *image.RGBA.
type Framebuffer struct {
	img     *image.RGBA
	caps    Caps
	present Presenter
	frames  int
}

// FramebufferOption configures a Framebuffer.
type FramebufferOption func(*Framebuffer)

// WithCaps overrides the default capabilities (in-place copy supported).
func WithCaps(c Caps) FramebufferOption {
	return func(f *Framebuffer) {
		f.caps = c
	}
}

// WithPresenter calls p on every Present.
func WithPresenter(p Presenter) FramebufferOption {
	return func(f *Framebuffer) {
		f.present = p
	}
}

// NewFramebuffer creates a width x height framebuffer cleared to Background.
func NewFramebuffer(width, height int, opts ...FramebufferOption) *Framebuffer {
	f := &Framebuffer{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		caps: Caps{InPlaceCopy: true},
	}
	for _, opt := range opts {
		opt(f)
	}
	f.Fill(f.img.Bounds(), Background)
	return f
}

func (f *Framebuffer) Bounds() image.Rectangle {
	return f.img.Bounds()
}

func (f *Framebuffer) Fill(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(f.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(f.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func (f *Framebuffer) Set(x, y int, c color.RGBA) {
	f.img.SetRGBA(x, y, c)
}

func (f *Framebuffer) Copy(dst image.Point, src image.Rectangle) {
	draw.Copy(f.img, dst, f.img, src, draw.Src, nil)
}

// Present hands the frame to the presenter, if any, and counts it.
func (f *Framebuffer) Present() error {
	f.frames++
	if f.present == nil {
		return nil
	}
	return f.present(f.img)
}

func (f *Framebuffer) Caps() Caps {
	return f.caps
}

// Image exposes the pixels. Callers must treat it as read-only.
func (f *Framebuffer) Image() *image.RGBA {
	return f.img
}

// Frames returns how many times Present has been called.
func (f *Framebuffer) Frames() int {
	return f.frames
}
