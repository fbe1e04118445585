// Package viewer pages wrapped text through a fixed-size pixel surface.
package viewer

import (
	"fmt"
	"io"
	"os"

	"glyphview/pkg/config"
	"glyphview/pkg/engine/glyph"
	"glyphview/pkg/engine/input"
	"glyphview/pkg/engine/surface"
	"glyphview/pkg/engine/wrap"
)

// Device is the hardware a session runs on: a surface to draw on and keys to read.
type Device interface {
	KeySource
	Surface() surface.Surface
}

type options struct {
	observer Observer
	warn     io.Writer
}

// Option configures Display.
type Option func(*options)

// WithObserver reports every presented frame to o.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// WithWarnings sends missing-glyph warnings to w. Nil silences them.
func WithWarnings(w io.Writer) Option {
	return func(opts *options) {
		opts.warn = w
	}
}

// Display shows text on dev and blocks until the reader quits.
// A nil cfg uses config.Default(). Configuration and font problems are reported
// before anything is drawn.
func Display(text string, cfg *config.ViewerConfig, dev Device, opts ...Option) error {
	o := options{warn: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	bindings := input.DefaultBindings()
	if err := bindings.Merge(cfg.Bindings); err != nil {
		return fmt.Errorf("invalid bindings: %w", err)
	}

	raster, err := glyph.NewOpenTypeRasterizer(cfg.FontSource, cfg.FontSize, cfg.DPI)
	if err != nil {
		return fmt.Errorf("loading font %s: %w", cfg.FontName, err)
	}
	defer raster.Close()

	surf := dev.Surface()
	geom, err := NewGeometry(surf.Bounds(), cfg.CharWidth, cfg.CharHeight, raster.Ascent())
	if err != nil {
		return err
	}

	lines, err := wrap.Wrap(text, geom.MaxCols)
	if err != nil {
		return err
	}

	box := glyph.NewMissingBox(geom.CharWidth, geom.Baseline)
	box.Warn = o.warn
	cache := glyph.NewCache(raster,
		glyph.WithStore(glyph.NewStore(cfg.GlyphCacheCapacity)),
		glyph.WithFallback(box.Substitute),
	)

	vpOpts := []ViewportOption{WithTintAll(cfg.ColorMode)}
	if o.observer != nil {
		vpOpts = append(vpOpts, WithViewportObserver(o.observer))
	}
	vp := NewViewport(lines, geom, surf, cache, vpOpts...)

	return NewSession(vp, dev, bindings).Run()
}
