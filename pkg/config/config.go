// Package config holds the viewer settings and loads them from TOML files.
package config

import (
	"errors"
	"fmt"

	"golang.org/x/image/font/gofont/gomono"

	"glyphview/pkg/engine/input"
)

var (
	// ErrInvalidCellSize is returned for zero or negative cell dimensions.
	ErrInvalidCellSize = errors.New("cell width and height must be positive")
	// ErrInvalidFontSize is returned for a zero or negative font size or DPI.
	ErrInvalidFontSize = errors.New("font size and dpi must be positive")
)

const (
	DefaultFontSize   = 16
	DefaultDPI        = 40
	DefaultCharWidth  = 6
	DefaultCharHeight = 11
)

// ViewerConfig describes how text is rasterized and laid out.
type ViewerConfig struct {
	// FontSource is the raw TrueType/OpenType font file.
	FontSource []byte
	// FontName is shown in diagnostics. It is the file path for fonts loaded from disk.
	FontName string
	FontSize float64
	DPI      float64

	// CharWidth and CharHeight are the fixed pixel advance per cluster and per line.
	CharWidth  int
	CharHeight int

	// ColorMode tints every line, not only the highlighted ones.
	ColorMode bool

	// GlyphCacheCapacity bounds the glyph cache. Zero keeps every glyph.
	GlyphCacheCapacity int

	// Bindings adds keys per action name ("quit", "scroll_up", "scroll_down").
	Bindings map[string][]string
}

// Default returns the bundled Go Mono font at 16pt in 6x11 cells.
func Default() *ViewerConfig {
	return &ViewerConfig{
		FontSource: gomono.TTF,
		FontName:   "Go Mono",
		FontSize:   DefaultFontSize,
		DPI:        DefaultDPI,
		CharWidth:  DefaultCharWidth,
		CharHeight: DefaultCharHeight,
	}
}

// Validate rejects settings that would break layout before anything is drawn.
func (c *ViewerConfig) Validate() error {
	if c.CharWidth <= 0 || c.CharHeight <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidCellSize, c.CharWidth, c.CharHeight)
	}
	if c.FontSize <= 0 || c.DPI <= 0 {
		return fmt.Errorf("%w: got %gpt at %g dpi", ErrInvalidFontSize, c.FontSize, c.DPI)
	}
	if len(c.FontSource) == 0 {
		return errors.New("no font data")
	}
	if c.GlyphCacheCapacity < 0 {
		return fmt.Errorf("glyph cache capacity must not be negative: %d", c.GlyphCacheCapacity)
	}
	if err := input.DefaultBindings().Merge(c.Bindings); err != nil {
		return fmt.Errorf("invalid bindings: %w", err)
	}
	return nil
}
