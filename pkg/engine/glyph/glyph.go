// Package glyph turns code points into 8-bit alpha bitmaps and keeps them for reuse.
package glyph

import "errors"

// ErrGlyphMissing is returned by a Rasterizer when the font has no glyph for a code point.
var ErrGlyphMissing = errors.New("glyph not present in font")

// Glyph is the rasterized form of one code point.
// Bitmap holds Width*Height alpha values in row-major order. The bearings locate the
// bitmap's top-left corner relative to the pen: BearingLeft to the right of it and
// BearingTop above the baseline.
type Glyph struct {
	Rune        rune
	Bitmap      []uint8
	Width       int
	Height      int
	BearingLeft int
	BearingTop  int
}

// AlphaAt returns the bitmap value at (x, y).
func (g *Glyph) AlphaAt(x, y int) uint8 {
	return g.Bitmap[y*g.Width+x]
}

// Rasterizer is the font engine consulted on a cache miss.
type Rasterizer interface {
	Rasterize(r rune) (*Glyph, error)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(r rune) (*Glyph, error)

// Rasterize calls f(r).
func (f RasterizerFunc) Rasterize(r rune) (*Glyph, error) {
	return f(r)
}
