package glyph

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// OpenTypeRasterizer rasterizes glyphs from a TrueType/OpenType font at a fixed size.
// It is not safe for concurrent use.
type OpenTypeRasterizer struct {
	font *opentype.Font
	face font.Face
	buf  sfnt.Buffer
}

// NewOpenTypeRasterizer parses src and prepares a face of the given point size and DPI.
func NewOpenTypeRasterizer(src []byte, size, dpi float64) (*OpenTypeRasterizer, error) {
	parsed, err := opentype.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	return &OpenTypeRasterizer{font: parsed, face: face}, nil
}

// Ascent returns the face ascent in whole pixels, rounded up.
func (o *OpenTypeRasterizer) Ascent() int {
	return o.face.Metrics().Ascent.Ceil()
}

// Descent returns the face descent in whole pixels, rounded up.
func (o *OpenTypeRasterizer) Descent() int {
	return o.face.Metrics().Descent.Ceil()
}

// Advance returns the horizontal advance of r in whole pixels.
func (o *OpenTypeRasterizer) Advance(r rune) (int, bool) {
	adv, ok := o.face.GlyphAdvance(r)
	return adv.Round(), ok
}

// Rasterize renders r with the pen at the origin and copies the coverage mask out of
// the face, which reuses its mask buffer between calls.
func (o *OpenTypeRasterizer) Rasterize(r rune) (*Glyph, error) {
	idx, err := o.font.GlyphIndex(&o.buf, r)
	if err != nil {
		return nil, fmt.Errorf("looking up %U: %w", r, err)
	}
	if idx == 0 {
		return nil, fmt.Errorf("%U: %w", r, ErrGlyphMissing)
	}

	dr, mask, maskp, _, ok := o.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return nil, fmt.Errorf("%U: %w", r, ErrGlyphMissing)
	}

	g := &Glyph{
		Rune:        r,
		Width:       dr.Dx(),
		Height:      dr.Dy(),
		BearingLeft: dr.Min.X,
		BearingTop:  -dr.Min.Y,
	}
	g.Bitmap = make([]uint8, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
			g.Bitmap[y*g.Width+x] = uint8(a >> 8)
		}
	}
	return g, nil
}

// Close releases the face.
func (o *OpenTypeRasterizer) Close() error {
	return o.face.Close()
}
