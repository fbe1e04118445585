package viewer

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"glyphview/pkg/engine/glyph"
	"glyphview/pkg/engine/surface"
	"glyphview/pkg/engine/wrap"
)

// lineRenderer draws display lines into row strips.
type lineRenderer struct {
	geom    Geometry
	cache   *glyph.Cache
	tintAll bool
}

func (lr *lineRenderer) mode(line wrap.DisplayLine) surface.ColorMode {
	if line.Highlighted || lr.tintAll {
		return surface.Highlight
	}
	return surface.Normal
}

// drawLine composites line into visible row. The row strip must already be clear.
// Each grapheme cluster takes one cell. The cluster is composed to NFC so fonts
// with precomposed letters are used; its first rune is drawn and any combining
// marks left after it are overlaid at the same pen position, or skipped when the
// font lacks them.
func (lr *lineRenderer) drawLine(s surface.Surface, line wrap.DisplayLine, row int) error {
	strip := lr.geom.Row(row)
	mode := lr.mode(line)

	for col, cluster := range wrap.Clusters(line.Text) {
		pen := lr.geom.Pen(row, col)
		for i, r := range norm.NFC.String(cluster) {
			if unicode.IsControl(r) {
				continue
			}
			var g *glyph.Glyph
			var err error
			switch {
			case i == 0:
				g, err = lr.cache.Get(r)
			case unicode.In(r, unicode.Mn, unicode.Me):
				g, err = lr.cache.Optional(r)
			}
			if err != nil {
				return err
			}
			if g != nil {
				surface.BlitGlyph(s, g, pen.X, pen.Y, mode, strip)
			}
		}
	}
	return nil
}
