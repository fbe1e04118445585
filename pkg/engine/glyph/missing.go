package glyph

import (
	"fmt"
	"io"
	"os"

	"github.com/zyedidia/generic/mapset"
)

// MissingBox substitutes a hollow rectangle for code points the font cannot draw.
// The box sits on the baseline and reaches top pixels above it.
type MissingBox struct {
	width  int
	height int
	top    int

	// Warn receives one line per code point the first time it is substituted.
	// Nil silences the warnings.
	Warn io.Writer

	reported mapset.Set[rune]
}

// NewMissingBox returns a box substitute for a cell width pixels wide whose baseline
// is top pixels below the cell's upper edge.
func NewMissingBox(width, top int) *MissingBox {
	if width < 3 {
		width = 3
	}
	if top < 3 {
		top = 3
	}
	return &MissingBox{
		width:    width - 1,
		height:   top - 1,
		top:      top - 1,
		Warn:     os.Stderr,
		reported: mapset.New[rune](),
	}
}

// Substitute implements Fallback.
func (m *MissingBox) Substitute(r rune, cause error) (*Glyph, error) {
	if m.Warn != nil && !m.reported.Has(r) {
		m.reported.Put(r)
		fmt.Fprintf(m.Warn, "Warning: %v, drawing placeholder box\n", cause)
	}

	g := &Glyph{
		Rune:       r,
		Width:      m.width,
		Height:     m.height,
		BearingTop: m.top,
		Bitmap:     make([]uint8, m.width*m.height),
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1 {
				g.Bitmap[y*g.Width+x] = 0xff
			}
		}
	}
	return g, nil
}
