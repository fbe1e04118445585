package viewer

import (
	"fmt"
	"image"

	"glyphview/pkg/config"
)

// Fixed device resolution.
const (
	ScreenWidth  = 320
	ScreenHeight = 240
)

// Geometry is the character grid laid over a surface. It is fixed for a session.
type Geometry struct {
	Bounds     image.Rectangle
	CharWidth  int
	CharHeight int
	MaxCols    int
	MaxLines   int
	// Baseline is the pen offset from the top of a row.
	Baseline int
}

// NewGeometry fits cells of charWidth x charHeight into bounds. ascent is the
// font ascent in pixels; the baseline is placed there, capped at the cell height.
func NewGeometry(bounds image.Rectangle, charWidth, charHeight, ascent int) (Geometry, error) {
	if charWidth <= 0 || charHeight <= 0 {
		return Geometry{}, fmt.Errorf("%w: got %dx%d", config.ErrInvalidCellSize, charWidth, charHeight)
	}
	g := Geometry{
		Bounds:     bounds,
		CharWidth:  charWidth,
		CharHeight: charHeight,
		MaxCols:    bounds.Dx() / charWidth,
		MaxLines:   bounds.Dy() / charHeight,
		Baseline:   ascent,
	}
	if g.MaxCols == 0 || g.MaxLines == 0 {
		return Geometry{}, fmt.Errorf("%w: %dx%d cells do not fit a %dx%d surface",
			config.ErrInvalidCellSize, charWidth, charHeight, bounds.Dx(), bounds.Dy())
	}
	if g.Baseline <= 0 || g.Baseline > charHeight {
		g.Baseline = charHeight
	}
	return g, nil
}

// Row returns the pixel strip of visible row i.
func (g Geometry) Row(i int) image.Rectangle {
	y := g.Bounds.Min.Y + i*g.CharHeight
	return image.Rect(g.Bounds.Min.X, y, g.Bounds.Max.X, y+g.CharHeight)
}

// TextArea returns the strip covered by all visible rows. Pixels below it are
// never drawn.
func (g Geometry) TextArea() image.Rectangle {
	return image.Rect(g.Bounds.Min.X, g.Bounds.Min.Y,
		g.Bounds.Max.X, g.Bounds.Min.Y+g.MaxLines*g.CharHeight)
}

// Pen returns the baseline origin of column col in row row.
func (g Geometry) Pen(row, col int) image.Point {
	return image.Pt(g.Bounds.Min.X+col*g.CharWidth, g.Bounds.Min.Y+row*g.CharHeight+g.Baseline)
}
