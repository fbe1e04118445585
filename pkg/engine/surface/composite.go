package surface

import (
	"image"
	"image/color"

	"glyphview/pkg/engine/glyph"
)

// ColorMode selects how glyph coverage maps to a pixel color.
type ColorMode int

const (
	// Normal draws coverage as a gray level.
	Normal ColorMode = iota
	// Highlight draws coverage as a green tint.
	Highlight
)

// Tint returns the pixel color for coverage alpha.
func Tint(alpha uint8, mode ColorMode) color.RGBA {
	if mode == Highlight {
		return color.RGBA{R: alpha / 4, G: alpha, B: alpha / 5, A: 0xff}
	}
	return color.RGBA{R: alpha, G: alpha, B: alpha, A: 0xff}
}

// BlitGlyph writes g onto s with the pen at (penX, penY) on the baseline.
// Pixels with zero coverage are left untouched, and so is anything outside clip.
// Pass s.Bounds() to draw unclipped.
func BlitGlyph(s Surface, g *glyph.Glyph, penX, penY int, mode ColorMode, clip image.Rectangle) {
	x0 := penX + g.BearingLeft
	y0 := penY - g.BearingTop
	clip = clip.Intersect(s.Bounds())

	for y := 0; y < g.Height; y++ {
		dy := y0 + y
		if dy < clip.Min.Y || dy >= clip.Max.Y {
			continue
		}
		for x := 0; x < g.Width; x++ {
			a := g.Bitmap[y*g.Width+x]
			if a == 0 {
				continue
			}
			dx := x0 + x
			if dx < clip.Min.X || dx >= clip.Max.X {
				continue
			}
			s.Set(dx, dy, Tint(a, mode))
		}
	}
}
