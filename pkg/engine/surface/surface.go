// Package surface defines the pixel target the viewer draws on and an in-memory
// implementation of it.
package surface

import (
	"image"
	"image/color"
)

// Caps describes optional abilities of a surface.
type Caps struct {
	// InPlaceCopy is set when Copy is cheap enough to scroll by shifting pixels
	// instead of redrawing the window.
	InPlaceCopy bool
}

// Surface is a fixed-size RGB pixel buffer. Drawing is not visible until Present.
type Surface interface {
	// Bounds returns the drawable area. It does not change for the life of the surface.
	Bounds() image.Rectangle

	// Fill sets every pixel of r to c. r is clipped to Bounds.
	Fill(r image.Rectangle, c color.RGBA)

	// Set sets a single pixel. Points outside Bounds are ignored.
	Set(x, y int, c color.RGBA)

	// Copy moves the pixels of src so that src.Min lands on dst. The source and
	// destination may overlap.
	Copy(dst image.Point, src image.Rectangle)

	// Present makes the current contents visible.
	Present() error

	// Caps reports what the surface supports.
	Caps() Caps
}

// Background is the color cleared areas are filled with.
var Background = color.RGBA{A: 0xff}
