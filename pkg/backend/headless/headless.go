// Package headless runs the viewer against an in-memory framebuffer with
// scripted keys, for batch runs and screenshots.
package headless

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"glyphview/pkg/engine/input"
	"glyphview/pkg/engine/surface"
	"glyphview/pkg/viewer"
)

// Device is a viewer.Device with no display attached.
type Device struct {
	fb   *surface.Framebuffer
	keys viewer.KeySource
}

// New creates a device reading keys from keys. Caps lets callers exercise the
// full-repaint path of surfaces that cannot copy in place.
func New(keys viewer.KeySource, caps surface.Caps) *Device {
	return &Device{
		fb:   surface.NewFramebuffer(viewer.ScreenWidth, viewer.ScreenHeight, surface.WithCaps(caps)),
		keys: keys,
	}
}

func (d *Device) Surface() surface.Surface {
	return d.fb
}

func (d *Device) NextKey() (input.RawInput, error) {
	return d.keys.NextKey()
}

// Frames returns how many frames were presented.
func (d *Device) Frames() int {
	return d.fb.Frames()
}

// SaveScreenshot writes the current framebuffer as a timestamped PNG in dir
// and returns the file path.
func (d *Device) SaveScreenshot(dir string) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("screenshot-%s.png", timestamp))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, d.fb.Image()); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	return path, f.Close()
}
