package headless

import (
	"image/png"
	"os"
	"strings"
	"testing"

	"glyphview/pkg/engine/surface"
	"glyphview/pkg/viewer"
)

func longText(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("some line of text\n")
	}
	return b.String()
}

func TestDevice_ScriptedSession(t *testing.T) {
	for _, caps := range []surface.Caps{{InPlaceCopy: true}, {}} {
		dev := New(viewer.NewScriptKeys("arrow_down", "arrow_down", "arrow_up", "escape"), caps)
		if err := viewer.Display(longText(40), nil, dev, viewer.WithWarnings(nil)); err != nil {
			t.Fatalf("Display(caps %+v) error = %v", caps, err)
		}
		if got := dev.Frames(); got != 4 {
			t.Errorf("Frames(caps %+v) = %d, want 4", caps, got)
		}
	}
}

func TestDevice_SaveScreenshot(t *testing.T) {
	dev := New(viewer.NewScriptKeys("escape"), surface.Caps{InPlaceCopy: true})
	if err := viewer.Display("hello", nil, dev, viewer.WithWarnings(nil)); err != nil {
		t.Fatalf("Display() error = %v", err)
	}

	path, err := dev.SaveScreenshot(t.TempDir())
	if err != nil {
		t.Fatalf("SaveScreenshot() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != viewer.ScreenWidth || b.Dy() != viewer.ScreenHeight {
		t.Errorf("screenshot size = %v, want %dx%d", b.Size(), viewer.ScreenWidth, viewer.ScreenHeight)
	}
}

func TestDevice_SaveScreenshotBadDir(t *testing.T) {
	dev := New(viewer.NewScriptKeys(), surface.Caps{})
	if _, err := dev.SaveScreenshot("/nonexistent/dir"); err == nil {
		t.Error("SaveScreenshot(missing dir) error = nil, want error")
	}
}
