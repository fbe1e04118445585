package glyph

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func newMonoRasterizer(t *testing.T) *OpenTypeRasterizer {
	t.Helper()
	r, err := NewOpenTypeRasterizer(gomono.TTF, 16, 40)
	if err != nil {
		t.Fatalf("NewOpenTypeRasterizer() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestOpenTypeRasterizer_Letter(t *testing.T) {
	r := newMonoRasterizer(t)
	g, err := r.Rasterize('A')
	if err != nil {
		t.Fatalf("Rasterize('A') error = %v", err)
	}
	if g.Width == 0 || g.Height == 0 {
		t.Fatalf("Rasterize('A') size = %dx%d, want non-empty", g.Width, g.Height)
	}
	if len(g.Bitmap) != g.Width*g.Height {
		t.Errorf("len(Bitmap) = %d, want %d", len(g.Bitmap), g.Width*g.Height)
	}
	if g.BearingTop <= 0 || g.BearingTop > r.Ascent() {
		t.Errorf("BearingTop = %d, want within (0, %d]", g.BearingTop, r.Ascent())
	}
	var ink bool
	for _, a := range g.Bitmap {
		if a != 0 {
			ink = true
			break
		}
	}
	if !ink {
		t.Error("Rasterize('A') produced an empty bitmap")
	}
}

func TestOpenTypeRasterizer_Descender(t *testing.T) {
	r := newMonoRasterizer(t)
	g, err := r.Rasterize('g')
	if err != nil {
		t.Fatal(err)
	}
	if g.Height <= g.BearingTop {
		t.Errorf("'g' height %d <= bearing top %d, want descender below baseline", g.Height, g.BearingTop)
	}
}

func TestOpenTypeRasterizer_Space(t *testing.T) {
	r := newMonoRasterizer(t)
	g, err := r.Rasterize(' ')
	if err != nil {
		t.Fatalf("Rasterize(' ') error = %v", err)
	}
	for _, a := range g.Bitmap {
		if a != 0 {
			t.Fatal("space has ink")
		}
	}
}

func TestOpenTypeRasterizer_Missing(t *testing.T) {
	r := newMonoRasterizer(t)
	_, err := r.Rasterize('\U0001F600')
	if !errors.Is(err, ErrGlyphMissing) {
		t.Errorf("Rasterize(U+1F600) error = %v, want ErrGlyphMissing", err)
	}
}

func TestOpenTypeRasterizer_Deterministic(t *testing.T) {
	r := newMonoRasterizer(t)
	a, err := r.Rasterize('Q')
	if err != nil {
		t.Fatal(err)
	}
	// Rasterize something else so the face's shared mask buffer is overwritten.
	if _, err := r.Rasterize('W'); err != nil {
		t.Fatal(err)
	}
	b, err := r.Rasterize('Q')
	if err != nil {
		t.Fatal(err)
	}
	if string(a.Bitmap) != string(b.Bitmap) {
		t.Error("Rasterize('Q') not stable across calls")
	}
}

func TestNewOpenTypeRasterizer_BadFont(t *testing.T) {
	if _, err := NewOpenTypeRasterizer([]byte("not a font"), 16, 72); err == nil {
		t.Error("NewOpenTypeRasterizer(garbage) error = nil, want error")
	}
}

func TestOpenTypeRasterizer_DefaultCellFit(t *testing.T) {
	r := newMonoRasterizer(t)
	adv, ok := r.Advance('M')
	if !ok {
		t.Fatal("no advance for 'M'")
	}
	if adv > 6 {
		t.Errorf("Advance('M') = %d, want <= 6 for the default 6px cell", adv)
	}
	if h := r.Ascent() + r.Descent(); h > 14 {
		t.Errorf("ascent+descent = %d, want it to roughly fit an 11px cell", h)
	}
}
