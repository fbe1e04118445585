package glyph

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// countingRasterizer returns a deterministic 2x3 bitmap per rune and records calls.
type countingRasterizer struct {
	calls   map[rune]int
	missing map[rune]bool
}

func newCountingRasterizer(missing ...rune) *countingRasterizer {
	c := &countingRasterizer{calls: map[rune]int{}, missing: map[rune]bool{}}
	for _, r := range missing {
		c.missing[r] = true
	}
	return c
}

func (c *countingRasterizer) Rasterize(r rune) (*Glyph, error) {
	c.calls[r]++
	if c.missing[r] {
		return nil, fmt.Errorf("%U: %w", r, ErrGlyphMissing)
	}
	v := uint8(r)
	return &Glyph{
		Rune:        r,
		Width:       2,
		Height:      3,
		BearingLeft: 1,
		BearingTop:  3,
		Bitmap:      []uint8{v, 0, v, 0, v, v},
	}, nil
}

func TestCache_SameRuneRasterizedOnce(t *testing.T) {
	raster := newCountingRasterizer()
	c := NewCache(raster)

	first, err := c.Get('A')
	if err != nil {
		t.Fatalf("Get('A') error = %v", err)
	}
	second, err := c.Get('A')
	if err != nil {
		t.Fatalf("Get('A') error = %v", err)
	}

	if raster.calls['A'] != 1 {
		t.Errorf("rasterizer calls for 'A' = %d, want 1", raster.calls['A'])
	}
	if !bytes.Equal(first.Bitmap, second.Bitmap) {
		t.Errorf("bitmaps differ between lookups: %v vs %v", first.Bitmap, second.Bitmap)
	}
	if first != second {
		t.Error("Get returned different entries for the same code point")
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Len != 1 {
		t.Errorf("Stats() = %+v, want 1 hit, 1 miss, len 1", st)
	}
}

func TestCache_DistinctRunes(t *testing.T) {
	raster := newCountingRasterizer()
	c := NewCache(raster)
	for _, r := range "hello world" {
		if _, err := c.Get(r); err != nil {
			t.Fatalf("Get(%q) error = %v", r, err)
		}
	}
	// h e l o ' ' w r d
	if got := c.Stats().Len; got != 8 {
		t.Errorf("Stats().Len = %d, want 8", got)
	}
	for r, n := range raster.calls {
		if n != 1 {
			t.Errorf("rasterizer calls for %q = %d, want 1", r, n)
		}
	}
}

func TestCache_MissingWithoutFallback(t *testing.T) {
	c := NewCache(newCountingRasterizer('☃'))
	_, err := c.Get('☃')
	if !errors.Is(err, ErrGlyphMissing) {
		t.Fatalf("Get('☃') error = %v, want ErrGlyphMissing", err)
	}
	if got := c.Stats().Len; got != 0 {
		t.Errorf("Stats().Len = %d, want 0 after failure", got)
	}
}

func TestCache_OtherErrorsBypassFallback(t *testing.T) {
	boom := errors.New("boom")
	c := NewCache(RasterizerFunc(func(rune) (*Glyph, error) { return nil, boom }),
		WithFallback(NewMissingBox(6, 9).Substitute))
	if _, err := c.Get('x'); !errors.Is(err, boom) {
		t.Errorf("Get('x') error = %v, want boom", err)
	}
}

func TestCache_MissingSubstitutedWithBox(t *testing.T) {
	raster := newCountingRasterizer('☃')
	box := NewMissingBox(6, 9)
	var warnings strings.Builder
	box.Warn = &warnings
	c := NewCache(raster, WithFallback(box.Substitute))

	g, err := c.Get('☃')
	if err != nil {
		t.Fatalf("Get('☃') error = %v, want placeholder", err)
	}
	if g.Width != 5 || g.Height != 8 || g.BearingTop != 8 || g.BearingLeft != 0 {
		t.Errorf("placeholder geometry = %dx%d bearing (%d,%d), want 5x8 bearing (0,8)",
			g.Width, g.Height, g.BearingLeft, g.BearingTop)
	}
	if g.AlphaAt(0, 0) != 0xff || g.AlphaAt(4, 7) != 0xff {
		t.Error("placeholder border not opaque")
	}
	if g.AlphaAt(2, 3) != 0 {
		t.Error("placeholder interior not empty")
	}

	if _, err := c.Get('☃'); err != nil {
		t.Fatal(err)
	}
	if raster.calls['☃'] != 1 {
		t.Errorf("rasterizer calls = %d, want 1 (placeholder cached)", raster.calls['☃'])
	}
	if n := strings.Count(warnings.String(), "Warning"); n != 1 {
		t.Errorf("warnings = %d, want 1; got %q", n, warnings.String())
	}
}

func TestCache_LRUStoreEvicts(t *testing.T) {
	raster := newCountingRasterizer()
	c := NewCache(raster, WithStore(NewLRUStore(2)))

	for _, r := range "abca" {
		if _, err := c.Get(r); err != nil {
			t.Fatal(err)
		}
	}
	// 'a' was evicted when 'c' arrived and had to be rasterized again.
	if raster.calls['a'] != 2 {
		t.Errorf("rasterizer calls for 'a' = %d, want 2", raster.calls['a'])
	}
	st := c.Stats()
	if st.Len != 2 {
		t.Errorf("Stats().Len = %d, want 2", st.Len)
	}
	if st.Evicted != 2 {
		t.Errorf("Stats().Evicted = %d, want 2", st.Evicted)
	}
}

func TestNewStore(t *testing.T) {
	if _, ok := NewStore(0).(unboundedStore); !ok {
		t.Error("NewStore(0) is not unbounded")
	}
	if _, ok := NewStore(16).(*lruStore); !ok {
		t.Error("NewStore(16) is not an LRU store")
	}
}

func TestCache_OptionalSkipsMissing(t *testing.T) {
	raster := newCountingRasterizer('\u0301')
	box := NewMissingBox(6, 9)
	var warnings bytes.Buffer
	box.Warn = &warnings
	c := NewCache(raster, WithFallback(box.Substitute))

	for i := 0; i < 2; i++ {
		g, err := c.Optional('\u0301')
		if err != nil || g != nil {
			t.Fatalf("Optional(U+0301) = %v, %v, want nil, nil", g, err)
		}
	}
	if raster.calls['\u0301'] != 1 {
		t.Errorf("rasterizer called %d times for U+0301, want 1", raster.calls['\u0301'])
	}
	if warnings.Len() != 0 {
		t.Errorf("Optional() warned: %q", warnings.String())
	}

	g, err := c.Optional('a')
	if err != nil || g == nil || g.Rune != 'a' {
		t.Fatalf("Optional('a') = %v, %v, want glyph", g, err)
	}
	if _, err := c.Get('a'); err != nil || raster.calls['a'] != 1 {
		t.Errorf("Get('a') after Optional rasterized %d times, err %v, want 1, nil", raster.calls['a'], err)
	}

	// Get still substitutes the box for the same code point.
	if g, err := c.Get('\u0301'); err != nil || g == nil || g.Width != 5 {
		t.Errorf("Get(U+0301) = %v, %v, want placeholder box", g, err)
	}
}

func TestCache_OptionalPropagatesOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	c := NewCache(RasterizerFunc(func(r rune) (*Glyph, error) { return nil, boom }))
	if _, err := c.Optional('x'); !errors.Is(err, boom) {
		t.Errorf("Optional() error = %v, want boom", err)
	}
}
