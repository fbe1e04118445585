package glyph

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Fallback produces a substitute glyph when the rasterizer reports ErrGlyphMissing.
type Fallback func(r rune, cause error) (*Glyph, error)

// Stats counts cache traffic.
type Stats struct {
	Hits    int
	Misses  int
	Len     int
	Evicted int
}

// Cache maps code points to glyphs, rasterizing on first use.
// Entries are never mutated after insertion. Not safe for concurrent use.
type Cache struct {
	raster   Rasterizer
	store    Store
	fallback Fallback
	absent   mapset.Set[rune]

	hits   int
	misses int
}

// Option configures a Cache.
type Option func(*Cache)

// WithStore replaces the default unbounded store.
func WithStore(s Store) Option {
	return func(c *Cache) {
		c.store = s
	}
}

// WithFallback installs a substitute for glyphs the font lacks. Without one, a
// missing glyph is returned as an error.
func WithFallback(f Fallback) Option {
	return func(c *Cache) {
		c.fallback = f
	}
}

// NewCache creates a cache in front of r.
func NewCache(r Rasterizer, opts ...Option) *Cache {
	c := &Cache{raster: r, store: NewUnboundedStore(), absent: mapset.New[rune]()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the glyph for r, rasterizing and storing it on a miss.
func (c *Cache) Get(r rune) (*Glyph, error) {
	if g, ok := c.store.Get(r); ok {
		c.hits++
		return g, nil
	}
	c.misses++

	g, err := c.raster.Rasterize(r)
	if err != nil {
		if c.fallback == nil || !errors.Is(err, ErrGlyphMissing) {
			return nil, fmt.Errorf("rasterizing %U: %w", r, err)
		}
		if g, err = c.fallback(r, err); err != nil {
			return nil, fmt.Errorf("substituting %U: %w", r, err)
		}
	}

	c.store.Put(r, g)
	return g, nil
}

// Optional is like Get but returns a nil glyph, without consulting the fallback,
// when the font has no glyph for r. Absent code points are remembered.
func (c *Cache) Optional(r rune) (*Glyph, error) {
	if g, ok := c.store.Get(r); ok {
		c.hits++
		return g, nil
	}
	if c.absent.Has(r) {
		c.hits++
		return nil, nil
	}
	c.misses++

	g, err := c.raster.Rasterize(r)
	if errors.Is(err, ErrGlyphMissing) {
		c.absent.Put(r)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rasterizing %U: %w", r, err)
	}
	c.store.Put(r, g)
	return g, nil
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	s := Stats{Hits: c.hits, Misses: c.misses, Len: c.store.Len()}
	if e, ok := c.store.(interface{ Evicted() int }); ok {
		s.Evicted = e.Evicted()
	}
	return s
}
