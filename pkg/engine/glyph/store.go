package glyph

import "github.com/zyedidia/generic/cache"

// Store holds rasterized glyphs keyed by code point. It decides what, if anything,
// gets evicted.
type Store interface {
	Get(r rune) (*Glyph, bool)
	Put(r rune, g *Glyph)
	Len() int
}

// unboundedStore never evicts. Its size is the number of distinct code points seen.
type unboundedStore map[rune]*Glyph

// NewUnboundedStore returns a store without eviction.
func NewUnboundedStore() Store {
	return unboundedStore{}
}

func (s unboundedStore) Get(r rune) (*Glyph, bool) {
	g, ok := s[r]
	return g, ok
}

func (s unboundedStore) Put(r rune, g *Glyph) {
	s[r] = g
}

func (s unboundedStore) Len() int {
	return len(s)
}

// lruStore keeps at most capacity glyphs and drops the least recently used one first.
type lruStore struct {
	c       *cache.Cache[rune, *Glyph]
	evicted int
}

// NewLRUStore returns a store bounded to capacity entries.
func NewLRUStore(capacity int) Store {
	if capacity < 1 {
		capacity = 1
	}
	s := &lruStore{c: cache.New[rune, *Glyph](capacity)}
	s.c.SetEvictCallback(func(rune, *Glyph) {
		s.evicted++
	})
	return s
}

func (s *lruStore) Get(r rune) (*Glyph, bool) {
	return s.c.Get(r)
}

func (s *lruStore) Put(r rune, g *Glyph) {
	s.c.Put(r, g)
}

func (s *lruStore) Len() int {
	return s.c.Size()
}

// Evicted reports how many glyphs have been dropped so far.
func (s *lruStore) Evicted() int {
	return s.evicted
}

// NewStore picks the store for a configured capacity: zero means unbounded.
func NewStore(capacity int) Store {
	if capacity <= 0 {
		return NewUnboundedStore()
	}
	return NewLRUStore(capacity)
}
