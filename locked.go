package glyphcache

import "sync"

// Placement is one eagerly resolved glyph.
type Placement struct {
	Key  GlyphKey
	Rect PlacedRect
	Err  error
}

// Locked guards a GlyphCache with a single mutex so that several goroutines
// can share it. Every call holds the lock for its whole duration.
//
// Locked is safe for concurrent use.
type Locked[T TextureSink] struct {
	mu    sync.Mutex
	cache *GlyphCache[T]
}

// NewLocked wraps c. c must not be used directly afterwards.
func NewLocked[T TextureSink](c *GlyphCache[T]) *Locked[T] {
	return &Locked[T]{cache: c}
}

// Render resolves every glyph of text at size and returns the results in
// input order.
func (l *Locked[T]) Render(text string, size float32) []Placement {
	l.mu.Lock()
	defer l.mu.Unlock()

	glyphs := l.cache.RenderString(text, size)
	out := make([]Placement, 0, glyphs.Remaining())
	for glyphs.Next() {
		rect, err := glyphs.Result()
		out = append(out, Placement{Key: glyphs.Key(), Rect: rect, Err: err})
	}
	return out
}

// RenderGlyph resolves a single key.
func (l *Locked[T]) RenderGlyph(key GlyphKey) (PlacedRect, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.RenderGlyph(key)
}

// Clear forgets every placement.
func (l *Locked[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.Clear()
}

// Do runs fn with exclusive access to the cache, for example to read the
// texture. fn must not keep references to sequences it creates.
func (l *Locked[T]) Do(fn func(c *GlyphCache[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.cache)
}
