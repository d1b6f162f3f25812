package glyphcache

import "iter"

// GlyphCache turns strings into texture placements.
// It expands text into glyph ids through its FontSource and resolves every
// glyph through a PackingCache.
//
// GlyphCache is NOT safe for concurrent use; see Locked.
type GlyphCache[T TextureSink] struct {
	cache      *PackingCache[T]
	normalizer Normalizer

	// buf is reused between RenderString calls while no Glyphs holds it.
	// Finished sequences hand their glyph slice back through release.
	buf     []Glyph
	bufBusy bool
}

// New creates a GlyphCache drawing glyphs from font into texture.
// The cache takes ownership of texture. Panics if font is nil.
func New[T TextureSink](font FontSource, texture T, opts ...Option) *GlyphCache[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &GlyphCache[T]{
		cache:      NewPackingCache(font, texture),
		normalizer: o.normalizer,
	}
}

// RenderString returns the placements of text rendered at size, one per
// glyph, in input order.
//
// The sequence is lazy: glyph ids are computed up front but nothing is
// rasterized until Next is called, and each Next resolves exactly one glyph.
// A failed glyph does not stop the sequence. Call Stop on a sequence that is
// dropped before its end so its glyph buffer can be reused.
func (c *GlyphCache[T]) RenderString(text string, size float32) *Glyphs[T] {
	if c.normalizer != nil {
		text = c.normalizer.String(text)
	}

	g := &Glyphs[T]{owner: c, size: size, held: true}
	if c.bufBusy {
		// An unfinished sequence still reads c.buf.
		g.glyphs = c.cache.font.AppendGlyphs(nil, text)
		return g
	}

	c.buf = c.cache.font.AppendGlyphs(c.buf[:0], text)
	c.bufBusy = true
	g.glyphs = c.buf
	return g
}

// release takes back the glyph slice of a finished sequence. While c.buf is
// borrowed, possibly by a sequence that was dropped without Stop, buf
// replaces it; otherwise the larger of the two is kept.
func (c *GlyphCache[T]) release(buf []Glyph) {
	if c.bufBusy || cap(buf) > cap(c.buf) {
		c.buf = buf[:0]
		c.bufBusy = false
	}
}

// RenderGlyph resolves a single key.
func (c *GlyphCache[T]) RenderGlyph(key GlyphKey) (PlacedRect, error) {
	return c.cache.Resolve(key)
}

// Clear forgets every placement. See PackingCache.Clear.
func (c *GlyphCache[T]) Clear() {
	c.cache.Clear()
}

// Texture returns the texture for presentation. Callers must not write to it.
func (c *GlyphCache[T]) Texture() T {
	return c.cache.Texture()
}

// Font returns the font source.
func (c *GlyphCache[T]) Font() FontSource {
	return c.cache.Font()
}

// Cache returns the underlying packing cache.
func (c *GlyphCache[T]) Cache() *PackingCache[T] {
	return c.cache
}

// LineHeight returns the line height of the font at size.
func (c *GlyphCache[T]) LineHeight(size float32) float32 {
	return c.cache.Font().LineHeight(size)
}

// LineWidth returns the vertical-layout column width of the font at size.
func (c *GlyphCache[T]) LineWidth(size float32) float32 {
	return c.cache.Font().LineWidth(size)
}

// Glyphs is the lazy result of GlyphCache.RenderString.
// It is finite and cannot be restarted; render the string again to get a new
// sequence (cheap when every glyph is cached).
//
//	glyphs := cache.RenderString("Hello", 16)
//	for glyphs.Next() {
//	    rect, err := glyphs.Result()
//	    ...
//	}
type Glyphs[T TextureSink] struct {
	owner  *GlyphCache[T]
	glyphs []Glyph
	size   float32
	pos    int
	held   bool

	key  GlyphKey
	rect PlacedRect
	err  error
}

// Next resolves the next glyph. It returns false once every glyph has been
// consumed.
func (g *Glyphs[T]) Next() bool {
	if g.pos >= len(g.glyphs) {
		g.Stop()
		return false
	}
	g.key = NewGlyphKey(g.glyphs[g.pos], g.size)
	g.pos++
	g.rect, g.err = g.owner.cache.Resolve(g.key)
	return true
}

// Key returns the key resolved by the last Next call.
func (g *Glyphs[T]) Key() GlyphKey {
	return g.key
}

// Result returns the outcome of the last Next call.
func (g *Glyphs[T]) Result() (PlacedRect, error) {
	return g.rect, g.err
}

// Remaining returns the number of glyphs not yet resolved.
func (g *Glyphs[T]) Remaining() int {
	return len(g.glyphs) - g.pos
}

// Stop abandons the remaining glyphs. Next returns false afterwards.
func (g *Glyphs[T]) Stop() {
	g.pos = len(g.glyphs)
	if g.held {
		g.held = false
		g.owner.release(g.glyphs)
	}
}

// All returns an iterator over the remaining results. Ranging over it
// consumes the sequence; breaking out of the loop stops it.
func (g *Glyphs[T]) All() iter.Seq2[PlacedRect, error] {
	return func(yield func(PlacedRect, error) bool) {
		for g.Next() {
			if !yield(g.rect, g.err) {
				g.Stop()
				return
			}
		}
	}
}
