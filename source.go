package glyphcache

// FontSource is the rasterizer side of the cache.
// It abstracts TTF rasterizers, bitmap fonts or anything else able to turn
// text into glyph ids and glyph ids into pixels.
//
// Implementations need not be safe for concurrent use; the cache calls them
// from a single goroutine.
type FontSource interface {
	// SupportsVertical reports whether vertical metrics (AdvanceY, LineWidth)
	// are meaningful for this source.
	SupportsVertical() bool

	// PixelFormat returns the layout of the buffers returned by Rasterize.
	// It never changes for one source.
	PixelFormat() PixelFormat

	// LineWidth returns the column width used by vertical layout at size.
	// Sources without vertical metrics return 0.
	LineWidth(size float32) float32

	// LineHeight returns ascent - descent + line gap at size.
	LineHeight(size float32) float32

	// AppendGlyphs appends one glyph id per rune of text to dst, in logical
	// order, and returns the extended slice. dst is never truncated.
	AppendGlyphs(dst []Glyph, text string) []Glyph

	// Metrics returns the bitmap size and typographic offsets of key.
	// It is deterministic. Sources that cannot compute a bounding box panic.
	Metrics(key GlyphKey) Metrics

	// Rasterize renders key. The result holds exactly
	// Width*Height*PixelFormat().BytesPerPixel() bytes of Metrics(key),
	// row-major from the top row, x varying fastest.
	Rasterize(key GlyphKey) []byte
}
