package glyphcache

import "fmt"

// Stats holds cache statistics.
type Stats struct {
	Hits     uint64 // Resolve calls answered from the map
	Misses   uint64 // Resolve calls that had to place a glyph
	Placed   uint64 // Glyphs placed since creation
	Failures uint64 // Misses that ended in an error
	Clears   uint64 // Calls to Clear
}

// PackingCache maps glyph keys to their location in a texture and places
// missing glyphs with a shelf packer.
//
// PackingCache owns the texture for its whole lifetime. It is NOT safe for
// concurrent use; see Locked.
type PackingCache[T TextureSink] struct {
	font    FontSource
	texture T

	placed map[GlyphKey]PlacedRect
	packer shelfPacker

	epoch uint64
	stats Stats
}

// NewPackingCache creates an empty cache drawing glyphs from font into texture.
// Panics if font is nil.
func NewPackingCache[T TextureSink](font FontSource, texture T) *PackingCache[T] {
	if font == nil {
		panic("glyphcache: FontSource is nil")
	}
	return &PackingCache[T]{
		font:    font,
		texture: texture,
		placed:  make(map[GlyphKey]PlacedRect, 128),
		packer:  newShelfPacker(texture.Width(), texture.Height()),
	}
}

// Resolve returns the location of key in the texture, rasterizing and
// uploading it first if needed.
//
// The returned error is a *PlacementError wrapping ErrTextureTooSmall,
// ErrOutOfSpace or the texture sink's error. On error the packing state is
// unchanged.
func (c *PackingCache[T]) Resolve(key GlyphKey) (PlacedRect, error) {
	if rect, ok := c.placed[key]; ok {
		c.stats.Hits++
		return rect, nil
	}
	c.stats.Misses++

	m := c.font.Metrics(key)
	if !c.packer.fits(m.Width, m.Height) {
		return c.fail(key, m, ErrTextureTooSmall)
	}

	x, y, wrapped, ok := c.packer.place(m.Width, m.Height)
	if !ok {
		Logger().Debug("glyphcache: out of space",
			"glyph", key.Glyph, "size", key.Size(),
			"width", m.Width, "height", m.Height,
			"utilization", c.packer.utilization())
		return c.fail(key, m, ErrOutOfSpace)
	}

	rect := PlacedRect{X: x, Y: y, Width: m.Width, Height: m.Height}
	if !rect.Empty() {
		if err := c.upload(key, rect); err != nil {
			return c.fail(key, m, err)
		}
	}

	if wrapped {
		Logger().Debug("glyphcache: new shelf", "y", y)
	}
	c.packer.commit(x, y, m.Width, m.Height, wrapped)
	c.placed[key] = rect
	c.stats.Placed++
	Logger().Debug("glyphcache: placed glyph",
		"glyph", key.Glyph, "size", key.Size(),
		"x", rect.X, "y", rect.Y, "width", rect.Width, "height", rect.Height)

	return rect, nil
}

// upload rasterizes key and writes it to the texture at rect.
func (c *PackingCache[T]) upload(key GlyphKey, rect PlacedRect) error {
	format := c.font.PixelFormat()
	data := c.font.Rasterize(key)

	want := int(rect.Width) * int(rect.Height) * format.BytesPerPixel()
	if len(data) != want {
		panic(fmt.Sprintf("glyphcache: Rasterize(%v) returned %d bytes, want %d", key, len(data), want))
	}

	if err := c.texture.WriteRect(format, data, rect); err != nil {
		return fmt.Errorf("glyphcache: texture write failed: %w", err)
	}
	return nil
}

func (c *PackingCache[T]) fail(key GlyphKey, m Metrics, err error) (PlacedRect, error) {
	c.stats.Failures++
	return PlacedRect{}, &PlacementError{Key: key, Width: m.Width, Height: m.Height, Err: err}
}

// Lookup returns the location of key if it has already been placed.
// It never rasterizes.
func (c *PackingCache[T]) Lookup(key GlyphKey) (PlacedRect, bool) {
	rect, ok := c.placed[key]
	return rect, ok
}

// Contains reports whether key has been placed in the current epoch.
func (c *PackingCache[T]) Contains(key GlyphKey) bool {
	_, ok := c.placed[key]
	return ok
}

// Clear forgets every placement and rewinds the packer to the origin.
//
// The texture is not wiped: pixels of forgotten glyphs stay in place until
// new glyphs overwrite them.
func (c *PackingCache[T]) Clear() {
	clear(c.placed)
	c.packer.reset()
	c.epoch++
	c.stats.Clears++
	Logger().Debug("glyphcache: cleared", "epoch", c.epoch)
}

// Len returns the number of glyphs placed in the current epoch.
func (c *PackingCache[T]) Len() int {
	return len(c.placed)
}

// Epoch returns the number of times the cache has been cleared.
// Placements from different epochs must not be mixed.
func (c *PackingCache[T]) Epoch() uint64 {
	return c.epoch
}

// Texture returns the texture for presentation. Callers must not write to it.
func (c *PackingCache[T]) Texture() T {
	return c.texture
}

// Font returns the font source.
func (c *PackingCache[T]) Font() FontSource {
	return c.font
}

// Stats returns a snapshot of the cache statistics.
func (c *PackingCache[T]) Stats() Stats {
	return c.stats
}

// Utilization returns the fraction of the texture covered by glyphs (0.0 to 1.0).
func (c *PackingCache[T]) Utilization() float64 {
	return c.packer.utilization()
}

// RemainingHeight returns the number of pixel rows below the current shelf.
func (c *PackingCache[T]) RemainingHeight() uint32 {
	return c.packer.remainingHeight()
}
