package glyphcache

import (
	"fmt"
	"image"
	"math"
)

// Glyph is the index of a glyph inside one FontSource.
// It is meaningless without the source that produced it.
type Glyph uint32

// GlyphKey identifies one rasterization of a glyph: the glyph id and the
// exact bit pattern of the requested size.
//
// Sizes are compared bit for bit, so 0.0 and -0.0 are different keys.
type GlyphKey struct {
	Glyph Glyph
	size  uint32
}

// NewGlyphKey returns the cache key for glyph g rasterized at size.
func NewGlyphKey(g Glyph, size float32) GlyphKey {
	return GlyphKey{Glyph: g, size: math.Float32bits(size)}
}

// Size returns the rasterization size.
func (k GlyphKey) Size() float32 {
	return math.Float32frombits(k.size)
}

// SizeBits returns the IEEE-754 bit pattern of the size.
func (k GlyphKey) SizeBits() uint32 {
	return k.size
}

// String implements fmt.Stringer.
func (k GlyphKey) String() string {
	return fmt.Sprintf("glyph %d @ %g", k.Glyph, k.Size())
}

// Metrics describes a rasterized glyph.
//
// Width and Height are the bitmap dimensions in pixels. The bearings locate
// the top-left corner of the bitmap relative to the pen position (Y grows
// down) and the advances tell how far the pen moves. The cache only reads
// Width and Height; the rest is carried for layout code.
type Metrics struct {
	Width  uint32
	Height uint32

	BearingX float32
	AdvanceX float32
	BearingY float32
	AdvanceY float32
}

// PlacedRect is the location of a glyph inside the texture, in pixels.
type PlacedRect struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// Right returns the exclusive right edge.
func (r PlacedRect) Right() uint32 {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r PlacedRect) Bottom() uint32 {
	return r.Y + r.Height
}

// Empty reports whether the rectangle covers no pixels.
func (r PlacedRect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Overlaps reports whether r and o share at least one pixel.
func (r PlacedRect) Overlaps(o PlacedRect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Rectangle converts r to an image.Rectangle.
func (r PlacedRect) Rectangle() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.Right()), int(r.Bottom()))
}

// UV returns normalized texture coordinates of r for a texture of the given size.
func (r PlacedRect) UV(texWidth, texHeight uint32) (u0, v0, u1, v1 float32) {
	if texWidth == 0 || texHeight == 0 {
		return 0, 0, 0, 0
	}
	w := float32(texWidth)
	h := float32(texHeight)
	return float32(r.X) / w, float32(r.Y) / h, float32(r.Right()) / w, float32(r.Bottom()) / h
}

// PixelFormat is the byte layout a FontSource emits.
type PixelFormat uint8

const (
	// PixelFormatAlpha is one coverage byte per pixel.
	PixelFormatAlpha PixelFormat = iota

	// PixelFormatRGB is three bytes per pixel, no alpha.
	PixelFormatRGB

	// PixelFormatRGBA is four bytes per pixel, straight alpha.
	PixelFormatRGBA
)

// BytesPerPixel returns the number of bytes one pixel occupies.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatAlpha:
		return 1
	case PixelFormatRGB:
		return 3
	case PixelFormatRGBA:
		return 4
	default:
		return 0
	}
}

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatAlpha:
		return "Alpha"
	case PixelFormatRGB:
		return "RGB"
	case PixelFormatRGBA:
		return "RGBA"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint8(f))
	}
}
