// Package ximage implements glyphcache.FontSource for TrueType and OpenType
// fonts using golang.org/x/image/font/sfnt.
//
// Outlines are loaded with sfnt.Font.LoadGlyph and rasterized to alpha masks
// with golang.org/x/image/vector. Sizes are pixels per em.
//
// Source keeps an sfnt.Buffer between calls and is NOT safe for concurrent use.
package ximage

import (
	"fmt"

	"github.com/gogpu/glyphcache"
	"github.com/gogpu/glyphcache/internal/raster"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Option configures a Source.
type Option func(*config)

type config struct {
	hinting font.Hinting
}

// WithHinting sets the hinting used for advances and line metrics.
// Default: font.HintingNone.
func WithHinting(h font.Hinting) Option {
	return func(c *config) {
		c.hinting = h
	}
}

// Source is a FontSource backed by a parsed sfnt.Font.
type Source struct {
	font   *sfnt.Font
	buf    sfnt.Buffer
	config config

	// last memoizes the outline of the most recent key, since the cache
	// asks for Metrics and then Rasterize of the same glyph.
	lastKey  glyphcache.GlyphKey
	lastSegs sfnt.Segments
	hasLast  bool
}

var _ glyphcache.FontSource = (*Source)(nil)

// New parses TTF or OTF data.
func New(data []byte, opts ...Option) (*Source, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("ximage: failed to parse font: %w", err)
	}
	return NewFromFont(f, opts...), nil
}

// NewFromFont wraps an already parsed font.
func NewFromFont(f *sfnt.Font, opts ...Option) *Source {
	s := &Source{font: f}
	for _, opt := range opts {
		opt(&s.config)
	}
	return s
}

// Font returns the underlying font.
func (s *Source) Font() *sfnt.Font {
	return s.font
}

// SupportsVertical implements glyphcache.FontSource. sfnt exposes no vertical
// metrics.
func (s *Source) SupportsVertical() bool {
	return false
}

// PixelFormat implements glyphcache.FontSource.
func (s *Source) PixelFormat() glyphcache.PixelFormat {
	return glyphcache.PixelFormatAlpha
}

// LineWidth implements glyphcache.FontSource.
func (s *Source) LineWidth(float32) float32 {
	return 0
}

// LineHeight implements glyphcache.FontSource.
func (s *Source) LineHeight(size float32) float32 {
	m, err := s.font.Metrics(&s.buf, ppem(size), s.config.hinting)
	if err != nil {
		return 0
	}
	return raster.FixedToFloat(m.Height)
}

// AppendGlyphs implements glyphcache.FontSource.
// Runes missing from the font map to glyph 0 (.notdef).
func (s *Source) AppendGlyphs(dst []glyphcache.Glyph, text string) []glyphcache.Glyph {
	for _, r := range text {
		idx, err := s.font.GlyphIndex(&s.buf, r)
		if err != nil {
			idx = 0
		}
		dst = append(dst, glyphcache.Glyph(idx))
	}
	return dst
}

// Metrics implements glyphcache.FontSource.
// Panics if the glyph outline cannot be loaded.
func (s *Source) Metrics(key glyphcache.GlyphKey) glyphcache.Metrics {
	b := raster.FixedBounds(s.segments(key).Bounds())

	advance, err := s.font.GlyphAdvance(&s.buf, sfnt.GlyphIndex(key.Glyph), ppem(key.Size()), s.config.hinting)
	if err != nil {
		panic(fmt.Sprintf("ximage: advance of %v: %v", key, err))
	}

	return glyphcache.Metrics{
		Width:    uint32(b.Width()),  //nolint:gosec // Width is never negative
		Height:   uint32(b.Height()), //nolint:gosec // Height is never negative
		BearingX: float32(b.MinX),
		BearingY: float32(b.MinY),
		AdvanceX: raster.FixedToFloat(advance),
	}
}

// Rasterize implements glyphcache.FontSource.
func (s *Source) Rasterize(key glyphcache.GlyphKey) []byte {
	segs := s.segments(key)
	mask := raster.NewMask(raster.FixedBounds(segs.Bounds()))
	for _, seg := range segs {
		a := seg.Args
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			mask.MoveTo(raster.FixedToFloat(a[0].X), raster.FixedToFloat(a[0].Y))
		case sfnt.SegmentOpLineTo:
			mask.LineTo(raster.FixedToFloat(a[0].X), raster.FixedToFloat(a[0].Y))
		case sfnt.SegmentOpQuadTo:
			mask.QuadTo(
				raster.FixedToFloat(a[0].X), raster.FixedToFloat(a[0].Y),
				raster.FixedToFloat(a[1].X), raster.FixedToFloat(a[1].Y))
		case sfnt.SegmentOpCubeTo:
			mask.CubeTo(
				raster.FixedToFloat(a[0].X), raster.FixedToFloat(a[0].Y),
				raster.FixedToFloat(a[1].X), raster.FixedToFloat(a[1].Y),
				raster.FixedToFloat(a[2].X), raster.FixedToFloat(a[2].Y))
		}
	}
	return mask.Pixels()
}

// segments loads the outline of key in pixels, Y down.
func (s *Source) segments(key glyphcache.GlyphKey) sfnt.Segments {
	if s.hasLast && s.lastKey == key {
		return s.lastSegs
	}
	segs, err := s.font.LoadGlyph(&s.buf, sfnt.GlyphIndex(key.Glyph), ppem(key.Size()), nil)
	if err != nil {
		panic(fmt.Sprintf("ximage: outline of %v: %v", key, err))
	}
	// LoadGlyph returns a slice of s.buf, which later calls overwrite.
	s.lastSegs = append(s.lastSegs[:0], segs...)
	s.lastKey = key
	s.hasLast = true
	return s.lastSegs
}

// ppem converts a size in pixels to fixed.Int26_6.
func ppem(size float32) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}
