// Package gotext implements glyphcache.FontSource on top of
// github.com/go-text/typesetting/font.
//
// Unlike the sfnt backend it reads CFF2 and variable fonts and reports
// vertical metrics when the font carries a vmtx table. Sizes are pixels per em.
//
// A Source is NOT safe for concurrent use.
package gotext

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/glyphcache"
	"github.com/gogpu/glyphcache/internal/raster"
)

// Source is a FontSource backed by a go-text font.Face.
type Source struct {
	face *font.Face
	upem float32

	lastKey glyphcache.GlyphKey
	last    outline
	hasLast bool
}

var _ glyphcache.FontSource = (*Source)(nil)

// outline is a glyph path scaled to pixels with Y pointing down.
type outline struct {
	segments []font.Segment
	bounds   raster.Bounds
}

// New parses TTF, OTF or TTC data. For collections the first face is used.
func New(data []byte) (*Source, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gotext: failed to parse font: %w", err)
	}
	return NewFromFace(face), nil
}

// NewFromFace wraps an already parsed face.
func NewFromFace(face *font.Face) *Source {
	upem := float32(face.Upem())
	if upem == 0 {
		upem = 1000
	}
	return &Source{face: face, upem: upem}
}

// Face returns the underlying face.
func (s *Source) Face() *font.Face {
	return s.face
}

func (s *Source) scale(size float32) float32 {
	return size / s.upem
}

// SupportsVertical implements glyphcache.FontSource.
func (s *Source) SupportsVertical() bool {
	return s.face.HasVerticalMetrics()
}

// PixelFormat implements glyphcache.FontSource.
func (s *Source) PixelFormat() glyphcache.PixelFormat {
	return glyphcache.PixelFormatAlpha
}

// LineWidth implements glyphcache.FontSource. It is the vertical line advance,
// or 0 when the font has no vertical metrics.
func (s *Source) LineWidth(size float32) float32 {
	ext, ok := s.face.FontVExtents()
	if !ok {
		return 0
	}
	return (ext.Ascender - ext.Descender + ext.LineGap) * s.scale(size)
}

// LineHeight implements glyphcache.FontSource.
func (s *Source) LineHeight(size float32) float32 {
	ext, ok := s.face.FontHExtents()
	if !ok {
		return size
	}
	return (ext.Ascender - ext.Descender + ext.LineGap) * s.scale(size)
}

// AppendGlyphs implements glyphcache.FontSource.
// Runes missing from the font map to glyph 0.
func (s *Source) AppendGlyphs(dst []glyphcache.Glyph, text string) []glyphcache.Glyph {
	for _, r := range text {
		gid, ok := s.face.NominalGlyph(r)
		if !ok {
			gid = 0
		}
		dst = append(dst, glyphcache.Glyph(gid))
	}
	return dst
}

// Metrics implements glyphcache.FontSource. Glyphs without an outline, such as
// bitmap-only or COLR glyphs, report an empty box.
func (s *Source) Metrics(key glyphcache.GlyphKey) glyphcache.Metrics {
	o := s.outline(key)
	scale := s.scale(key.Size())
	gid := font.GID(key.Glyph)

	m := glyphcache.Metrics{
		Width:    uint32(o.bounds.Width()),  //nolint:gosec // Width is never negative
		Height:   uint32(o.bounds.Height()), //nolint:gosec // Height is never negative
		BearingX: float32(o.bounds.MinX),
		BearingY: float32(o.bounds.MinY),
		AdvanceX: s.face.HorizontalAdvance(gid) * scale,
	}
	if s.face.HasVerticalMetrics() {
		// VerticalAdvance is negative in font units, Y up.
		m.AdvanceY = -s.face.VerticalAdvance(gid) * scale
	}
	return m
}

// Rasterize implements glyphcache.FontSource.
func (s *Source) Rasterize(key glyphcache.GlyphKey) []byte {
	o := s.outline(key)
	mask := raster.NewMask(o.bounds)
	for _, seg := range o.segments {
		a := seg.Args
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			mask.MoveTo(a[0].X, a[0].Y)
		case opentype.SegmentOpLineTo:
			mask.LineTo(a[0].X, a[0].Y)
		case opentype.SegmentOpQuadTo:
			mask.QuadTo(a[0].X, a[0].Y, a[1].X, a[1].Y)
		case opentype.SegmentOpCubeTo:
			mask.CubeTo(a[0].X, a[0].Y, a[1].X, a[1].Y, a[2].X, a[2].Y)
		}
	}
	return mask.Pixels()
}

func (s *Source) outline(key glyphcache.GlyphKey) outline {
	if s.hasLast && s.lastKey == key {
		return s.last
	}

	var src []font.Segment
	switch data := s.face.GlyphData(font.GID(key.Glyph)).(type) {
	case font.GlyphOutline:
		src = data.Segments
	case font.GlyphSVG:
		src = data.Outline.Segments
	case font.GlyphBitmap:
		if data.Outline != nil {
			src = data.Outline.Segments
		}
	}

	scale := s.scale(key.Size())
	segs := s.last.segments[:0]
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, seg := range src {
		for i := range seg.ArgsSlice() {
			x := seg.Args[i].X * scale
			y := -seg.Args[i].Y * scale
			seg.Args[i].X, seg.Args[i].Y = x, y
			minX, maxX = math.Min(minX, float64(x)), math.Max(maxX, float64(x))
			minY, maxY = math.Min(minY, float64(y)), math.Max(maxY, float64(y))
		}
		segs = append(segs, seg)
	}

	s.last = outline{segments: segs}
	if len(segs) > 0 {
		s.last.bounds = raster.PixelBounds(minX, minY, maxX, maxY)
	}
	s.lastKey = key
	s.hasLast = true
	return s.last
}
