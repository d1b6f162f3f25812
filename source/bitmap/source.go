// Package bitmap implements glyphcache.FontSource for fixed-size bitmap faces
// such as basicfont.Face7x13.
//
// Bitmap faces have one native size. Other sizes are served by nearest-neighbor
// scaling with an integer factor of round(size / face height), at least 1, so
// glyphs stay crisp.
package bitmap

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"

	"github.com/gogpu/glyphcache"
)

// Source is a FontSource over a basicfont.Face. It is read-only after New and
// safe for concurrent use.
type Source struct {
	face *basicfont.Face
}

var _ glyphcache.FontSource = (*Source)(nil)

// New wraps face. A nil face selects basicfont.Face7x13.
func New(face *basicfont.Face) *Source {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &Source{face: face}
}

// Face returns the wrapped face.
func (s *Source) Face() *basicfont.Face {
	return s.face
}

// Scale returns the integer magnification used for size.
func (s *Source) Scale(size float32) int {
	if s.face.Height <= 0 {
		return 1
	}
	return max(1, int(math.Round(float64(size)/float64(s.face.Height))))
}

// SupportsVertical implements glyphcache.FontSource.
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
	return float32(s.face.Height * s.Scale(size))
}

// AppendGlyphs implements glyphcache.FontSource. A glyph id is the index of
// the glyph's cell in the face mask. Missing runes fall back to U+FFFD, then
// to cell 0.
func (s *Source) AppendGlyphs(dst []glyphcache.Glyph, text string) []glyphcache.Glyph {
	for _, r := range text {
		cell, ok := s.cell(r)
		if !ok {
			cell, ok = s.cell('\ufffd')
		}
		if !ok {
			cell = 0
		}
		dst = append(dst, glyphcache.Glyph(cell)) //nolint:gosec // cell is non-negative
	}
	return dst
}

func (s *Source) cell(r rune) (int, bool) {
	for _, rng := range s.face.Ranges {
		if rng.Low <= r && r < rng.High {
			return int(r-rng.Low) + rng.Offset, true
		}
	}
	return 0, false
}

func (s *Source) cellHeight() int {
	return s.face.Ascent + s.face.Descent
}

// Metrics implements glyphcache.FontSource.
func (s *Source) Metrics(key glyphcache.GlyphKey) glyphcache.Metrics {
	k := s.Scale(key.Size())
	return glyphcache.Metrics{
		Width:    uint32(s.face.Width * k),   //nolint:gosec // face sizes are non-negative
		Height:   uint32(s.cellHeight() * k), //nolint:gosec // face sizes are non-negative
		BearingX: float32(s.face.Left * k),
		BearingY: float32(-s.face.Ascent * k),
		AdvanceX: float32(s.face.Advance * k),
	}
}

// Rasterize implements glyphcache.FontSource.
func (s *Source) Rasterize(key glyphcache.GlyphKey) []byte {
	k := s.Scale(key.Size())
	w, h := s.face.Width*k, s.cellHeight()*k
	if w == 0 || h == 0 {
		return []byte{}
	}

	origin := s.face.Mask.Bounds().Min
	top := origin.Y + int(key.Glyph)*s.cellHeight()
	src := image.Rect(origin.X, top, origin.X+s.face.Width, top+s.cellHeight())
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), s.face.Mask, src, draw.Src, nil)
	return dst.Pix
}
