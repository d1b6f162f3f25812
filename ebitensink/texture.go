// Package ebitensink adapts an *ebiten.Image to glyphcache.TextureSink, so a
// glyph cache can draw straight into an Ebitengine atlas image.
//
// Resolved rectangles map one-to-one to SubImage regions:
//
//	rect, _ := glyphs.Result()
//	sub := atlas.Image().SubImage(rect.Rectangle()).(*ebiten.Image)
//	screen.DrawImage(sub, op)
package ebitensink

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/glyphcache"
)

// Texture is a TextureSink over an ebiten image.
type Texture struct {
	img *ebiten.Image
}

var _ glyphcache.TextureSink = (*Texture)(nil)

// New creates a width×height atlas image.
func New(width, height int) *Texture {
	return &Texture{img: ebiten.NewImage(width, height)}
}

// Wrap uses an existing image as the atlas.
func Wrap(img *ebiten.Image) *Texture {
	return &Texture{img: img}
}

// Image returns the atlas image.
func (t *Texture) Image() *ebiten.Image {
	return t.img
}

// Width implements glyphcache.TextureSink.
func (t *Texture) Width() uint32 {
	return uint32(t.img.Bounds().Dx()) //nolint:gosec // image sizes are non-negative
}

// Height implements glyphcache.TextureSink.
func (t *Texture) Height() uint32 {
	return uint32(t.img.Bounds().Dy()) //nolint:gosec // image sizes are non-negative
}

// WriteRect implements glyphcache.TextureSink.
func (t *Texture) WriteRect(format glyphcache.PixelFormat, data []byte, rect glyphcache.PlacedRect) error {
	b := t.img.Bounds()
	r := rect.Rectangle().Add(b.Min)
	if !r.In(b) {
		return fmt.Errorf("ebitensink: rect %v outside atlas %v", r, b)
	}

	pix := data
	if format != glyphcache.PixelFormatRGBA {
		pix = glyphcache.ExpandRGBA(format, data, r.Dx(), r.Dy())
	}
	t.img.SubImage(r).(*ebiten.Image).WritePixels(premultiply(pix))
	return nil
}

// premultiply converts straight alpha to the premultiplied alpha ebiten
// expects. pix is returned as is when every pixel is opaque.
func premultiply(pix []byte) []byte {
	var out []byte
	for i := 0; i+3 < len(pix); i += 4 {
		a := pix[i+3]
		if a == 0xff {
			continue
		}
		if out == nil {
			out = make([]byte, len(pix))
			copy(out, pix)
		}
		for c := range 3 {
			out[i+c] = uint8((uint16(pix[i+c])*uint16(a) + 127) / 255) //nolint:gosec // result <= 255
		}
	}
	if out == nil {
		return pix
	}
	return out
}
