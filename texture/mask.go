package texture

import (
	"image"

	"github.com/gogpu/glyphcache"
)

// Mask is a coverage-only texture sink backed by an *image.Alpha.
//
// Alpha glyphs are copied as is. RGBA glyphs keep their alpha channel and RGB
// glyphs are reduced to their luminance, so color glyphs become silhouettes.
type Mask struct {
	img *image.Alpha
}

var _ glyphcache.TextureSink = (*Mask)(nil)

// NewMask creates an empty width×height mask.
func NewMask(width, height int) *Mask {
	return &Mask{img: image.NewAlpha(image.Rect(0, 0, width, height))}
}

// Width implements glyphcache.TextureSink.
func (t *Mask) Width() uint32 {
	return uint32(t.img.Rect.Dx()) //nolint:gosec // image sizes are non-negative
}

// Height implements glyphcache.TextureSink.
func (t *Mask) Height() uint32 {
	return uint32(t.img.Rect.Dy()) //nolint:gosec // image sizes are non-negative
}

// WriteRect implements glyphcache.TextureSink.
func (t *Mask) WriteRect(format glyphcache.PixelFormat, data []byte, rect glyphcache.PlacedRect) error {
	w := int(rect.Width)
	bpp := format.BytesPerPixel()
	origin := t.img.Rect.Min
	for y := 0; y < int(rect.Height); y++ {
		off := t.img.PixOffset(origin.X+int(rect.X), origin.Y+int(rect.Y)+y)
		row := t.img.Pix[off : off+w]
		in := data[y*w*bpp : (y+1)*w*bpp]
		switch format {
		case glyphcache.PixelFormatAlpha:
			copy(row, in)
		case glyphcache.PixelFormatRGB:
			for x := range row {
				row[x] = luminance(in[x*3], in[x*3+1], in[x*3+2])
			}
		case glyphcache.PixelFormatRGBA:
			for x := range row {
				row[x] = in[x*4+3]
			}
		}
	}
	return nil
}

// Alpha returns the underlying image. Callers must not modify it while it is
// owned by a cache.
func (t *Mask) Alpha() *image.Alpha {
	return t.img
}

// luminance uses the Rec. 601 weights in 16.16 fixed point.
func luminance(r, g, b uint8) uint8 {
	y := (19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16
	return uint8(y) //nolint:gosec // y <= 255
}
