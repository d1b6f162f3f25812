package texture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/glyphcache"
)

// Image is an RGBA texture sink backed by an *image.NRGBA. Pixels are stored
// with straight alpha, exactly as glyphcache.CopyRGBA produces them.
type Image struct {
	img *image.NRGBA
}

var _ glyphcache.TextureSink = (*Image)(nil)

// NewImage creates a transparent width×height texture.
func NewImage(width, height int) *Image {
	return &Image{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// FromNRGBA wraps an existing image. Its bounds may start anywhere; texture
// coordinates are relative to img.Bounds().Min.
func FromNRGBA(img *image.NRGBA) *Image {
	return &Image{img: img}
}

// Width implements glyphcache.TextureSink.
func (t *Image) Width() uint32 {
	return uint32(t.img.Rect.Dx()) //nolint:gosec // image sizes are non-negative
}

// Height implements glyphcache.TextureSink.
func (t *Image) Height() uint32 {
	return uint32(t.img.Rect.Dy()) //nolint:gosec // image sizes are non-negative
}

// WriteRect implements glyphcache.TextureSink.
func (t *Image) WriteRect(format glyphcache.PixelFormat, data []byte, rect glyphcache.PlacedRect) error {
	origin := t.img.Rect.Min
	off := t.img.PixOffset(origin.X+int(rect.X), origin.Y+int(rect.Y))
	glyphcache.CopyRGBA(t.img.Pix[off:], t.img.Stride, format, data, int(rect.Width), int(rect.Height))
	return nil
}

// NRGBA returns the underlying image. Callers must not modify it while it is
// owned by a cache.
func (t *Image) NRGBA() *image.NRGBA {
	return t.img
}

// EncodePNG writes the texture to w as PNG.
func (t *Image) EncodePNG(w io.Writer) error {
	return png.Encode(w, t.img)
}

// SavePNG saves the texture to a PNG file.
func (t *Image) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("texture: failed to create %s: %w", path, err)
	}
	if err := t.EncodePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("texture: failed to encode %s: %w", path, err)
	}
	return f.Close()
}
