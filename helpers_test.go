package glyphcache

import "errors"

// fakeFont maps every rune to the glyph with the same value. Glyph sizes come
// from sizes, falling back to def; the requested size is ignored.
type fakeFont struct {
	format PixelFormat
	sizes  map[Glyph][2]uint32
	def    [2]uint32
	data   map[Glyph][]byte

	metricsCalls int
	rasterCalls  int
	badLength    bool
}

func newFakeFont(w, h uint32) *fakeFont {
	return &fakeFont{
		format: PixelFormatAlpha,
		sizes:  make(map[Glyph][2]uint32),
		def:    [2]uint32{w, h},
		data:   make(map[Glyph][]byte),
	}
}

func (f *fakeFont) withGlyph(r rune, w, h uint32) *fakeFont {
	f.sizes[Glyph(r)] = [2]uint32{w, h}
	return f
}

func (f *fakeFont) SupportsVertical() bool       { return false }
func (f *fakeFont) PixelFormat() PixelFormat     { return f.format }
func (f *fakeFont) LineWidth(float32) float32    { return 0 }
func (f *fakeFont) LineHeight(s float32) float32 { return s * 1.25 }

func (f *fakeFont) AppendGlyphs(dst []Glyph, text string) []Glyph {
	for _, r := range text {
		dst = append(dst, Glyph(r))
	}
	return dst
}

func (f *fakeFont) size(g Glyph) (uint32, uint32) {
	if s, ok := f.sizes[g]; ok {
		return s[0], s[1]
	}
	return f.def[0], f.def[1]
}

func (f *fakeFont) Metrics(key GlyphKey) Metrics {
	f.metricsCalls++
	w, h := f.size(key.Glyph)
	return Metrics{Width: w, Height: h, AdvanceX: float32(w)}
}

func (f *fakeFont) Rasterize(key GlyphKey) []byte {
	f.rasterCalls++
	if d, ok := f.data[key.Glyph]; ok {
		return d
	}
	w, h := f.size(key.Glyph)
	n := int(w) * int(h) * f.format.BytesPerPixel()
	if f.badLength {
		n++
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(key.Glyph)
	}
	return out
}

// write is one recorded WriteRect call.
type write struct {
	format PixelFormat
	rect   PlacedRect
}

// fakeTexture records writes and keeps an RGBA copy of the pixels.
type fakeTexture struct {
	width, height uint32
	pix           []byte
	writes        []write
	err           error
}

func newFakeTexture(w, h uint32) *fakeTexture {
	return &fakeTexture{width: w, height: h, pix: make([]byte, int(w)*int(h)*4)}
}

func (t *fakeTexture) Width() uint32  { return t.width }
func (t *fakeTexture) Height() uint32 { return t.height }

func (t *fakeTexture) WriteRect(format PixelFormat, data []byte, rect PlacedRect) error {
	if t.err != nil {
		return t.err
	}
	stride := int(t.width) * 4
	off := int(rect.Y)*stride + int(rect.X)*4
	CopyRGBA(t.pix[off:], stride, format, data, int(rect.Width), int(rect.Height))
	t.writes = append(t.writes, write{format: format, rect: rect})
	return nil
}

func (t *fakeTexture) at(x, y int) [4]byte {
	i := (y*int(t.width) + x) * 4
	return [4]byte{t.pix[i], t.pix[i+1], t.pix[i+2], t.pix[i+3]}
}

var errUpload = errors.New("upload failed")
