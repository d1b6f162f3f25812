package glyphcache

// TextureSink is the storage side of the cache: a CPU pixel buffer, a GPU
// texture or a staging buffer. Its size is fixed for its whole lifetime.
type TextureSink interface {
	// Width returns the texture width in pixels.
	Width() uint32

	// Height returns the texture height in pixels.
	Height() uint32

	// WriteRect stores data, encoded as format, at rect.
	//
	// Alpha pixels become opaque white with the source byte as alpha, RGB
	// pixels become opaque colors and RGBA pixels are copied as is. The
	// caller guarantees that rect lies inside the texture and that data
	// holds rect.Width*rect.Height pixels. Errors report backend failures
	// only (for example a failed GPU upload).
	WriteRect(format PixelFormat, data []byte, rect PlacedRect) error
}

// CopyRGBA expands width*height pixels of src, encoded as format, into dst,
// an RGBA buffer with the given stride in bytes. Rows are top to bottom and x
// varies fastest in both buffers.
func CopyRGBA(dst []byte, stride int, format PixelFormat, src []byte, width, height int) {
	switch format {
	case PixelFormatAlpha:
		for y := 0; y < height; y++ {
			row := dst[y*stride : y*stride+width*4]
			in := src[y*width : (y+1)*width]
			for x, a := range in {
				i := x * 4
				row[i+0] = 255
				row[i+1] = 255
				row[i+2] = 255
				row[i+3] = a
			}
		}
	case PixelFormatRGB:
		for y := 0; y < height; y++ {
			row := dst[y*stride : y*stride+width*4]
			in := src[y*width*3 : (y+1)*width*3]
			for x := 0; x < width; x++ {
				row[x*4+0] = in[x*3+0]
				row[x*4+1] = in[x*3+1]
				row[x*4+2] = in[x*3+2]
				row[x*4+3] = 255
			}
		}
	case PixelFormatRGBA:
		for y := 0; y < height; y++ {
			copy(dst[y*stride:y*stride+width*4], src[y*width*4:(y+1)*width*4])
		}
	}
}

// ExpandRGBA returns src converted to a tightly packed RGBA buffer.
func ExpandRGBA(format PixelFormat, src []byte, width, height int) []byte {
	out := make([]byte, width*height*4)
	CopyRGBA(out, width*4, format, src, width, height)
	return out
}
