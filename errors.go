package glyphcache

import "errors"

// Sentinel errors for glyphcache package.
var (
	// ErrTextureTooSmall is returned when a glyph is larger than the whole
	// texture. Retrying with the same texture can never succeed.
	ErrTextureTooSmall = errors.New("glyphcache: glyph larger than texture")

	// ErrOutOfSpace is returned when the texture has no room left at the
	// current packing state. Clear the cache and retry, or use a bigger
	// texture.
	ErrOutOfSpace = errors.New("glyphcache: texture out of space")
)

// PlacementError is returned when a glyph could not be placed in the texture.
// It wraps ErrTextureTooSmall, ErrOutOfSpace or the error of the texture sink.
type PlacementError struct {
	Key    GlyphKey
	Width  uint32
	Height uint32
	Err    error
}

func (e *PlacementError) Error() string {
	return e.Err.Error() + " (" + e.Key.String() + ")"
}

// Unwrap returns the underlying error.
func (e *PlacementError) Unwrap() error {
	return e.Err
}
