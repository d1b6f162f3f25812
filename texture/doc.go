// Package texture provides CPU-side texture sinks for glyphcache.
//
// [Image] stores straight-alpha RGBA pixels in an *image.NRGBA and can be saved as PNG or
// handed to any image consumer. [Mask] stores coverage only, in an
// *image.Alpha, for pipelines that tint glyphs in a shader.
//
// Both are plain pixel buffers: they are NOT safe for concurrent use and are
// meant to be owned by a single cache.
package texture
