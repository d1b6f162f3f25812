// Package raster turns glyph outlines into alpha masks for the font sources.
//
// Outlines are fed in pixel units with Y growing down; the mask is anchored
// at an integer pixel bounding box computed with [PixelBounds].
package raster
