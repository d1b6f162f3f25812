// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"math"

	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Bounds is an integer pixel box relative to the glyph origin, Y down.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Width returns the box width, never negative.
func (b Bounds) Width() int {
	return max(b.MaxX-b.MinX, 0)
}

// Height returns the box height, never negative.
func (b Bounds) Height() int {
	return max(b.MaxY-b.MinY, 0)
}

// Empty reports whether the box covers no pixel.
func (b Bounds) Empty() bool {
	return b.Width() == 0 || b.Height() == 0
}

// PixelBounds returns the smallest integer box containing the float box
// [minX, maxX] × [minY, maxY].
func PixelBounds(minX, minY, maxX, maxY float64) Bounds {
	if maxX <= minX || maxY <= minY {
		return Bounds{}
	}
	return Bounds{
		MinX: int(math.Floor(minX)),
		MinY: int(math.Floor(minY)),
		MaxX: int(math.Ceil(maxX)),
		MaxY: int(math.Ceil(maxY)),
	}
}

// FixedBounds is PixelBounds for a fixed-point rectangle.
func FixedBounds(r fixed.Rectangle26_6) Bounds {
	if r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y {
		return Bounds{}
	}
	return Bounds{
		MinX: r.Min.X.Floor(),
		MinY: r.Min.Y.Floor(),
		MaxX: r.Max.X.Ceil(),
		MaxY: r.Max.Y.Ceil(),
	}
}

// FixedToFloat converts fixed.Int26_6 to float32.
func FixedToFloat(x fixed.Int26_6) float32 {
	return float32(x) / 64.0
}

// Mask accumulates an outline and renders it to an alpha buffer whose top-left
// pixel is Bounds.Min.
type Mask struct {
	z      *vector.Rasterizer
	bounds Bounds
	open   bool
}

// NewMask creates a mask covering b.
func NewMask(b Bounds) *Mask {
	return &Mask{
		z:      vector.NewRasterizer(b.Width(), b.Height()),
		bounds: b,
	}
}

func (m *Mask) tx(x float32) float32 { return x - float32(m.bounds.MinX) }
func (m *Mask) ty(y float32) float32 { return y - float32(m.bounds.MinY) }

// MoveTo starts a new contour, closing the previous one.
func (m *Mask) MoveTo(x, y float32) {
	if m.open {
		m.z.ClosePath()
	}
	m.z.MoveTo(m.tx(x), m.ty(y))
	m.open = true
}

// LineTo adds a line to (x, y).
func (m *Mask) LineTo(x, y float32) {
	m.z.LineTo(m.tx(x), m.ty(y))
}

// QuadTo adds a quadratic Bézier via (bx, by) to (cx, cy).
func (m *Mask) QuadTo(bx, by, cx, cy float32) {
	m.z.QuadTo(m.tx(bx), m.ty(by), m.tx(cx), m.ty(cy))
}

// CubeTo adds a cubic Bézier via (bx, by) and (cx, cy) to (dx, dy).
func (m *Mask) CubeTo(bx, by, cx, cy, dx, dy float32) {
	m.z.CubeTo(m.tx(bx), m.ty(by), m.tx(cx), m.ty(cy), m.tx(dx), m.ty(dy))
}

// Pixels closes the outline and returns Width*Height coverage bytes,
// row-major from the top row.
func (m *Mask) Pixels() []byte {
	w, h := m.bounds.Width(), m.bounds.Height()
	if w == 0 || h == 0 {
		return []byte{}
	}
	if m.open {
		m.z.ClosePath()
		m.open = false
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	m.z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst.Pix
}
