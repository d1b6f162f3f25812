package glyphcache

// shelfPacker implements shelf-based rectangle packing with a single cursor.
//
// Items are placed left-to-right on the current shelf until the next one does
// not fit horizontally, then a new shelf starts below the tallest item of the
// current one. Earlier shelves are never revisited, which keeps allocation
// O(1) at the cost of some fragmentation when heights vary within a shelf.
type shelfPacker struct {
	width  uint32 // Total width of the texture
	height uint32 // Total height of the texture

	x         uint32 // Next free x on the current shelf
	y         uint32 // Top of the current shelf
	rowHeight uint32 // Tallest item on the current shelf

	// Tracking for utilization
	usedArea uint64
	shelves  int
}

func newShelfPacker(width, height uint32) shelfPacker {
	return shelfPacker{width: width, height: height}
}

// fits reports whether a w×h item could ever be placed in an empty texture.
func (p *shelfPacker) fits(w, h uint32) bool {
	return w <= p.width && h <= p.height
}

// place returns the slot for a w×h item without changing the packer.
// ok is false when the texture has no room left.
func (p *shelfPacker) place(w, h uint32) (x, y uint32, wrapped, ok bool) {
	x, y = p.x, p.y
	if x+w > p.width {
		x = 0
		y += p.rowHeight
		wrapped = true
	}
	if y+h > p.height {
		return 0, 0, wrapped, false
	}
	return x, y, wrapped, true
}

// commit records an item returned by place.
func (p *shelfPacker) commit(x, y, w, h uint32, wrapped bool) {
	if wrapped {
		p.rowHeight = 0
	}
	if p.shelves == 0 || wrapped {
		p.shelves++
	}
	p.x = x + w
	p.y = y
	p.rowHeight = max(p.rowHeight, h)
	p.usedArea += uint64(w) * uint64(h)
}

// reset rewinds the cursor to the origin.
func (p *shelfPacker) reset() {
	p.x, p.y, p.rowHeight = 0, 0, 0
	p.usedArea = 0
	p.shelves = 0
}

// utilization returns the fraction of the texture covered by items (0.0 to 1.0).
func (p *shelfPacker) utilization() float64 {
	total := uint64(p.width) * uint64(p.height)
	if total == 0 {
		return 0
	}
	return float64(p.usedArea) / float64(total)
}

// remainingHeight returns the vertical space below the current shelf.
func (p *shelfPacker) remainingHeight() uint32 {
	used := p.y + p.rowHeight
	if used >= p.height {
		return 0
	}
	return p.height - used
}
