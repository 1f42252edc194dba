package core

// ByteGrid stores a 2D grid of byte-sized display values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Set stores v at (x, y).
func (g *ByteGrid) Set(x, y int, v uint8) { g.data[g.Index(x, y)] = v }

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// Quantize maps v in [0, ref] onto 0..255, clamping values outside the range.
func Quantize(v, ref float64) uint8 {
	if ref <= 0 || !(v > 0) {
		return 0
	}
	scaled := v / ref * 255
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}
