package mem

import "fmt"

// SliceRegion is a portable, in-memory Region backed by a byte slice.
//
// The full limit is reserved up front as slice capacity, so appends never
// reallocate and views returned by Bytes stay valid across Extend. This
// mirrors an sbrk-style break pointer moving through a fixed arena.
type SliceRegion struct {
	buf   []byte
	limit int
}

// NewSlice creates a region that can grow up to limit bytes.
func NewSlice(limit int) *SliceRegion {
	if limit < 0 {
		limit = 0
	}
	return &SliceRegion{
		buf:   make([]byte, 0, limit),
		limit: limit,
	}
}

// Bytes returns the currently managed range.
func (r *SliceRegion) Bytes() []byte {
	return r.buf
}

// Extend grows the region by n bytes and returns the offset of the new area.
func (r *SliceRegion) Extend(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("mem: invalid extend size %d", n)
	}
	if len(r.buf)+n > r.limit {
		return 0, ErrOutOfMemory
	}
	off := len(r.buf)
	// Within reserved capacity, so the backing array never moves.
	r.buf = r.buf[:off+n]
	return off, nil
}

// Bounds returns the managed range as [lo, hi) offsets.
func (r *SliceRegion) Bounds() (lo, hi int) {
	return 0, len(r.buf)
}

// Close releases the region.
func (r *SliceRegion) Close() error {
	r.buf = nil
	r.limit = 0
	return nil
}
