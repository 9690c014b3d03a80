//go:build unix

package mem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const pageSize = 4096

// ReservedRegion is a Region backed by an anonymous memory mapping.
//
// The full limit is reserved up front with PROT_NONE, and pages are committed
// with mprotect as the region extends. The base address therefore never
// moves, and touching memory beyond the current break faults immediately
// instead of silently succeeding.
type ReservedRegion struct {
	full   []byte // whole reservation, len == page-aligned limit
	used   int    // current break
	commit int    // committed prefix, page-aligned
}

// NewReserved creates a mapping-backed region that can grow up to limit
// bytes. The limit is rounded up to a whole number of pages.
func NewReserved(limit int) (Region, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("mem: invalid region limit %d", limit)
	}
	limit = alignPage(limit)
	full, err := unix.Mmap(-1, 0, limit, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mem: reserve %d bytes: %w", limit, err)
	}
	return &ReservedRegion{full: full}, nil
}

// Bytes returns the currently managed range.
func (r *ReservedRegion) Bytes() []byte {
	return r.full[:r.used]
}

// Extend grows the region by n bytes and returns the offset of the new area.
func (r *ReservedRegion) Extend(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("mem: invalid extend size %d", n)
	}
	end := r.used + n
	if end > len(r.full) {
		return 0, ErrOutOfMemory
	}
	if end > r.commit {
		pageEnd := alignPage(end)
		if pageEnd > len(r.full) {
			pageEnd = len(r.full)
		}
		if err := unix.Mprotect(r.full[r.commit:pageEnd], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("mem: commit pages: %w", err)
		}
		r.commit = pageEnd
	}
	off := r.used
	r.used = end
	return off, nil
}

// Bounds returns the managed range as [lo, hi) offsets.
func (r *ReservedRegion) Bounds() (lo, hi int) {
	return 0, r.used
}

// Close unmaps the reservation. Double-close is a no-op.
func (r *ReservedRegion) Close() error {
	if r.full == nil {
		return nil
	}
	err := unix.Munmap(r.full)
	r.full = nil
	r.used = 0
	r.commit = 0
	return err
}

func alignPage(n int) int {
	return (n + pageSize - 1) &^ (pageSize - 1)
}
