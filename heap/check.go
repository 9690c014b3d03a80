package heap

import (
	"fmt"

	"github.com/heapkit/heapkit/internal/format"
)

// ValidationError describes a single invariant violation found by Check.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Check walks the heap and the free list and verifies every structural
// invariant:
//
//   - every block's header equals its footer
//   - every block size is 16-byte aligned and at least the minimum
//   - every block lies within the region's bounds
//   - no two address-adjacent blocks are both free
//   - every free-list node is marked free and its back-link is consistent
//   - the free list has no cycles
//   - free-list membership exactly matches the blocks marked free
//
// Check is debug tooling, not a hot-path guard: it returns the first
// violation found and never mutates or aborts. By the time it reports a
// failure the heap state is already suspect, so nothing is auto-corrected.
func (h *Heap) Check() error {
	lo, hi := h.region.Bounds()
	data := h.region.Bytes()

	if h.start < lo+format.WordSize || h.start >= hi {
		return &ValidationError{
			Type:    "HeapBounds",
			Message: fmt.Sprintf("heap start 0x%X outside managed range [0x%X, 0x%X)", h.start, lo, hi),
			Offset:  -1,
		}
	}

	freeInHeap := 0
	prevFree := false
	block := h.start

	for {
		header := h.readWord(block)
		size := format.SizeOf(header)

		if size == 0 {
			// Epilogue sentinel: allocated, and the very last word.
			if !format.IsAllocated(header) {
				return &ValidationError{
					Type:    "Sentinel",
					Message: "epilogue header not marked allocated",
					Offset:  block,
				}
			}
			if block != len(data)-format.WordSize {
				return &ValidationError{
					Type:    "Sentinel",
					Message: fmt.Sprintf("epilogue header not at end of heap (end=0x%X)", len(data)),
					Offset:  block,
				}
			}
			break
		}

		if size%format.Alignment != 0 {
			return &ValidationError{
				Type:    "BlockSize",
				Message: fmt.Sprintf("size %d not a multiple of %d", size, format.Alignment),
				Offset:  block,
			}
		}
		if size < format.MinBlockSize {
			return &ValidationError{
				Type:    "BlockSize",
				Message: fmt.Sprintf("size %d below minimum %d", size, format.MinBlockSize),
				Offset:  block,
			}
		}
		if block < lo || block+int(size) > hi-format.WordSize {
			return &ValidationError{
				Type:    "BlockBounds",
				Message: fmt.Sprintf("block [0x%X, 0x%X) outside managed range", block, block+int(size)),
				Offset:  block,
			}
		}

		footer := h.readWord(block + int(size) - format.WordSize)
		if footer != header {
			return &ValidationError{
				Type:    "BoundaryTag",
				Message: fmt.Sprintf("header 0x%016X != footer 0x%016X", header, footer),
				Offset:  block,
			}
		}

		free := !format.IsAllocated(header)
		if free {
			if prevFree {
				return &ValidationError{
					Type:    "Coalescing",
					Message: "two adjacent free blocks",
					Offset:  block,
				}
			}
			freeInHeap++
		}
		prevFree = free
		block += int(size)
	}

	// Free-list pass: marked free, back-links consistent, no cycles. A list
	// longer than the number of free blocks in the heap walk implies a cycle.
	seen := 0
	prev := 0
	for cur := h.freeHead; cur != 0; cur = h.nextOf(cur) {
		if cur < h.start || cur+format.MinBlockSize > hi {
			return &ValidationError{
				Type:    "FreeList",
				Message: "link points outside managed range",
				Offset:  cur,
			}
		}
		if format.IsAllocated(h.readWord(cur)) {
			return &ValidationError{
				Type:    "FreeList",
				Message: "listed block not marked free",
				Offset:  cur,
			}
		}
		if h.prevOf(cur) != prev {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("prev link 0x%X, expected 0x%X", h.prevOf(cur), prev),
				Offset:  cur,
			}
		}
		seen++
		if seen > freeInHeap {
			return &ValidationError{
				Type:    "FreeList",
				Message: "list longer than number of free blocks (cycle?)",
				Offset:  cur,
			}
		}
		prev = cur
	}

	if seen != freeInHeap {
		return &ValidationError{
			Type:    "FreeList",
			Message: fmt.Sprintf("%d listed blocks but %d free blocks in heap", seen, freeInHeap),
			Offset:  -1,
		}
	}

	return nil
}
