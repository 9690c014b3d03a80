package heap

import "github.com/heapkit/heapkit/internal/format"

// Explicit free list: an unordered doubly-linked list threaded through the
// first two payload words of each free block. Links are arena offsets of
// block headers, not pointers; 0 is the nil link (no real block header can
// sit at offset 0 because the prologue footer precedes the first block).
//
// Link layout inside a free block:
//
//	block+0   header
//	block+8   prev link
//	block+16  next link
//	...       footer

func (h *Heap) prevOf(block int) int {
	return int(h.readWord(block + format.WordSize))
}

func (h *Heap) nextOf(block int) int {
	return int(h.readWord(block + 2*format.WordSize))
}

func (h *Heap) setPrev(block, prev int) {
	h.writeWord(block+format.WordSize, uint64(prev))
}

func (h *Heap) setNext(block, next int) {
	h.writeWord(block+2*format.WordSize, uint64(next))
}

// insertBlock pushes a free block onto the head of the list (LIFO policy:
// O(1), and recently freed memory is reused first).
func (h *Heap) insertBlock(block int) {
	h.setPrev(block, 0)
	h.setNext(block, h.freeHead)
	if h.freeHead != 0 {
		h.setPrev(h.freeHead, block)
	}
	h.freeHead = block
}

// removeBlock splices a free block out of the list in O(1) using its own
// links; no search is required.
func (h *Heap) removeBlock(block int) {
	prev := h.prevOf(block)
	next := h.nextOf(block)

	if prev == 0 {
		h.freeHead = next
	} else {
		h.setNext(prev, next)
	}
	if next != 0 {
		h.setPrev(next, prev)
	}
}

// findFit scans the free list in list order and returns the first block of
// at least asize bytes, or 0 if none fits. O(number of free blocks); the
// list keeps no size ordering, trading search speed for O(1) insert/remove.
func (h *Heap) findFit(asize uint64) int {
	for cur := h.freeHead; cur != 0; cur = h.nextOf(cur) {
		if h.sizeAt(cur) >= asize {
			return cur
		}
	}
	return 0
}
