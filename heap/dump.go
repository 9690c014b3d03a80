package heap

import (
	"fmt"
	"io"

	"github.com/heapkit/heapkit/internal/format"
)

// DumpHeap prints every block to w, in address order, for debugging. Free
// blocks include their list links.
func (h *Heap) DumpHeap(w io.Writer) {
	fmt.Fprintf(w, "free list head: 0x%X\n", h.freeHead)

	block := h.start
	for {
		header := h.readWord(block)
		size := format.SizeOf(header)
		if size == 0 {
			break
		}
		if format.IsAllocated(header) {
			fmt.Fprintf(w, "0x%X: %d ALLOCATED\n", block, size)
		} else {
			fmt.Fprintf(w, "0x%X: %d FREE\tprev: 0x%X, next: 0x%X\n",
				block, size, h.prevOf(block), h.nextOf(block))
		}
		block += int(size)
	}
	fmt.Fprintln(w, "end of heap")
}
