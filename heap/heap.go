package heap

import (
	"fmt"
	"os"

	"github.com/heapkit/heapkit/internal/format"
	"github.com/heapkit/heapkit/internal/mem"
)

// Debug flag - set to true to enable verbose logging (compile-time toggle).
const debugHeap = false

// Runtime debug flag for allocation logging - controlled by HEAPKIT_LOG_ALLOC env var.
var logHeap = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

// Ref is an allocation reference: the arena offset of a block's payload.
// The zero Ref is the nil reference; Free treats it as a no-op.
type Ref = uint64

// Stats holds internal allocator counters for testing and instrumentation.
type Stats struct {
	AllocCalls int   // Total Alloc() calls (excluding zero-size rejects)
	AllocFast  int   // Allocations satisfied without growing
	AllocSlow  int   // Allocations that required growth
	FreeCalls  int   // Total Free() calls on non-nil refs
	GrowCalls  int   // Number of region extensions (including the initial chunk)
	GrowBytes  int64 // Total bytes added via growth
	Splits     int   // Number of block splits

	CoalesceForward  int // Merges with a free right neighbor only
	CoalesceBackward int // Merges with a free left neighbor only
	CoalesceBoth     int // Three-way merges

	BytesAllocated int64 // Total block bytes handed out (including tags)
	BytesFreed     int64 // Total block bytes returned
}

// Heap manages a single contiguous, growable arena as boundary-tag blocks.
//
// All heap state lives on this struct; there are no package-level globals.
// NOT thread-safe - see the package documentation.
type Heap struct {
	region mem.Region
	dt     DirtyTracker // optional; nil disables tracking

	// base is the arena offset of the prologue footer; start is the offset
	// of the first real block header (one word later).
	base  int
	start int

	// freeHead is the block offset of the free-list head, 0 when empty.
	// Block offsets are always >= start, so 0 doubles as the nil link.
	freeHead int

	chunk uint64 // growth chunk size, 16-byte aligned
	stats Stats

	// Test hook: called with the aligned size before each growth (nil in production).
	onGrow func(uint64)
}

// Option configures a Heap at construction time.
type Option func(*Heap)

// WithTracker attaches a dirty tracker; every header, footer, and link write
// is reported to it.
func WithTracker(dt DirtyTracker) Option {
	return func(h *Heap) { h.dt = dt }
}

// WithChunkSize overrides the default growth chunk (4096 bytes). The value
// is aligned up to 16 bytes.
func WithChunkSize(n uint64) Option {
	return func(h *Heap) { h.chunk = format.Align16(n) }
}

// New creates a heap over region: it obtains two words for the prologue
// footer and epilogue header sentinels, then grows by one chunk to form the
// first free block. Fails with ErrGrowFail if the region cannot supply
// either piece.
func New(region mem.Region, opts ...Option) (*Heap, error) {
	h := &Heap{
		region: region,
		chunk:  format.ChunkSize,
	}
	for _, o := range opts {
		o(h)
	}
	if h.chunk < format.MinBlockSize {
		h.chunk = format.MinBlockSize
	}

	base, err := region.Extend(format.DWordSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGrowFail, err)
	}
	h.base = base
	h.start = base + format.WordSize

	// Prologue footer and epilogue header: zero-size, always allocated.
	h.writeWord(base, format.Pack(0, true))
	h.writeWord(h.start, format.Pack(0, true))

	if _, err := h.grow(h.chunk); err != nil {
		return nil, err
	}
	return h, nil
}

// Alloc returns a reference to, and a view of, a payload of at least n
// bytes. The payload is 16-byte aligned within the arena and disjoint from
// every other live allocation. Zero-size requests fail with ErrZeroSize and
// leave the heap untouched.
func (h *Heap) Alloc(n uint64) (Ref, []byte, error) {
	if n == 0 {
		return 0, nil, ErrZeroSize
	}
	h.stats.AllocCalls++

	asize := format.RoundUp(n)
	if asize < n {
		// Overhead arithmetic wrapped; no block can hold this.
		return 0, nil, ErrNoSpace
	}
	block := h.findFit(asize)
	grew := false

	if block == 0 {
		if logHeap {
			fmt.Fprintf(os.Stderr, "[ALLOC] NEED GROW: need=%d free=%d\n", asize, h.FreeBlocks())
		}
		if _, err := h.grow(max(h.chunk, asize)); err != nil {
			return 0, nil, err
		}
		grew = true
		block = h.findFit(asize)
		if block == 0 {
			// Growth succeeded but produced no fitting block; with
			// growth sized at max(chunk, asize) this cannot happen
			// unless the heap is corrupt.
			debugLogf("Alloc(%d): no fit after grow", n)
			return 0, nil, ErrNoSpace
		}
	}

	if grew {
		h.stats.AllocSlow++
	} else {
		h.stats.AllocFast++
	}

	size := h.sizeAt(block)
	h.removeBlock(block)
	h.writeHeader(block, size, true)
	h.writeFooter(block, size, true)
	h.split(block, asize)

	final := h.sizeAt(block)
	h.stats.BytesAllocated += int64(final)

	payload := block + format.WordSize
	data := h.region.Bytes()
	return Ref(payload), data[payload : block+int(final)-format.WordSize], nil
}

// Free returns the block owning ref to the free list, coalescing with any
// free neighbors. A nil (zero) ref is a no-op. A ref outside the managed
// range returns ErrBadRef. Double-free and use-after-free are not detected.
func (h *Heap) Free(ref Ref) error {
	if ref == 0 {
		return nil
	}
	h.stats.FreeCalls++

	block := int(ref) - format.WordSize
	data := h.region.Bytes()
	if block < h.start || block+format.MinBlockSize > len(data) {
		return ErrBadRef
	}
	size := h.sizeAt(block)
	if size < format.MinBlockSize || size%format.Alignment != 0 ||
		block+int(size) > len(data)-format.WordSize {
		return ErrBadRef
	}

	h.writeHeader(block, size, false)
	h.writeFooter(block, size, false)
	h.stats.BytesFreed += int64(size)

	h.coalesce(block)
	return nil
}

// grow extends the region by n bytes (aligned up to 16), formats the new
// area as one free block, and writes a fresh epilogue header after it. The
// new block header lands on the old epilogue's word, so the block begins
// exactly where the heap used to end. Returns the offset of the block after
// coalescing with a free left neighbor. On region failure the heap is left
// in its prior valid state.
func (h *Heap) grow(n uint64) (int, error) {
	size := format.Align16(n)
	if h.onGrow != nil {
		h.onGrow(size)
	}
	if _, err := h.region.Extend(int(size)); err != nil {
		debugLogf("grow(%d): region extend failed: %v", size, err)
		return 0, fmt.Errorf("%w: %v", ErrGrowFail, err)
	}
	h.stats.GrowCalls++
	h.stats.GrowBytes += int64(size)

	data := h.region.Bytes()
	block := len(data) - int(size) - format.WordSize

	h.writeHeader(block, size, false)
	h.writeFooter(block, size, false)
	h.writeWord(block+int(size), format.Pack(0, true)) // new epilogue header

	if logHeap {
		fmt.Fprintf(os.Stderr, "[GROW] #%d: +%d bytes, heap now %d bytes\n",
			h.stats.GrowCalls, size, len(data))
	}

	return h.coalesce(block), nil
}

// coalesce merges block with its free address-neighbors, maintaining the
// no-adjacent-free-blocks invariant, then LIFO-inserts the result into the
// free list. The sentinels guarantee both neighbor reads stay in bounds.
// Returns the offset of the merged block.
func (h *Heap) coalesce(block int) int {
	size := h.sizeAt(block)
	prevFooter := h.readWord(block - format.WordSize)
	next := block + int(size)
	nextHeader := h.readWord(next)

	prevAlloc := format.IsAllocated(prevFooter)
	nextAlloc := format.IsAllocated(nextHeader)

	switch {
	case prevAlloc && !nextAlloc:
		h.stats.CoalesceForward++
		h.removeBlock(next)
		size += format.SizeOf(nextHeader)
		h.writeHeader(block, size, false)
		h.writeFooter(block, size, false)

	case !prevAlloc && nextAlloc:
		h.stats.CoalesceBackward++
		prev := block - int(format.SizeOf(prevFooter))
		h.removeBlock(prev)
		size += format.SizeOf(prevFooter)
		block = prev
		h.writeHeader(block, size, false)
		h.writeFooter(block, size, false)

	case !prevAlloc && !nextAlloc:
		h.stats.CoalesceBoth++
		prev := block - int(format.SizeOf(prevFooter))
		h.removeBlock(prev)
		h.removeBlock(next)
		size += format.SizeOf(prevFooter) + format.SizeOf(nextHeader)
		block = prev
		h.writeHeader(block, size, false)
		h.writeFooter(block, size, false)

	default:
		// Both neighbors allocated; block is already tagged free at its
		// current size.
	}

	h.insertBlock(block)
	return block
}

// split divides an allocated block of at least asize bytes: the first asize
// bytes stay allocated, the remainder becomes a new free block - but only
// when the remainder can form a legal block on its own. The remainder is
// coalesced because a block formatted by grow may sit directly left of
// another free block.
func (h *Heap) split(block int, asize uint64) {
	size := h.sizeAt(block)
	rem := size - asize
	if rem < format.MinBlockSize {
		// Caller keeps the whole block; internal fragmentation beats an
		// illegal sub-minimum block.
		return
	}
	h.stats.Splits++

	h.writeHeader(block, asize, true)
	h.writeFooter(block, asize, true)

	tail := block + int(asize)
	h.writeHeader(tail, rem, false)
	h.writeFooter(tail, rem, false)
	h.coalesce(tail)
}

// Size returns the managed range's current length in bytes, sentinels
// included.
func (h *Heap) Size() int {
	return len(h.region.Bytes())
}

// FreeBlocks returns the number of blocks on the free list.
func (h *Heap) FreeBlocks() int {
	n := 0
	for cur := h.freeHead; cur != 0; cur = h.nextOf(cur) {
		n++
	}
	return n
}

// Stats returns a copy of the allocator counters.
func (h *Heap) Stats() Stats {
	return h.stats
}

// ============================================================================
// Word accessors - all boundary-tag arithmetic funnels through these.
// ============================================================================

func (h *Heap) readWord(off int) uint64 {
	return format.ReadWord(h.region.Bytes(), off)
}

func (h *Heap) writeWord(off int, v uint64) {
	format.PutWord(h.region.Bytes(), off, v)
	if h.dt != nil {
		h.dt.Add(off, format.WordSize)
	}
}

// sizeAt returns the size encoded in the header of the block at off.
func (h *Heap) sizeAt(block int) uint64 {
	return format.SizeOf(h.readWord(block))
}

func (h *Heap) writeHeader(block int, size uint64, allocated bool) {
	h.writeWord(block, format.Pack(size, allocated))
}

func (h *Heap) writeFooter(block int, size uint64, allocated bool) {
	h.writeWord(block+int(size)-format.WordSize, format.Pack(size, allocated))
}

// debugLogf prints debug messages if debugHeap is enabled.
func debugLogf(msg string, args ...any) {
	if debugHeap {
		fmt.Fprintf(os.Stderr, "[HEAP] "+msg+"\n", args...)
	}
}
