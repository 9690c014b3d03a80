// Package format houses the boundary-tag block codec: the word layout,
// alignment rules, and size constants shared by every block in the heap.
// The goal is to keep the bit manipulation in one place so higher-level
// packages never touch raw words directly.
package format

const (
	// WordSize is the size in bytes of one boundary-tag word. Headers and
	// footers are each exactly one word.
	WordSize = 8

	// DWordSize is two words - the per-block metadata overhead (header plus
	// footer) carried by every allocation.
	DWordSize = 2 * WordSize

	// Alignment is the required alignment of every block size and therefore
	// of every payload address. All sizes being multiples of 16 is what
	// frees the low 4 bits of a word for flags.
	Alignment = 16

	// AlignmentMask is used to align sizes up to the next Alignment boundary.
	AlignmentMask = Alignment - 1

	// MinBlockSize is the smallest legal block: header, footer, and two link
	// words for free-list threading.
	MinBlockSize = 4 * WordSize

	// ChunkSize is the default heap extension size in bytes. Must be a
	// multiple of Alignment.
	ChunkSize = 1 << 12
)

const (
	// AllocMask extracts the allocated flag (bit 0) from a word.
	AllocMask uint64 = 0x1

	// SizeMask masks off the low 4 flag bits, leaving the block size.
	SizeMask = ^uint64(0xF)
)
