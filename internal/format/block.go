package format

// Pack encodes a block size and allocation flag into one boundary-tag word.
// The caller guarantees size is a multiple of Alignment, so the low 4 bits
// are always clear and bit 0 can carry the flag.
func Pack(size uint64, allocated bool) uint64 {
	if allocated {
		return size | AllocMask
	}
	return size
}

// SizeOf extracts the block size from a boundary-tag word.
func SizeOf(word uint64) uint64 {
	return word & SizeMask
}

// IsAllocated reports whether a boundary-tag word marks its block allocated.
func IsAllocated(word uint64) bool {
	return word&AllocMask != 0
}
