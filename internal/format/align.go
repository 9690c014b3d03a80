package format

// Align16 returns n aligned up to the next 16-byte boundary.
//
// Example:
//
//	Align16(1)  = 16
//	Align16(16) = 16
//	Align16(17) = 32
func Align16(n uint64) uint64 {
	return (n + AlignmentMask) &^ AlignmentMask
}

// RoundUp converts a requested payload size into the total block size that
// will hold it: header and footer overhead is added, the result is aligned
// up to 16 bytes, and blocks never go below MinBlockSize.
//
// Example:
//
//	RoundUp(1)  = 32
//	RoundUp(16) = 32
//	RoundUp(17) = 48
func RoundUp(payload uint64) uint64 {
	size := Align16(payload + DWordSize)
	if size < MinBlockSize {
		return MinBlockSize
	}
	return size
}
