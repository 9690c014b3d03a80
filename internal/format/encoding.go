package format

import "encoding/binary"

// Binary encoding utilities for little-endian boundary-tag words.
//
// Implementation: Uses encoding/binary.LittleEndian. The standard library
// implementation is inlined and optimized by the compiler; unsafe pointer
// variants provide no measurable benefit here.

// PutWord writes a boundary-tag word to the arena at the specified offset.
func PutWord(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+WordSize], v)
}

// ReadWord reads a boundary-tag word from the arena at the specified offset.
func ReadWord(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+WordSize])
}
