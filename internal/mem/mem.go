// Package mem provides the raw heap growth primitive: a single contiguous
// byte range that can only be extended, never shrunk or moved. The heap
// manager formats this range into blocks; this package knows nothing about
// blocks.
package mem

import "errors"

// ErrOutOfMemory indicates the region has reached its configured limit and
// cannot be extended further.
var ErrOutOfMemory = errors.New("mem: region limit exhausted")

// Region is a growable contiguous byte range.
//
// Implementations must keep the backing bytes stable across Extend: slices
// handed out by Bytes before an Extend must still view the same memory
// afterwards. A failed Extend must leave the region completely unchanged.
//
// NOT thread-safe. Only one goroutine should use a Region at a time.
type Region interface {
	// Bytes returns the currently managed range. The slice is a live view;
	// it grows on the next call after a successful Extend.
	Bytes() []byte

	// Extend grows the range by n bytes (n > 0) and returns the offset of
	// the start of the newly granted area.
	Extend(n int) (int, error)

	// Bounds returns the managed range as [lo, hi) offsets, for
	// consistency checking.
	Bounds() (lo, hi int)

	// Close releases the region. The bytes must not be touched afterwards.
	Close() error
}
