package heap

import "errors"

var (
	// ErrZeroSize indicates a zero-byte allocation request, which this
	// allocator rejects without touching the heap.
	ErrZeroSize = errors.New("heap: zero-size allocation")

	// ErrNoSpace indicates that no free block large enough was found even
	// after growing the heap.
	ErrNoSpace = errors.New("heap: no free block large enough")

	// ErrBadRef indicates an out-of-bounds or corrupt block reference.
	ErrBadRef = errors.New("heap: bad block reference")

	// ErrGrowFail indicates that extending the underlying region failed.
	ErrGrowFail = errors.New("heap: grow failed")
)
