//go:build !unix

package mem

import "fmt"

// NewReserved falls back to a slice-backed region on platforms without
// anonymous mmap support.
func NewReserved(limit int) (Region, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("mem: invalid region limit %d", limit)
	}
	return NewSlice(limit), nil
}
