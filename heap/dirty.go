package heap

import "sort"

// DirtyTracker is the minimal interface for tracking modified byte ranges.
// The heap reports every header, footer, and link write to it, so a caller
// persisting the arena can flush only what changed.
type DirtyTracker interface {
	// Add marks a byte range as dirty. off is the offset from the start of
	// the arena, length is the number of bytes.
	Add(off, length int)
}

const (
	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 64

	// trackerPageSize is the page granularity Ranges() aligns to.
	trackerPageSize = 4096
)

// Range is a dirty byte range in arena offsets.
type Range struct {
	Off int
	Len int
}

// PageTracker accumulates dirty ranges and coalesces them into page-aligned
// ranges on demand. Add is a plain append; all the work happens in Ranges.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type PageTracker struct {
	ranges   []Range
	pageSize int
}

// NewPageTracker creates a tracker with capacity pre-allocated for typical
// workloads.
func NewPageTracker() *PageTracker {
	return &PageTracker{
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: trackerPageSize,
	}
}

// Add records a dirty range. Ranges are page-aligned and coalesced later, in
// Ranges, keeping this call cheap on the allocation path.
func (t *PageTracker) Add(off, length int) {
	t.ranges = append(t.ranges, Range{Off: off, Len: length})
}

// Ranges returns the recorded writes as sorted, page-aligned,
// non-overlapping ranges.
func (t *PageTracker) Ranges() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, 0, len(t.ranges))
	for _, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := ((r.Off + r.Len + t.pageSize - 1) / t.pageSize) * t.pageSize
		aligned = append(aligned, Range{Off: start, Len: end - start})
	}
	sort.Slice(aligned, func(i, j int) bool { return aligned[i].Off < aligned[j].Off })

	merged := aligned[:1]
	for _, r := range aligned[1:] {
		last := &merged[len(merged)-1]
		if r.Off <= last.Off+last.Len {
			if end := r.Off + r.Len; end > last.Off+last.Len {
				last.Len = end - last.Off
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Reset discards all recorded ranges, keeping the allocated capacity.
func (t *PageTracker) Reset() {
	t.ranges = t.ranges[:0]
}
