package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heapkit/heapkit/internal/mem"
)

func Test_PageTracker_AlignsAndCoalescesRanges(t *testing.T) {
	pt := NewPageTracker()
	require.Nil(t, pt.Ranges())

	pt.Add(10, 8)
	require.Equal(t, []Range{{Off: 0, Len: 4096}}, pt.Ranges())

	// Overlapping and adjacent pages merge into one range.
	pt.Add(4000, 200)
	require.Equal(t, []Range{{Off: 0, Len: 8192}}, pt.Ranges())

	// A distant write stays separate.
	pt.Add(20000, 4)
	require.Equal(t, []Range{
		{Off: 0, Len: 8192},
		{Off: 16384, Len: 4096},
	}, pt.Ranges())

	pt.Reset()
	require.Nil(t, pt.Ranges())
}

func Test_PageTracker_OutOfOrderAdds(t *testing.T) {
	pt := NewPageTracker()
	pt.Add(9000, 8)
	pt.Add(100, 8)
	pt.Add(4097, 8)

	require.Equal(t, []Range{
		{Off: 0, Len: 12288},
	}, pt.Ranges())
}

func Test_Heap_ReportsMetadataWritesToTracker(t *testing.T) {
	pt := NewPageTracker()
	h, err := New(mem.NewSlice(1<<20), WithTracker(pt))
	require.NoError(t, err)

	// Construction alone writes sentinels and the first block's tags.
	require.NotEmpty(t, pt.Ranges())
	pt.Reset()

	ref, _, err := h.Alloc(100)
	require.NoError(t, err)
	ranges := pt.Ranges()
	require.NotEmpty(t, ranges)
	// The allocated block's header lives on the first page.
	require.Equal(t, 0, ranges[0].Off)

	pt.Reset()
	require.NoError(t, h.Free(ref))
	require.NotEmpty(t, pt.Ranges())
	require.NoError(t, h.Check())
}
