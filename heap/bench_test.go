package heap

import (
	"testing"

	"github.com/heapkit/heapkit/internal/mem"
)

func Benchmark_AllocFreePair(b *testing.B) {
	h, err := New(mem.NewSlice(1 << 24))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ref, _, allocErr := h.Alloc(128)
		if allocErr != nil {
			b.Fatal(allocErr)
		}
		if freeErr := h.Free(ref); freeErr != nil {
			b.Fatal(freeErr)
		}
	}
}

func Benchmark_AllocVariedSizes(b *testing.B) {
	h, err := New(mem.NewSlice(1 << 26))
	if err != nil {
		b.Fatal(err)
	}
	sizes := []uint64{16, 48, 128, 512, 2048}
	refs := make([]Ref, 0, 1024)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ref, _, allocErr := h.Alloc(sizes[i%len(sizes)])
		if allocErr != nil {
			b.Fatal(allocErr)
		}
		refs = append(refs, ref)
		if len(refs) == cap(refs) {
			b.StopTimer()
			for _, r := range refs {
				if freeErr := h.Free(r); freeErr != nil {
					b.Fatal(freeErr)
				}
			}
			refs = refs[:0]
			b.StartTimer()
		}
	}
}
