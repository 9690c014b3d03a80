package mem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SliceRegion_ExtendReturnsSequentialOffsets(t *testing.T) {
	r := NewSlice(1 << 16)

	off, err := r.Extend(16)
	require.NoError(t, err)
	require.Equal(t, 0, off)

	off, err = r.Extend(4096)
	require.NoError(t, err)
	require.Equal(t, 16, off)

	lo, hi := r.Bounds()
	require.Equal(t, 0, lo)
	require.Equal(t, 16+4096, hi)
	require.Len(t, r.Bytes(), 16+4096)
}

func Test_SliceRegion_LimitExhausted(t *testing.T) {
	r := NewSlice(64)

	_, err := r.Extend(48)
	require.NoError(t, err)

	// A failed extend leaves the region unchanged.
	_, err = r.Extend(32)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Len(t, r.Bytes(), 48)

	_, err = r.Extend(16)
	require.NoError(t, err)
	require.Len(t, r.Bytes(), 64)
}

func Test_SliceRegion_RejectsNonPositiveExtend(t *testing.T) {
	r := NewSlice(64)
	_, err := r.Extend(0)
	require.Error(t, err)
	_, err = r.Extend(-8)
	require.Error(t, err)
	require.Empty(t, r.Bytes())
}

func Test_SliceRegion_BytesStableAcrossExtend(t *testing.T) {
	r := NewSlice(1 << 12)

	_, err := r.Extend(32)
	require.NoError(t, err)
	before := r.Bytes()
	before[0] = 0xAB
	before[31] = 0xCD

	// Growing must not move the backing array.
	_, err = r.Extend(512)
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), r.Bytes()[0])
	require.Equal(t, byte(0xCD), r.Bytes()[31])
	require.Equal(t, &before[0], &r.Bytes()[0])
}

func Test_SliceRegion_NewBytesAreZeroed(t *testing.T) {
	r := NewSlice(256)
	off, err := r.Extend(256)
	require.NoError(t, err)
	for _, b := range r.Bytes()[off:] {
		require.Zero(t, b)
	}
}
