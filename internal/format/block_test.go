package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Pack_RoundTripsSizeAndFlag(t *testing.T) {
	w := Pack(4096, true)
	require.Equal(t, uint64(4096), SizeOf(w))
	require.True(t, IsAllocated(w))

	w = Pack(32, false)
	require.Equal(t, uint64(32), SizeOf(w))
	require.False(t, IsAllocated(w))

	// Zero-size sentinel words stay decodable.
	w = Pack(0, true)
	require.Equal(t, uint64(0), SizeOf(w))
	require.True(t, IsAllocated(w))
}

func Test_Align16(t *testing.T) {
	require.Equal(t, uint64(0), Align16(0))
	require.Equal(t, uint64(16), Align16(1))
	require.Equal(t, uint64(16), Align16(16))
	require.Equal(t, uint64(32), Align16(17))
	require.Equal(t, uint64(4096), Align16(4096))
	require.Equal(t, uint64(4112), Align16(4097))
}

func Test_RoundUp_ClampsToMinBlockSize(t *testing.T) {
	// Tiny payloads still need room for the free-list links they will carry
	// once the block is freed.
	require.Equal(t, uint64(MinBlockSize), RoundUp(1))
	require.Equal(t, uint64(MinBlockSize), RoundUp(8))
	require.Equal(t, uint64(MinBlockSize), RoundUp(16))
}

func Test_RoundUp_AddsOverheadAndAligns(t *testing.T) {
	// 17 bytes of payload + 16 bytes of overhead = 33, aligned up to 48.
	require.Equal(t, uint64(48), RoundUp(17))
	require.Equal(t, uint64(48), RoundUp(32))
	require.Equal(t, uint64(64), RoundUp(33))
	require.Equal(t, uint64(4128), RoundUp(4097))
}

func Test_RoundUp_SizesAreAlignedAndMinimal(t *testing.T) {
	for n := uint64(1); n <= 256; n++ {
		size := RoundUp(n)
		require.Zero(t, size%Alignment, "RoundUp(%d) not 16-byte aligned", n)
		require.GreaterOrEqual(t, size, uint64(MinBlockSize))
		require.GreaterOrEqual(t, size-DWordSize, n, "RoundUp(%d) too small for payload", n)
		if size > MinBlockSize {
			// Smallest multiple of 16 that still fits: one step down must not.
			require.Less(t, size-Alignment-DWordSize, n)
		}
	}
}

func Test_WordEncoding_LittleEndian(t *testing.T) {
	buf := make([]byte, 24)
	PutWord(buf, 8, 0x1122334455667788)
	require.Equal(t, byte(0x88), buf[8])
	require.Equal(t, byte(0x11), buf[15])
	require.Equal(t, uint64(0x1122334455667788), ReadWord(buf, 8))
}
