package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SliceRegion_GrowReturnsOldEnd(t *testing.T) {
	r := NewSliceRegion(0)
	require.Empty(t, r.Bytes())

	off, err := r.Grow(32)
	require.NoError(t, err)
	require.Equal(t, 0, off)
	require.Equal(t, 32, r.Len())

	off, err = r.Grow(4096)
	require.NoError(t, err)
	require.Equal(t, 32, off)
	require.Equal(t, 32+4096, r.Len())
}

func Test_SliceRegion_PreservesDataAcrossGrowth(t *testing.T) {
	r := NewSliceRegion(0)
	_, err := r.Grow(64)
	require.NoError(t, err)

	data := r.Bytes()
	for i := range data {
		data[i] = byte(i)
	}

	// Force several reallocations of the backing array.
	for range 8 {
		_, err = r.Grow(8192)
		require.NoError(t, err)
	}

	data = r.Bytes()
	for i := range 64 {
		require.Equal(t, byte(i), data[i], "byte %d changed across growth", i)
	}
}

func Test_SliceRegion_LimitExhaustion(t *testing.T) {
	r := NewSliceRegion(100)
	_, err := r.Grow(96)
	require.NoError(t, err)

	// The failed grow leaves the region untouched.
	_, err = r.Grow(8)
	require.ErrorIs(t, err, ErrRegionExhausted)
	require.Equal(t, 96, r.Len())

	// A grant that still fits succeeds.
	off, err := r.Grow(4)
	require.NoError(t, err)
	require.Equal(t, 96, off)
}

func Test_SliceRegion_RejectsBadDelta(t *testing.T) {
	r := NewSliceRegion(0)
	_, err := r.Grow(0)
	require.ErrorIs(t, err, ErrBadGrow)
	_, err = r.Grow(-16)
	require.ErrorIs(t, err, ErrBadGrow)
	require.Equal(t, 0, r.Len())
}
