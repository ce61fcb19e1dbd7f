package alloc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heapkit/heapkit/heap"
	"github.com/heapkit/heapkit/internal/format"
)

func Test_New_SeedsOneChunk(t *testing.T) {
	a := newTestAllocator(t, 0)

	require.Equal(t, fixedOverhead+format.ChunkSize, a.HeapSize())
	require.Equal(t, 1, a.FreeBlocks())
	require.Equal(t, format.ChunkSize, a.FreeBytes())
	requireHealthy(t, a, "init")
}

func Test_New_PropagatesGrowerFailure(t *testing.T) {
	_, err := New(heap.NewSliceRegion(16))
	require.Error(t, err)
	require.ErrorIs(t, err, heap.ErrRegionExhausted)
}

func Test_New_RejectsNonEmptyRegion(t *testing.T) {
	r := heap.NewSliceRegion(0)
	_, err := r.Grow(64)
	require.NoError(t, err)
	_, err = New(r)
	require.Error(t, err)
}

func Test_Alloc_RejectsNonPositiveSize(t *testing.T) {
	a := newTestAllocator(t, 0)
	before := a.Fingerprint()

	ref, err := a.Alloc(0)
	require.ErrorIs(t, err, ErrBadSize)
	require.Equal(t, NilRef, ref)

	ref, err = a.Alloc(-5)
	require.ErrorIs(t, err, ErrBadSize)
	require.Equal(t, NilRef, ref)

	// The heap image is byte-for-byte unchanged.
	require.Equal(t, before, a.Fingerprint())
	requireHealthy(t, a, "reject")
}

func Test_Alloc_RoundTrip(t *testing.T) {
	a := newTestAllocator(t, 0)

	// Small, medium, and multi-chunk payloads.
	for _, n := range []int{1, 8, 16, 100, 1000, 3000, 10000} {
		ref, err := a.Alloc(n)
		require.NoError(t, err, "Alloc(%d)", n)
		require.GreaterOrEqual(t, a.PayloadSize(ref), n)

		p := a.Payload(ref)
		for i := range n {
			p[i] = byte(i * 7)
		}
		p = a.Payload(ref)
		for i := range n {
			require.Equal(t, byte(i*7), p[i], "Alloc(%d) byte %d", n, i)
		}
		requireHealthy(t, a, "roundtrip")
	}
}

func Test_Alloc_DisjointBlocks(t *testing.T) {
	// Scenario: two back-to-back small allocations land in disjoint
	// regions at least one minimum block apart.
	a := newTestAllocator(t, 0)

	p1, err := a.Alloc(8)
	require.NoError(t, err)
	p2, err := a.Alloc(8)
	require.NoError(t, err)

	require.GreaterOrEqual(t, p2, p1+format.MinBlockSize)

	for i := range a.Payload(p1) {
		a.Payload(p1)[i] = 0x11
	}
	for i := range a.Payload(p2) {
		a.Payload(p2)[i] = 0x22
	}
	for _, b := range a.Payload(p1) {
		require.Equal(t, byte(0x11), b)
	}
	requireHealthy(t, a, "disjoint")
}

func Test_Alloc_ReusesMostRecentlyFreed(t *testing.T) {
	// Scenario: a freed block is handed back for the next request of the
	// same size, because insertion is at the head of the list.
	a := newTestAllocator(t, 0)

	p, err := a.Alloc(100)
	require.NoError(t, err)
	require.NoError(t, a.Free(p))

	q, err := a.Alloc(100)
	require.NoError(t, err)
	require.Equal(t, p, q)
	requireHealthy(t, a, "reuse")
}

func Test_Alloc_MRFOrderAcrossSeveralFrees(t *testing.T) {
	a := newTestAllocator(t, 0)

	var refs []Ref
	for range 5 {
		ref, err := a.Alloc(16)
		require.NoError(t, err)
		refs = append(refs, ref)
	}

	// Free two non-adjacent blocks; the later free sits at the list head.
	require.NoError(t, a.Free(refs[1]))
	require.NoError(t, a.Free(refs[3]))

	got, err := a.Alloc(16)
	require.NoError(t, err)
	require.Equal(t, refs[3], got, "most recently freed block is reused first")

	got, err = a.Alloc(16)
	require.NoError(t, err)
	require.Equal(t, refs[1], got)
	requireHealthy(t, a, "mrf")
}

func Test_Alloc_GrowsBeyondChunk(t *testing.T) {
	a := newTestAllocator(t, 0)

	ref, err := a.Alloc(3 * format.ChunkSize)
	require.NoError(t, err)
	require.GreaterOrEqual(t, a.PayloadSize(ref), 3*format.ChunkSize)
	require.GreaterOrEqual(t, a.Stats().GrowCalls, 2)
	requireHealthy(t, a, "bigalloc")
}

func Test_Alloc_NoSpaceWhenRegionExhausted(t *testing.T) {
	// Region limit admits the initial chunk and nothing more.
	a := newTestAllocator(t, fixedOverhead+format.ChunkSize)

	ref, err := a.Alloc(2 * format.ChunkSize)
	require.ErrorIs(t, err, ErrNoSpace)
	require.ErrorIs(t, err, heap.ErrRegionExhausted)
	require.Equal(t, NilRef, ref)
	requireHealthy(t, a, "exhausted")

	// Requests that fit the existing chunk still succeed.
	ref, err = a.Alloc(64)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, ref)
}

func Test_Free_RejectsBadRefs(t *testing.T) {
	a := newTestAllocator(t, 0)
	ref, err := a.Alloc(32)
	require.NoError(t, err)

	require.ErrorIs(t, a.Free(NilRef), ErrBadRef)
	require.ErrorIs(t, a.Free(ref+8), ErrBadRef)        // misaligned
	require.ErrorIs(t, a.Free(a.HeapSize()), ErrBadRef) // out of range
	require.NoError(t, a.Free(ref))
	requireHealthy(t, a, "badref")
}

func Test_Realloc_NilRefBehavesLikeAlloc(t *testing.T) {
	a := newTestAllocator(t, 0)

	ref, err := a.Realloc(NilRef, 48)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, ref)
	require.GreaterOrEqual(t, a.PayloadSize(ref), 48)
	requireHealthy(t, a, "realloc-nil")
}

func Test_Realloc_ZeroSizeBehavesLikeFree(t *testing.T) {
	a := newTestAllocator(t, 0)

	ref, err := a.Alloc(48)
	require.NoError(t, err)
	freeBefore := a.FreeBytes()

	got, err := a.Realloc(ref, 0)
	require.NoError(t, err)
	require.Equal(t, NilRef, got)
	require.Greater(t, a.FreeBytes(), freeBefore)
	requireHealthy(t, a, "realloc-zero")
}

func Test_Realloc_ShrinkThenGrowPreservesPrefix(t *testing.T) {
	// Scenario: shrink truncates to the new size, a later grow preserves
	// what survived the shrink and nothing more.
	a := newTestAllocator(t, 0)

	p, err := a.Alloc(64)
	require.NoError(t, err)
	for i := range 64 {
		a.Payload(p)[i] = byte(0xC0 | i&0x0f)
	}
	want := bytes.Clone(a.Payload(p)[:16])

	q, err := a.Realloc(p, 16)
	require.NoError(t, err)
	require.Equal(t, want, a.Payload(q)[:16])

	r, err := a.Realloc(q, 128)
	require.NoError(t, err)
	require.GreaterOrEqual(t, a.PayloadSize(r), 128)
	require.Equal(t, want, a.Payload(r)[:16])
	requireHealthy(t, a, "realloc")
}

func Test_Realloc_AlwaysRelocates(t *testing.T) {
	a := newTestAllocator(t, 0)

	p, err := a.Alloc(32)
	require.NoError(t, err)

	// Growing into adjacent free space would be possible in place; the
	// policy relocates regardless.
	q, err := a.Realloc(p, 64)
	require.NoError(t, err)
	require.NotEqual(t, p, q)
	requireHealthy(t, a, "relocate")
}

func Test_Realloc_RejectsNegativeSize(t *testing.T) {
	a := newTestAllocator(t, 0)
	ref, err := a.Alloc(32)
	require.NoError(t, err)

	_, err = a.Realloc(ref, -1)
	require.ErrorIs(t, err, ErrBadSize)

	// The original block is untouched and still usable.
	require.Equal(t, 32, a.PayloadSize(ref))
	requireHealthy(t, a, "realloc-neg")
}

func Test_Realloc_FailureLeavesOldBlockIntact(t *testing.T) {
	a := newTestAllocator(t, fixedOverhead+format.ChunkSize)

	ref, err := a.Alloc(64)
	require.NoError(t, err)
	for i := range a.Payload(ref) {
		a.Payload(ref)[i] = 0x5a
	}

	_, err = a.Realloc(ref, 2*format.ChunkSize)
	require.ErrorIs(t, err, ErrNoSpace)

	for _, b := range a.Payload(ref) {
		require.Equal(t, byte(0x5a), b)
	}
	requireHealthy(t, a, "realloc-fail")
}

func Test_Allocators_AreIsolated(t *testing.T) {
	a := newTestAllocator(t, 0)
	b := newTestAllocator(t, 0)

	ra, err := a.Alloc(100)
	require.NoError(t, err)
	rb, err := b.Alloc(100)
	require.NoError(t, err)

	for i := range a.Payload(ra) {
		a.Payload(ra)[i] = 0xaa
	}
	for i := range b.Payload(rb) {
		b.Payload(rb)[i] = 0xbb
	}
	for _, v := range a.Payload(ra) {
		require.Equal(t, byte(0xaa), v)
	}
	requireHealthy(t, a, "iso-a")
	requireHealthy(t, b, "iso-b")
}
