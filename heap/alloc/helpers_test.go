package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heapkit/heapkit/heap"
	"github.com/heapkit/heapkit/internal/format"
)

// fixedOverhead is the non-block heap plumbing: the head slot, the
// prologue sentinel, and the epilogue header.
const fixedOverhead = format.WordSize + format.DWordSize + format.WordSize

// newTestAllocator builds an allocator over an in-memory region. A
// positive limit caps total region bytes so growth failures can be forced.
func newTestAllocator(t testing.TB, limit int) *Allocator {
	t.Helper()
	a, err := New(heap.NewSliceRegion(limit))
	require.NoError(t, err)
	return a
}

// requireConserved asserts the conservation property: every byte the
// grower ever granted is accounted for by exactly one block or by the
// fixed sentinel overhead, with no overlap and no leak.
func requireConserved(t testing.TB, a *Allocator) {
	t.Helper()

	total := 0
	blocks := 0
	for bp := a.nextBlock(heapStart); a.blockSize(bp) > 0; bp = a.nextBlock(bp) {
		total += a.blockSize(bp)
		blocks++
		require.LessOrEqual(t, blocks, a.HeapSize()/format.MinBlockSize,
			"heap walk did not terminate")
	}
	require.Equal(t, a.HeapSize(), fixedOverhead+total,
		"block sizes do not add up to the region size")

	// The region is exactly the init grant plus every extension grant.
	require.Equal(t, int64(a.HeapSize()),
		int64(4*format.WordSize)+a.Stats().GrowBytes,
		"region size does not match bytes granted by the grower")
}

// requireHealthy runs the consistency checker and the conservation check.
func requireHealthy(t testing.TB, a *Allocator, tag string) {
	t.Helper()
	require.True(t, a.CheckHeap(tag), "consistency check failed at %s", tag)
	requireConserved(t, a)
}
