package alloc

import "github.com/heapkit/heapkit/internal/format"

// extendHeap grows the region by the requested number of heap words,
// rounded up to an even count to keep payloads double-word aligned. The
// granted space becomes one free block whose header overwrites the old
// epilogue; a fresh epilogue is written at the new heap end. The block is
// inserted into the free list and coalesced, absorbing a free block that
// may have ended at the old epilogue. Returns the canonical block.
//
// A grower failure propagates with the heap untouched.
func (a *Allocator) extendHeap(words int) (Ref, error) {
	if words%2 == 1 {
		words++
	}
	size := words * format.WordSize

	old, err := a.mem.Grow(size)
	if err != nil {
		return NilRef, err
	}
	a.stats.GrowCalls++
	a.stats.GrowBytes += int64(size)
	logf("grow #%d: +%d bytes, heap now %d bytes",
		a.stats.GrowCalls, size, len(a.mem.Bytes()))

	// The old epilogue's payload position is where the new block starts;
	// its header word is recycled as the new block's header.
	bp := old
	a.writeTags(bp, size, false)
	a.setWord(hdr(a.nextBlock(bp)), format.PackTag(0, true)) // new epilogue

	a.insertFreeBlock(bp)
	return a.coalesce(bp), nil
}
