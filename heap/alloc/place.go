package alloc

import "github.com/heapkit/heapkit/internal/format"

// place consumes the free block at bp for an allocation of asize bytes.
// bp must be free, on the free list, and at least asize bytes.
//
// The block is unlinked before any size field changes so the list never
// holds a node with a stale size. When the remainder is too small to stand
// alone as a legal free block the whole block is allocated; otherwise the
// remainder becomes a new free block, which is coalesced because it can be
// adjacent to a following free block (e.g. right after a heap extension).
func (a *Allocator) place(bp Ref, asize int) {
	total := a.blockSize(bp)
	rem := total - asize

	a.removeFreeBlock(bp)

	if rem < 2*format.TagOverhead {
		a.writeTags(bp, total, true)
		return
	}

	a.stats.SplitCount++
	a.writeTags(bp, asize, true)

	split := bp + asize
	a.writeTags(split, rem, false)
	a.insertFreeBlock(split)
	a.coalesce(split)
}
