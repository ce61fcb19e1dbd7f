package alloc

// coalesce merges the free block at bp with any free physical neighbor,
// navigating backward through the preceding block's footer and forward by
// bp's own size. bp must be free and already linked into the free list.
//
// Returns the canonical block: a backward merge moves the block's start to
// the preceding block's address, so callers must use the returned
// reference and never assume identity.
func (a *Allocator) coalesce(bp Ref) Ref {
	size := a.blockSize(bp)

	prev, ok := a.prevBlock(bp)
	prevFree := ok && !a.allocated(prev)
	next := a.nextBlock(bp)
	nextFree := !a.allocated(next) // epilogue reads allocated, no edge case

	switch {
	case prevFree && nextFree:
		a.stats.CoalesceBackward++
		a.stats.CoalesceForward++
		a.removeFreeBlock(next)
		a.removeFreeBlock(bp)
		size += a.blockSize(prev) + a.blockSize(next)
		a.writeTags(prev, size, false)
		return prev

	case prevFree:
		a.stats.CoalesceBackward++
		a.removeFreeBlock(bp)
		size += a.blockSize(prev)
		a.writeTags(prev, size, false)
		return prev

	case nextFree:
		a.stats.CoalesceForward++
		a.removeFreeBlock(next)
		size += a.blockSize(next)
		a.writeTags(bp, size, false)
		return bp

	default:
		return bp
	}
}
