package alloc

// findFit scans the free list from the head in most-recently-freed order
// and returns the first block whose size covers asize, or NilRef. First
// fit trades fragmentation for a lower constant cost per search than best
// fit. O(number of free blocks).
func (a *Allocator) findFit(asize int) Ref {
	for bp := a.head(); bp != NilRef; bp = a.freeNext(bp) {
		if a.blockSize(bp) >= asize {
			return bp
		}
	}
	return NilRef
}
