package alloc

import (
	"fmt"

	"github.com/heapkit/heapkit/internal/format"
)

// The free list is intrusive: a free block's first payload word holds the
// previous link and its second holds the next link. The head reference
// lives in the reserved slot at offset 0. Insertion is always at the head,
// so the list is ordered most-recently-freed first and is not size-ordered.

const (
	prevLinkOff = 0
	nextLinkOff = format.WordSize
)

func (a *Allocator) head() Ref {
	return Ref(a.word(headSlot))
}

func (a *Allocator) setHead(bp Ref) {
	a.setWord(headSlot, uint64(bp))
}

// assertFree guards the link accessors: the link words are only a valid
// interpretation of the payload while the block's own tag reads free.
func (a *Allocator) assertFree(bp Ref) {
	if debugChecks && a.allocated(bp) {
		panic(fmt.Sprintf("alloc: free-list access to allocated block %#x", bp))
	}
}

func (a *Allocator) freePrev(bp Ref) Ref {
	a.assertFree(bp)
	return Ref(a.word(bp + prevLinkOff))
}

func (a *Allocator) freeNext(bp Ref) Ref {
	a.assertFree(bp)
	return Ref(a.word(bp + nextLinkOff))
}

func (a *Allocator) setFreePrev(bp, v Ref) {
	a.assertFree(bp)
	a.setWord(bp+prevLinkOff, uint64(v))
}

func (a *Allocator) setFreeNext(bp, v Ref) {
	a.assertFree(bp)
	a.setWord(bp+nextLinkOff, uint64(v))
}

// insertFreeBlock links bp in at the head of the free list. O(1).
func (a *Allocator) insertFreeBlock(bp Ref) {
	old := a.head()
	if old != NilRef {
		a.setFreePrev(old, bp)
	}
	a.setFreePrev(bp, NilRef)
	a.setFreeNext(bp, old)
	a.setHead(bp)
}

// removeFreeBlock unlinks bp from the free list. O(1).
//
// An empty list or a nil argument is a silent no-op, matching the
// allocator's permissive contract; with debug checks enabled, removing a
// block that is not a current member panics instead of masking the misuse.
func (a *Allocator) removeFreeBlock(bp Ref) {
	if a.head() == NilRef || bp == NilRef {
		if debugChecks && bp != NilRef {
			panic(fmt.Sprintf("alloc: remove %#x from empty free list", bp))
		}
		return
	}
	if debugChecks && !a.onFreeList(bp) {
		panic(fmt.Sprintf("alloc: remove of unlinked block %#x", bp))
	}

	prev := a.freePrev(bp)
	next := a.freeNext(bp)
	switch {
	case prev == NilRef && next == NilRef: // sole node
		a.setHead(NilRef)
	case next == NilRef: // tail node
		a.setFreeNext(prev, NilRef)
	case prev == NilRef: // head node with a successor
		a.setHead(next)
		a.setFreePrev(next, NilRef)
	default: // interior node
		a.setFreePrev(next, prev)
		a.setFreeNext(prev, next)
	}
}

// onFreeList reports list membership by linear scan. Debug-check use only.
func (a *Allocator) onFreeList(bp Ref) bool {
	for cur := a.head(); cur != NilRef; cur = a.freeNext(cur) {
		if cur == bp {
			return true
		}
	}
	return false
}
