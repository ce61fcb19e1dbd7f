package alloc

import (
	"fmt"
	"io"

	"github.com/bytedance/gopkg/util/xxhash3"
	"github.com/heapkit/heapkit/internal/format"
)

// CheckHeap verifies heap consistency and returns true when every
// invariant holds: well-formed prologue and epilogue, per-block alignment,
// matching header/footer tags, legal sizes, no two adjacent free blocks,
// and a free list on which every node is free, in bounds, and accounts for
// every free block exactly once. Problems are reported on the diagnostic
// writer, prefixed with the caller-supplied location tag.
//
// The checker is for tests and debugging; public operations never depend
// on it and nothing is auto-repaired.
func (a *Allocator) CheckHeap(tag string) bool {
	end := len(a.mem.Bytes())

	if a.blockSize(heapStart) != format.DWordSize || !a.allocated(heapStart) {
		a.reportf(tag, "bad prologue header")
		return false
	}

	freeBlocks := 0
	prevFree := false
	bp := a.nextBlock(heapStart)
	for {
		if bp < heapStart || hdr(bp) > end-format.WordSize {
			a.reportf(tag, "block walk left the region at %#x", bp)
			return false
		}
		if a.blockSize(bp) == 0 {
			break
		}
		if !a.checkBlock(tag, bp) {
			return false
		}
		free := !a.allocated(bp)
		if free && prevFree {
			a.reportf(tag, "adjacent free blocks at %#x", bp)
			return false
		}
		if free {
			freeBlocks++
		}
		prevFree = free
		bp = a.nextBlock(bp)
	}

	if hdr(bp) != end-format.WordSize || !a.allocated(bp) {
		a.reportf(tag, "bad epilogue header")
		return false
	}

	seen := 0
	for fp := a.head(); fp != NilRef; fp = a.freeNext(fp) {
		if seen >= freeBlocks+1 {
			a.reportf(tag, "free list cycle or stray node")
			return false
		}
		if !a.validRef(fp) {
			a.reportf(tag, "free list node %#x out of bounds", fp)
			return false
		}
		if a.allocated(fp) {
			a.reportf(tag, "allocated block %#x on free list", fp)
			return false
		}
		seen++
	}
	if seen != freeBlocks {
		a.reportf(tag, "free list has %d nodes, heap has %d free blocks",
			seen, freeBlocks)
		return false
	}
	return true
}

// checkBlock validates one block: payload alignment, a legal size, region
// bounds, and the header/footer mirror.
func (a *Allocator) checkBlock(tag string, bp Ref) bool {
	if !format.IsAligned(bp) {
		a.reportf(tag, "block %#x is not double-word aligned", bp)
		return false
	}
	size := a.blockSize(bp)
	if size < format.MinBlockSize || !format.IsAligned(size) {
		a.reportf(tag, "illegal size %d at %#x", size, bp)
		return false
	}
	if bp+size > len(a.mem.Bytes()) {
		a.reportf(tag, "block %#x overruns the heap", bp)
		return false
	}
	if a.word(hdr(bp)) != a.word(bp+size-format.DWordSize) {
		a.reportf(tag, "header does not match footer at %#x", bp)
		return false
	}
	return true
}

// DumpHeap writes a block-by-block trace in heap order: payload offset,
// header size/flag, footer size/flag.
func (a *Allocator) DumpHeap(w io.Writer) {
	fmt.Fprintf(w, "heap (%d bytes):\n", a.HeapSize())
	for bp := heapStart; ; bp = a.nextBlock(bp) {
		h := a.word(hdr(bp))
		size := format.TagSize(h)
		if size == 0 {
			fmt.Fprintf(w, "%#08x: epilogue\n", bp)
			return
		}
		f := a.word(bp + size - format.DWordSize)
		fmt.Fprintf(w, "%#08x: header [%d:%c] footer [%d:%c]\n", bp,
			size, flagChar(format.TagAllocated(h)),
			format.TagSize(f), flagChar(format.TagAllocated(f)))
	}
}

// Fingerprint returns a 64-bit digest of the raw heap image. Two calls
// with no intervening mutation always agree, which gives tests a cheap
// byte-for-byte "heap unchanged" comparison.
func (a *Allocator) Fingerprint() uint64 {
	return xxhash3.Hash(a.mem.Bytes())
}

func (a *Allocator) reportf(tag, msg string, args ...any) {
	fmt.Fprintf(a.diag, "(check %s) error: %s\n", tag, fmt.Sprintf(msg, args...))
}

func flagChar(allocated bool) byte {
	if allocated {
		return 'a'
	}
	return 'f'
}
