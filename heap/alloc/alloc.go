package alloc

import (
	"fmt"
	"io"
	"os"

	"github.com/heapkit/heapkit/heap"
	"github.com/heapkit/heapkit/internal/format"
)

// Allocator owns one heap region and the free-list bookkeeping inside it.
// Multiple allocators over separate regions coexist without interference.
type Allocator struct {
	mem   heap.Region
	stats Stats
	diag  io.Writer
}

// New initializes an allocator over an empty region: it lays down the
// free-list head slot and the prologue/epilogue sentinels, then seeds the
// heap with one chunk of free space. A grower failure propagates.
func New(mem heap.Region) (*Allocator, error) {
	if len(mem.Bytes()) != 0 {
		return nil, fmt.Errorf("alloc: region must be empty")
	}
	a := &Allocator{mem: mem, diag: os.Stderr}

	if _, err := mem.Grow(4 * format.WordSize); err != nil {
		return nil, fmt.Errorf("alloc: init: %w", err)
	}
	a.setWord(headSlot, uint64(NilRef))
	a.writeTags(heapStart, format.DWordSize, true)        // prologue
	a.setWord(3*format.WordSize, format.PackTag(0, true)) // epilogue
	if _, err := a.extendHeap(format.ChunkSize / format.WordSize); err != nil {
		return nil, fmt.Errorf("alloc: init: %w", err)
	}
	return a, nil
}

// Alloc carves an allocated block with at least size payload bytes and
// returns its reference. size <= 0 is rejected with ErrBadSize and no heap
// mutation; exhaustion of the underlying region surfaces as ErrNoSpace.
func (a *Allocator) Alloc(size int) (Ref, error) {
	a.stats.AllocCalls++
	if size <= 0 {
		return NilRef, ErrBadSize
	}
	asize := format.AdjustSize(size)

	if bp := a.findFit(asize); bp != NilRef {
		a.place(bp, asize)
		a.stats.BytesAllocated += int64(a.blockSize(bp))
		return bp, nil
	}

	// No fit: grow by at least one chunk to amortize the grower call.
	extend := asize
	if extend < format.ChunkSize {
		extend = format.ChunkSize
	}
	bp, err := a.extendHeap(extend / format.WordSize)
	if err != nil {
		return NilRef, fmt.Errorf("%w: %w", ErrNoSpace, err)
	}
	a.place(bp, asize)
	a.stats.BytesAllocated += int64(a.blockSize(bp))
	return bp, nil
}

// Free releases an allocated block: the tags flip to free, the block goes
// to the front of the free list, and it is immediately coalesced with any
// free physical neighbor. Freeing a reference that was never returned by
// Alloc is caller misuse; out-of-range or misaligned references are caught
// and rejected, a stale-but-plausible one is not.
func (a *Allocator) Free(ref Ref) error {
	a.stats.FreeCalls++
	if !a.validRef(ref) {
		return ErrBadRef
	}
	if debugChecks && !a.allocated(ref) {
		panic(fmt.Sprintf("alloc: double free of block %#x", ref))
	}
	size := a.blockSize(ref)
	a.stats.BytesFreed += int64(size)
	a.writeTags(ref, size, false)
	a.insertFreeBlock(ref)
	a.coalesce(ref)
	return nil
}

// Realloc resizes by relocation: it allocates a fresh block, copies
// min(old payload size, size) bytes, and frees the old block. A NilRef
// behaves like Alloc; size zero behaves like Free and returns NilRef.
// Shrinking truncates the payload. The old block is left intact when the
// new allocation fails.
func (a *Allocator) Realloc(ref Ref, size int) (Ref, error) {
	a.stats.ReallocCalls++
	if ref == NilRef {
		return a.Alloc(size)
	}
	if size == 0 {
		if err := a.Free(ref); err != nil {
			return NilRef, err
		}
		return NilRef, nil
	}
	if size < 0 {
		return NilRef, ErrBadSize
	}
	if !a.validRef(ref) {
		return NilRef, ErrBadRef
	}

	newRef, err := a.Alloc(size)
	if err != nil {
		return NilRef, err
	}
	n := a.blockSize(ref) - format.TagOverhead
	if size < n {
		n = size
	}
	data := a.mem.Bytes()
	copy(data[newRef:newRef+n], data[ref:ref+n])
	if err := a.Free(ref); err != nil {
		return NilRef, err
	}
	return newRef, nil
}

// Payload returns the usable bytes of a block. The slice aliases the heap
// region and goes stale after any call that can grow the heap; re-fetch it
// rather than holding on to it. Returns nil for an invalid reference.
func (a *Allocator) Payload(ref Ref) []byte {
	if !a.validRef(ref) {
		return nil
	}
	n := a.blockSize(ref) - format.TagOverhead
	return a.mem.Bytes()[ref : ref+n : ref+n]
}

// PayloadSize returns the usable byte count of a block, or 0 for an
// invalid reference.
func (a *Allocator) PayloadSize(ref Ref) int {
	if !a.validRef(ref) {
		return 0
	}
	return a.blockSize(ref) - format.TagOverhead
}

// HeapSize returns the total region size in bytes, sentinels included.
func (a *Allocator) HeapSize() int { return len(a.mem.Bytes()) }

// FreeBytes sums the sizes of all blocks currently on the free list.
func (a *Allocator) FreeBytes() int {
	total := 0
	for bp := a.head(); bp != NilRef; bp = a.freeNext(bp) {
		total += a.blockSize(bp)
	}
	return total
}

// FreeBlocks counts the entries on the free list.
func (a *Allocator) FreeBlocks() int {
	n := 0
	for bp := a.head(); bp != NilRef; bp = a.freeNext(bp) {
		n++
	}
	return n
}

// SetDiagWriter redirects consistency-check output (default os.Stderr).
func (a *Allocator) SetDiagWriter(w io.Writer) { a.diag = w }

// ----------------------------------------------------------------------------
// Block navigation
// ----------------------------------------------------------------------------

func (a *Allocator) word(off int) uint64 {
	return format.ReadU64(a.mem.Bytes(), off)
}

func (a *Allocator) setWord(off int, v uint64) {
	format.PutU64(a.mem.Bytes(), off, v)
}

// hdr returns the offset of the header tag of the block at bp.
func hdr(bp int) int { return bp - format.WordSize }

func (a *Allocator) blockSize(bp int) int {
	return format.TagSize(a.word(hdr(bp)))
}

func (a *Allocator) allocated(bp int) bool {
	return format.TagAllocated(a.word(hdr(bp)))
}

// writeTags writes the header and the mirrored footer of the block at bp.
func (a *Allocator) writeTags(bp, size int, allocated bool) {
	tag := format.PackTag(size, allocated)
	a.setWord(hdr(bp), tag)
	a.setWord(bp+size-format.DWordSize, tag)
}

// nextBlock steps forward by the block's own size. With the epilogue in
// place the result always has a readable header.
func (a *Allocator) nextBlock(bp int) int {
	return bp + a.blockSize(bp)
}

// prevBlock steps backward through the preceding block's footer. The
// computed offset is validated against the region bounds; at the prologue
// edge (or on a malformed footer) it reports no neighbor instead of
// reading past the heap.
func (a *Allocator) prevBlock(bp int) (int, bool) {
	ftrOff := bp - format.DWordSize
	if ftrOff < format.WordSize {
		return NilRef, false
	}
	prevSize := format.TagSize(a.word(ftrOff))
	if prevSize < format.DWordSize {
		return NilRef, false
	}
	prev := bp - prevSize
	if prev < heapStart {
		return NilRef, false
	}
	return prev, true
}

// validRef reports whether ref plausibly addresses a block payload:
// aligned, inside the region, with a self-consistent header.
func (a *Allocator) validRef(ref Ref) bool {
	data := a.mem.Bytes()
	if ref < heapStart+format.DWordSize || ref >= len(data) {
		return false
	}
	if !format.IsAligned(ref) {
		return false
	}
	size := a.blockSize(ref)
	if size < format.MinBlockSize || !format.IsAligned(size) {
		return false
	}
	return ref+size <= len(data)
}
