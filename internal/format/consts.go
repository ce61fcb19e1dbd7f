// Package format houses the block layout constants and the boundary-tag
// codec shared by the heap allocator. The goal is to keep the low-level
// layout knowledge in one place, independent from the allocator's
// orchestration, so higher-level packages only deal in offsets and sizes.
package format

const (
	// WordSize is the size of one heap word in bytes. A boundary tag and a
	// free-list link each occupy exactly one word.
	WordSize = 8

	// DWordSize is the double-word alignment unit. Every block size is a
	// multiple of DWordSize and every payload starts on a DWordSize boundary.
	DWordSize = 16

	// TagOverhead is the bookkeeping cost of one block: a header tag plus
	// the mirrored footer tag at the block's far end.
	TagOverhead = 2 * WordSize

	// MinBlockSize is the smallest legal block. The payload of a free block
	// must hold two link words (previous and next), which fit exactly in
	// one DWordSize payload unit.
	MinBlockSize = DWordSize + TagOverhead

	// ChunkSize is the minimum increment by which the heap grows when no
	// existing free block satisfies a request.
	ChunkSize = 1 << 12

	// flagMask selects the low tag bits that sit below the size bits.
	flagMask = DWordSize - 1

	// allocBit is the allocated flag within a boundary tag.
	allocBit = 0x1
)
