package format

// Boundary-tag codec. A tag is a single word holding a block size in the
// bits above the flag bits and the allocated flag in bit 0:
//
//	63                        4  3  2  1  0
//	 s  s  s  s  ...  s  s  s  0  0  0  a/f
//
// The size must be a multiple of DWordSize, so the low four bits are free
// to carry flags. The same tag is written as the block header and mirrored
// as its footer, which is what makes O(1) neighbor navigation possible in
// both directions.

// PackTag encodes a block size and allocated flag into one tag word.
// size must be a non-negative multiple of DWordSize.
func PackTag(size int, allocated bool) uint64 {
	tag := uint64(size)
	if allocated {
		tag |= allocBit
	}
	return tag
}

// TagSize extracts the block size from a tag word.
func TagSize(tag uint64) int {
	return int(tag &^ uint64(flagMask))
}

// TagAllocated reports whether the tag marks its block as allocated.
func TagAllocated(tag uint64) bool {
	return tag&allocBit != 0
}
