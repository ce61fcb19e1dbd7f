package format

// Alignment utilities. Block sizes and payload offsets must stay on
// DWordSize boundaries so that the low tag bits remain available for flags.

// AlignUp returns n rounded up to the next DWordSize boundary.
//
// Example:
//
//	AlignUp(1)  = 16
//	AlignUp(16) = 16
//	AlignUp(17) = 32
func AlignUp(n int) int {
	return (n + flagMask) &^ flagMask
}

// IsAligned reports whether n sits on a DWordSize boundary.
func IsAligned(n int) bool {
	return n&flagMask == 0
}

// AdjustSize converts a requested payload size into the block size the
// allocator actually carves: payload plus tag overhead, rounded up to the
// alignment unit, never below the minimum block size.
func AdjustSize(size int) int {
	if size <= DWordSize {
		return MinBlockSize
	}
	return AlignUp(size + TagOverhead)
}
