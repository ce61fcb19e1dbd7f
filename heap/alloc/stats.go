package alloc

// Stats holds allocator counters for testing and instrumentation.
type Stats struct {
	AllocCalls   int   // total Alloc calls, including rejected ones
	FreeCalls    int   // total Free calls
	ReallocCalls int   // total Realloc calls
	GrowCalls    int   // region grow operations (init chunk included)
	GrowBytes    int64 // total bytes granted by the region

	BytesAllocated int64 // block bytes handed out, tag overhead included
	BytesFreed     int64 // block bytes released

	SplitCount       int // placements that split off a remainder
	CoalesceForward  int // merges with the following block
	CoalesceBackward int // merges with the preceding block
}

// Stats returns a copy of the current counters.
func (a *Allocator) Stats() Stats { return a.stats }
