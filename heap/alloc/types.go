package alloc

import (
	"fmt"
	"os"

	"github.com/heapkit/heapkit/internal/format"
)

// Ref is a block reference: the byte offset of the block's payload within
// the heap region. NilRef means "no block".
type Ref = int

// NilRef is the zero reference. Offset 0 holds the free-list head slot and
// can never be a payload, so it doubles as the nil sentinel.
const NilRef Ref = 0

const (
	// headSlot is the offset of the reserved word holding the free-list head.
	headSlot = 0

	// heapStart is the payload offset of the prologue sentinel. The heap
	// walk in the checker and the backward bound of coalescing both anchor
	// here.
	heapStart = format.DWordSize
)

// Runtime debug flag promoting the permissive no-ops (absent-block remove,
// double free) to assertions. Controlled by the HEAPKIT_DEBUG env var so
// release behavior of correct callers is unchanged.
var debugChecks = os.Getenv("HEAPKIT_DEBUG") != ""

// Runtime flag for allocation logging, controlled by HEAPKIT_LOG_ALLOC.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

func logf(format string, args ...any) {
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] "+format+"\n", args...)
	}
}
