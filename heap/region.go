package heap

import "errors"

var (
	// ErrRegionExhausted indicates that a grow request exceeds the region's
	// reservation or configured limit.
	ErrRegionExhausted = errors.New("heap: region exhausted")

	// ErrBadGrow indicates a non-positive grow delta.
	ErrBadGrow = errors.New("heap: grow delta must be positive")
)

// Region is a contiguous byte span that only grows. It is the external
// collaborator the allocator draws raw space from.
type Region interface {
	// Bytes returns the current region image. The slice is re-fetched by
	// callers after every Grow; implementations may swap the backing array
	// as long as previously granted offsets keep addressing the same data.
	Bytes() []byte

	// Grow extends the region by delta bytes and returns the offset of the
	// first new byte. On failure the region is unchanged.
	Grow(delta int) (int, error)
}
