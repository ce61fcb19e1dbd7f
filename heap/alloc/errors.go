package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block was large enough and growing
	// the region failed.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrBadRef indicates an out-of-bounds, misaligned, or otherwise
	// malformed block reference.
	ErrBadRef = errors.New("alloc: bad block reference")

	// ErrBadSize indicates a non-positive allocation size.
	ErrBadSize = errors.New("alloc: size must be positive")
)
