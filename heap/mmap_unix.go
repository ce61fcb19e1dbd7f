//go:build unix

package heap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MapRegion is a Region carved out of one reserved anonymous mapping.
// The whole reservation is mapped PROT_NONE up front; Grow commits pages
// with mprotect as the region extends. Because the virtual span is fixed
// at construction, granted space never moves for the process lifetime.
type MapRegion struct {
	raw       []byte // full reservation
	brk       int    // granted bytes
	committed int    // page-aligned readable/writable prefix
	page      int
}

// NewMapRegion reserves capacity for a region of at most reserve bytes.
func NewMapRegion(reserve int) (*MapRegion, error) {
	if reserve <= 0 {
		return nil, fmt.Errorf("heap: invalid reservation %d", reserve)
	}
	page := os.Getpagesize()
	reserve = (reserve + page - 1) &^ (page - 1)
	raw, err := unix.Mmap(-1, 0, reserve, unix.PROT_NONE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("heap: reserve %d bytes: %w", reserve, err)
	}
	return &MapRegion{raw: raw, page: page}, nil
}

// Bytes returns the granted prefix of the reservation.
func (r *MapRegion) Bytes() []byte { return r.raw[:r.brk] }

// Len returns the current region size in bytes.
func (r *MapRegion) Len() int { return r.brk }

// Grow commits delta more bytes of the reservation.
func (r *MapRegion) Grow(delta int) (int, error) {
	if delta <= 0 {
		return 0, ErrBadGrow
	}
	size := r.brk + delta
	if size > len(r.raw) {
		return 0, ErrRegionExhausted
	}
	need := (size + r.page - 1) &^ (r.page - 1)
	if need > r.committed {
		if err := unix.Mprotect(r.raw[r.committed:need],
			unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("heap: commit %d bytes: %w", need-r.committed, err)
		}
		r.committed = need
	}
	old := r.brk
	r.brk = size
	return old, nil
}

// Close releases the reservation. The region must not be used afterwards.
func (r *MapRegion) Close() error {
	if r.raw == nil {
		return nil
	}
	err := unix.Munmap(r.raw)
	r.raw = nil
	r.brk = 0
	r.committed = 0
	return err
}
