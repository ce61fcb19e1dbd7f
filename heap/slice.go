package heap

import "github.com/bytedance/gopkg/lang/dirtmake"

// SliceRegion is the portable Region backed by a Go slice. The backing
// array may be reallocated on growth; offsets remain the addressing unit,
// so granted offsets stay valid.
//
// New space is deliberately not zeroed (dirtmake): the allocator writes
// every structural word itself and makes no promise about payload contents.
type SliceRegion struct {
	data  []byte
	limit int
}

// NewSliceRegion creates an empty region. A positive limit caps the total
// region size in bytes; zero or negative means unlimited.
func NewSliceRegion(limit int) *SliceRegion {
	return &SliceRegion{limit: limit}
}

// Bytes returns the current region image.
func (r *SliceRegion) Bytes() []byte { return r.data }

// Len returns the current region size in bytes.
func (r *SliceRegion) Len() int { return len(r.data) }

// Grow extends the region by delta bytes, reallocating the backing array
// when capacity runs out.
func (r *SliceRegion) Grow(delta int) (int, error) {
	if delta <= 0 {
		return 0, ErrBadGrow
	}
	old := len(r.data)
	size := old + delta
	if r.limit > 0 && size > r.limit {
		return 0, ErrRegionExhausted
	}
	if size <= cap(r.data) {
		r.data = r.data[:size]
		return old, nil
	}
	newCap := 2 * cap(r.data)
	if newCap < size {
		newCap = size
	}
	if r.limit > 0 && newCap > r.limit {
		newCap = r.limit
	}
	buf := dirtmake.Bytes(size, newCap)
	copy(buf, r.data)
	r.data = buf
	return old, nil
}
