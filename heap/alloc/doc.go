// Package alloc implements a dynamic memory allocator over a single
// growable heap region: an explicit free list with boundary-tag coalescing,
// first-fit search, and a split-on-place policy.
//
// # Heap layout
//
// The region is offset-addressed. It opens with one reserved word holding
// the free-list head, followed by an allocated prologue sentinel and, at
// the far end, a zero-size allocated epilogue sentinel:
//
//	offset 0                                                      end
//	 ------------------------------------------------------------------
//	| head | hdr(16:a) | ftr(16:a) | zero or more blocks ... | hdr(0:a) |
//	 ------------------------------------------------------------------
//	        |       prologue       |                         | epilogue |
//
// The sentinels are permanently allocated so coalescing never has to treat
// the heap edges as special cases.
//
// # Blocks
//
// Every block carries a header tag and a mirrored footer tag (see
// internal/format). While a block is free, the first two words of its
// payload hold the free-list links (previous, next); while allocated, the
// same bytes are user data. The allocated flag in the tags is what makes
// the dual interpretation unambiguous, and link accessors assert it when
// HEAPKIT_DEBUG is set.
//
// # Policies
//
//   - First fit, scanned in most-recently-freed order. Cheaper per search
//     than best fit at the cost of more fragmentation.
//   - A consumed free block is split when the remainder can stand alone as
//     a legal free block (at least twice the tag overhead).
//   - Coalescing is eager: after every Free and every heap extension, so no
//     two adjacent free blocks ever coexist.
//   - Realloc always relocates and copies min(old payload, new size) bytes.
//     There is no in-place grow or shrink path.
//
// # Usage
//
//	a, err := alloc.New(heap.NewSliceRegion(0))
//	if err != nil {
//		return err
//	}
//	ref, err := a.Alloc(64)
//	if err != nil {
//		return err
//	}
//	copy(a.Payload(ref), data)
//	// ...
//	err = a.Free(ref)
//
// References are offsets into the region; dereference through Payload
// after every call that may grow the heap.
//
// # Thread safety
//
// Allocator instances are not safe for concurrent use. Callers must
// serialize access externally, e.g. with a single mutex around the whole
// allocator.
package alloc
