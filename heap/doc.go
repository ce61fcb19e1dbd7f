// Package heap provides the growable, offset-addressed byte regions that
// back the allocator in heap/alloc.
//
// # Regions
//
// A Region is one contiguous byte span that only ever grows. Grow has sbrk
// semantics: it extends the region by a delta and returns the offset of the
// first new byte. Offsets handed out by Grow stay valid for the region's
// lifetime; the region never shrinks and never moves granted space.
//
// Two implementations are provided:
//
//   - SliceRegion: portable, backed by a Go slice. An optional byte limit
//     makes growth failures reproducible in tests.
//   - MapRegion (unix): one reserved anonymous mapping whose pages are
//     committed on demand, so the virtual span is truly contiguous and
//     stable for the process lifetime.
//
// # Failure model
//
// Grow either fully succeeds or fails with no partial grant. Exhaustion is
// reported as ErrRegionExhausted; it is the only resource failure the
// allocator above can observe.
//
// Regions are not safe for concurrent use; the allocator that owns a region
// is the single mutator.
package heap
