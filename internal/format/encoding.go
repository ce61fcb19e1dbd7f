package format

import "encoding/binary"

// Binary encoding utilities for little-endian heap words.
//
// Implementation: encoding/binary.LittleEndian. The compiler inlines and
// optimizes these calls well enough that unsafe variants are not worth the
// loss of bounds checking.

// PutU64 writes a word to the buffer at the specified byte offset.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+WordSize], v)
}

// ReadU64 reads a word from the buffer at the specified byte offset.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+WordSize])
}
