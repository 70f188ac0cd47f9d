package vxeddsa

import (
	"crypto/subtle"
	"encoding/binary"
	"io"
)

// SecureCompare performs constant-time comparison of byte slices
func SecureCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// ZeroizeBytes securely clears a byte slice
func ZeroizeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// writeLengthPrefixed writes an 8-byte little-endian length followed by data.
func writeLengthPrefixed(w io.Writer, data []byte) {
	var length [8]byte
	binary.LittleEndian.PutUint64(length[:], uint64(len(data)))
	w.Write(length[:])
	w.Write(data)
}
