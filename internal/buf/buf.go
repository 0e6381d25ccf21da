// Package buf provides small helpers for decoding and encoding the
// little-endian integers embedded in encrypted database pages and image
// container headers.
package buf

import "encoding/binary"

// U32LE decodes a little-endian uint32 from the start of b.
// The caller guarantees len(b) >= 4.
func U32LE(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// PutU32LE encodes v as little-endian into the start of b.
// The caller guarantees len(b) >= 4.
func PutU32LE(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}

// XorBytes returns a copy of b with every byte XOR-ed with k.
func XorBytes(b []byte, k byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[i] = b[i] ^ k
	}
	return out
}

// XorInPlace XORs every byte of b with k, overwriting b.
func XorInPlace(b []byte, k byte) {
	for i := range b {
		b[i] ^= k
	}
}

// Zeroize overwrites b with zeros. Used to scrub derived key material
// before its buffer is released.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
