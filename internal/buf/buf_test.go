package buf

import (
	"bytes"
	"testing"
)

func TestU32LERoundTrip(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67}
	if got := U32LE(data); got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, want 0x67452301", got)
	}

	out := make([]byte, 4)
	PutU32LE(out, 0x67452301)
	if !bytes.Equal(out, data) {
		t.Fatalf("PutU32LE = %x, want %x", out, data)
	}
}

func TestXorBytes(t *testing.T) {
	src := []byte{0x00, 0xFF, 0xA5, 0x5A}
	enc := XorBytes(src, 0xA5)
	if bytes.Equal(enc, src) {
		t.Fatalf("XorBytes with nonzero key should change the data")
	}
	if !bytes.Equal(XorBytes(enc, 0xA5), src) {
		t.Fatalf("XOR is an involution; double application should restore input")
	}
	if !bytes.Equal(XorBytes(src, 0x00), src) {
		t.Fatalf("zero key should be identity")
	}
}

func TestXorInPlace(t *testing.T) {
	b := []byte{1, 2, 3}
	XorInPlace(b, 0x10)
	if !bytes.Equal(b, []byte{0x11, 0x12, 0x13}) {
		t.Fatalf("XorInPlace = %x", b)
	}
}

func TestZeroize(t *testing.T) {
	b := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	Zeroize(b)
	for i, c := range b {
		if c != 0 {
			t.Fatalf("byte %d not scrubbed: 0x%x", i, c)
		}
	}
}
