package testutil

import (
	"crypto/aes"
	"testing"

	"github.com/wxforge/wxkit/internal/buf"
	"github.com/wxforge/wxkit/internal/format"
)

// TestImageAESKey is the 16-byte image key used across the test suite.
var TestImageAESKey = []byte("0123456789abcdef")

// JPEGPayload returns a minimal plaintext blob carrying the JPEG magic, long
// enough to split across all three V4 sections.
func JPEGPayload(size int) []byte {
	p := make([]byte, size)
	copy(p, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	for i := 4; i < size; i++ {
		p[i] = byte(i)
	}
	return p
}

// BuildV3Image XOR-encrypts plain under a single-byte key.
func BuildV3Image(plain []byte, xorKey byte) []byte {
	return buf.XorBytes(plain, xorKey)
}

// BuildV4Image packs plain into a V4 container: the first aesLen bytes
// AES-128-ECB encrypted with PKCS#7 padding, the last xorLen bytes XOR
// encrypted, and the middle carried verbatim. sig selects the V1 or V2
// signature variant.
func BuildV4Image(t *testing.T, sig []byte, plain []byte, aesKey []byte, xorKey byte, aesLen, xorLen int) []byte {
	t.Helper()
	if aesLen+xorLen > len(plain) {
		t.Fatalf("sections %d+%d exceed payload %d", aesLen, xorLen, len(plain))
	}

	aesSeg := encryptECBPadded(t, plain[:aesLen], aesKey)
	mid := plain[aesLen : len(plain)-xorLen]
	tail := buf.XorBytes(plain[len(plain)-xorLen:], xorKey)

	out := make([]byte, 0, format.DatHeaderSize+len(aesSeg)+len(mid)+len(tail))
	out = append(out, sig...)
	var u [4]byte
	buf.PutU32LE(u[:], uint32(len(aesSeg)))
	out = append(out, u[:]...)
	buf.PutU32LE(u[:], uint32(len(tail)))
	out = append(out, u[:]...)
	out = append(out, 0)
	out = append(out, aesSeg...)
	out = append(out, mid...)
	out = append(out, tail...)
	return out
}

// encryptECBPadded PKCS#7-pads data to the AES block size and encrypts each
// block independently.
func encryptECBPadded(t *testing.T, data, key []byte) []byte {
	t.Helper()
	pad := format.AESBlockSize - len(data)%format.AESBlockSize
	padded := make([]byte, len(data)+pad)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(pad)
	}
	return EncryptECB(t, padded, key)
}

// EncryptECB block-encrypts data, which must already be a multiple of the
// AES block size. No padding is added; tests use it to craft segments with
// deliberately malformed padding.
func EncryptECB(t *testing.T, data, key []byte) []byte {
	t.Helper()
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	if len(data)%format.AESBlockSize != 0 {
		t.Fatalf("segment length %d not block aligned", len(data))
	}
	out := make([]byte, len(data))
	for i := 0; i < len(data); i += format.AESBlockSize {
		block.Encrypt(out[i:i+format.AESBlockSize], data[i:i+format.AESBlockSize])
	}
	return out
}
