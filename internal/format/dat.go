package format

import (
	"bytes"
	"fmt"

	"github.com/wxforge/wxkit/internal/buf"
)

// DatVersion enumerates the image container variants the codec understands.
// V3 is the implicit fallback: any file without a recognized signature.
type DatVersion int

const (
	DatV3 DatVersion = iota
	DatV4v1
	DatV4v2
)

// DetectDatVersion inspects the first bytes of an image file. It is a pure
// function of at most the first 6 bytes.
func DetectDatVersion(first []byte) DatVersion {
	if len(first) >= DatSignatureSize {
		switch {
		case bytes.Equal(first[:DatSignatureSize], DatV4v1Signature):
			return DatV4v1
		case bytes.Equal(first[:DatSignatureSize], DatV4v2Signature):
			return DatV4v2
		}
	}
	return DatV3
}

// DatHeader is the parsed 15-byte V4 image container header.
//
//	Offset  Size  Description
//	------  ----  --------------------------------------
//	0x00      6   Signature (V1 or V2 variant)
//	0x06      4   AES-ECB section length (little-endian)
//	0x0A      4   XOR tail length (little-endian)
//	0x0E      1   Reserved
type DatHeader struct {
	Version DatVersion
	AESSize uint32
	XorSize uint32
}

// ParseDatHeader validates and extracts the V4 header fields. fileSize is the
// total container length, used to bound the declared sections.
func ParseDatHeader(b []byte, fileSize int64) (DatHeader, error) {
	if len(b) < DatHeaderSize {
		return DatHeader{}, fmt.Errorf("dat header: %w", ErrTruncated)
	}
	v := DetectDatVersion(b)
	if v == DatV3 {
		return DatHeader{}, fmt.Errorf("dat header: no v4 signature")
	}
	aesSize := buf.U32LE(b[DatSignatureSize:])
	xorSize := buf.U32LE(b[DatSignatureSize+4:])
	if aesSize%AESBlockSize != 0 {
		return DatHeader{}, fmt.Errorf("dat header: aes section %d: %w", aesSize, ErrSectionAlign)
	}
	body := fileSize - DatHeaderSize
	if body < 0 || int64(aesSize)+int64(xorSize) > body {
		return DatHeader{}, fmt.Errorf("dat header: aes %d + xor %d in %d body bytes: %w",
			aesSize, xorSize, body, ErrSectionOverrun)
	}
	return DatHeader{Version: v, AESSize: aesSize, XorSize: xorSize}, nil
}

// imageSigPart is one anchored byte run of an image magic.
type imageSigPart struct {
	off   int
	bytes []byte
}

// imageSig describes a decodable image format by its magic bytes.
type imageSig struct {
	ext   string
	parts []imageSigPart
}

// imageSigs is the known image-format table, in probe order.
var imageSigs = []imageSig{
	{ext: "jpg", parts: []imageSigPart{{0, []byte{0xFF, 0xD8, 0xFF}}}},
	{ext: "png", parts: []imageSigPart{{0, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}}}},
	{ext: "gif", parts: []imageSigPart{{0, []byte{0x47, 0x49, 0x46, 0x38}}}},
	{ext: "bmp", parts: []imageSigPart{{0, []byte{0x42, 0x4D}}}},
	{ext: "webp", parts: []imageSigPart{
		{0, []byte{0x52, 0x49, 0x46, 0x46}},
		{8, []byte{0x57, 0x45, 0x42, 0x50}},
	}},
}

// matchesSig reports whether b satisfies every anchored run of sig.
func matchesSig(b []byte, sig imageSig) bool {
	for _, p := range sig.parts {
		end := p.off + len(p.bytes)
		if len(b) < end || !bytes.Equal(b[p.off:end], p.bytes) {
			return false
		}
	}
	return true
}

// DetectImageExt returns the file extension for decoded image bytes, or ""
// when the magic is not in the known-format table.
func DetectImageExt(b []byte) string {
	for _, sig := range imageSigs {
		if matchesSig(b, sig) {
			return sig.ext
		}
	}
	return ""
}

// ProbeXorKey tries every single-byte key against the known image magics.
// first should be the first 16 bytes of the encrypted file. The second
// return is false when no key produces a recognized magic.
func ProbeXorKey(first []byte) (byte, bool) {
	probe := make([]byte, len(first))
	for k := 0; k <= 0xFF; k++ {
		for i, c := range first {
			probe[i] = c ^ byte(k)
		}
		if DetectImageExt(probe) != "" {
			return byte(k), true
		}
	}
	return 0, false
}
