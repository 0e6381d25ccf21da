// Package imgcodec decodes WeChat encrypted image blobs ("dat" files). V3
// files are XOR-encrypted with a single byte; V4 files mix an AES-128-ECB
// segment, a plaintext middle, and an XOR-encrypted tail behind a 15-byte
// header.
package imgcodec

import (
	"crypto/aes"
	"fmt"
	"io"
	"os"

	"github.com/wxforge/wxkit/internal/buf"
	"github.com/wxforge/wxkit/internal/format"
	"github.com/wxforge/wxkit/pkg/types"
)

// xorProbeLen is how many leading bytes the XOR-key probe inspects. 16 bytes
// cover the longest magic in the format table.
const xorProbeLen = 16

// DetectVersion classifies an image file by its leading bytes. Pure function
// of at most the first 6 bytes; anything without a V4 signature is V3.
func DetectVersion(first []byte) types.ImageVersion {
	switch format.DetectDatVersion(first) {
	case format.DatV4v1:
		return types.ImageV4v1
	case format.DatV4v2:
		return types.ImageV4v2
	default:
		return types.ImageV3
	}
}

// DecryptV3 applies the byte-wise XOR stream. XOR is an involution, so the
// same call re-encrypts.
func DecryptV3(data []byte, xorKey byte) []byte {
	return buf.XorBytes(data, xorKey)
}

// DecryptV4 decodes a V4 container: AES-128-ECB on the first aesSize bytes
// with PKCS#7 stripped from that segment only, the middle copied verbatim,
// and the trailing xorSize bytes XOR-decrypted.
func DecryptV4(data []byte, xorKey byte, aesKey []byte) ([]byte, error) {
	hdr, err := format.ParseDatHeader(data, int64(len(data)))
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindCorrupt, Msg: "bad dat header", Err: err}
	}
	if len(aesKey) != format.AESImageKeySize {
		return nil, &types.Error{
			Kind: types.ErrKindInvalidKey,
			Msg:  fmt.Sprintf("image aes key must be %d bytes, have %d", format.AESImageKeySize, len(aesKey)),
		}
	}

	body := data[format.DatHeaderSize:]
	aesPart := body[:hdr.AESSize]
	mid := body[hdr.AESSize : uint32(len(body))-hdr.XorSize]
	tail := body[uint32(len(body))-hdr.XorSize:]

	decAES, err := decryptECB(aesPart, aesKey)
	if err != nil {
		return nil, err
	}
	decAES, err = stripPKCS7(decAES)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(decAES)+len(mid)+len(tail))
	out = append(out, decAES...)
	out = append(out, mid...)
	out = append(out, buf.XorBytes(tail, xorKey)...)
	return out, nil
}

// AutoDecrypt reads inPath, dispatches on the detected version, and writes
// the decoded bytes to outPath. aesKey is required iff the file is V4.
func AutoDecrypt(inPath, outPath string, xorKey byte, aesKey []byte) (types.ImageVersion, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return 0, &types.Error{Kind: types.ErrKindIO, Msg: "read image", Err: err}
	}

	version := DetectVersion(data)
	var plain []byte
	switch version {
	case types.ImageV3:
		plain = DecryptV3(data, xorKey)
	case types.ImageV4v1, types.ImageV4v2:
		if plain, err = DecryptV4(data, xorKey, aesKey); err != nil {
			return version, err
		}
	}

	if err := os.WriteFile(outPath, plain, 0o644); err != nil {
		return version, &types.Error{Kind: types.ErrKindIO, Msg: "write image", Err: err}
	}
	return version, nil
}

// DetectXorKey probes a V3 file for its XOR key by testing every candidate
// byte against the known image magics. Only meaningful for V3; the second
// return is false when nothing matches.
func DetectXorKey(inPath string) (byte, bool, error) {
	f, err := os.Open(inPath)
	if err != nil {
		return 0, false, &types.Error{Kind: types.ErrKindIO, Msg: "open image", Err: err}
	}
	defer f.Close()

	first := make([]byte, xorProbeLen)
	n, err := io.ReadFull(f, first)
	if err != nil && err != io.ErrUnexpectedEOF {
		return 0, false, &types.Error{Kind: types.ErrKindIO, Msg: "read image head", Err: err}
	}
	key, ok := format.ProbeXorKey(first[:n])
	return key, ok, nil
}

// DetectFormat returns the extension for decoded image bytes, or "" when the
// magic is unknown. The caller chooses the output name from it.
func DetectFormat(plain []byte) string {
	return format.DetectImageExt(plain)
}

// decryptECB decrypts an AES-128-ECB segment. The segment length is already
// block-aligned per the header invariant.
func decryptECB(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindCrypto, Msg: "aes init failed", Err: err}
	}
	out := make([]byte, len(data))
	for i := 0; i < len(data); i += format.AESBlockSize {
		block.Decrypt(out[i:i+format.AESBlockSize], data[i:i+format.AESBlockSize])
	}
	return out, nil
}

// stripPKCS7 removes PKCS#7 padding from the AES segment. An empty segment
// carries no padding.
func stripPKCS7(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return b, nil
	}
	pad := int(b[len(b)-1])
	if pad == 0 || pad > format.AESBlockSize || pad > len(b) {
		return nil, types.ErrBadPadding
	}
	for i := len(b) - pad; i < len(b); i++ {
		if b[i] != byte(pad) {
			return nil, types.ErrBadPadding
		}
	}
	return b[:len(b)-pad], nil
}
