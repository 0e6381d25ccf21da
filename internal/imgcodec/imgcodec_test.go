package imgcodec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxforge/wxkit/internal/format"
	"github.com/wxforge/wxkit/internal/testutil"
	"github.com/wxforge/wxkit/pkg/types"
)

func TestDetectVersion(t *testing.T) {
	assert.Equal(t, types.ImageV4v1, DetectVersion(format.DatV4v1Signature))
	assert.Equal(t, types.ImageV4v2, DetectVersion(format.DatV4v2Signature))
	assert.Equal(t, types.ImageV3, DetectVersion([]byte{0xFF, 0xD8, 0xFF}))
	assert.Equal(t, types.ImageV3, DetectVersion(nil))
}

func TestDecryptV3RoundTrip(t *testing.T) {
	plain := testutil.JPEGPayload(100)
	enc := testutil.BuildV3Image(plain, 0x5A)
	assert.Equal(t, plain, DecryptV3(enc, 0x5A))
	assert.Equal(t, enc, DecryptV3(plain, 0x5A), "XOR re-encrypts")
}

func TestDecryptV4RoundTrip(t *testing.T) {
	plain := testutil.JPEGPayload(200)
	for _, sig := range [][]byte{format.DatV4v1Signature, format.DatV4v2Signature} {
		enc := testutil.BuildV4Image(t, sig, plain, testutil.TestImageAESKey, 0x37, 64, 50)
		got, err := DecryptV4(enc, 0x37, testutil.TestImageAESKey)
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	}
}

func TestDecryptV4EmptySections(t *testing.T) {
	plain := testutil.JPEGPayload(80)

	// No XOR tail: everything after the AES section is verbatim.
	enc := testutil.BuildV4Image(t, format.DatV4v1Signature, plain, testutil.TestImageAESKey, 0x37, 32, 0)
	got, err := DecryptV4(enc, 0x37, testutil.TestImageAESKey)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	// No AES section either: PKCS#7 still pads the empty segment.
	enc = testutil.BuildV4Image(t, format.DatV4v1Signature, plain, testutil.TestImageAESKey, 0x37, 0, 16)
	got, err = DecryptV4(enc, 0x37, testutil.TestImageAESKey)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestDecryptV4WrongAESKeyLength(t *testing.T) {
	plain := testutil.JPEGPayload(100)
	enc := testutil.BuildV4Image(t, format.DatV4v1Signature, plain, testutil.TestImageAESKey, 0x37, 32, 16)

	_, err := DecryptV4(enc, 0x37, []byte("short"))
	require.Error(t, err)
	assert.Equal(t, types.ErrKindInvalidKey, types.KindOf(err))
}

func TestDecryptV4BadPadding(t *testing.T) {
	// An AES segment whose plaintext ends in 0x00 can never carry valid
	// PKCS#7 padding.
	seg := testutil.EncryptECB(t, make([]byte, format.AESBlockSize), testutil.TestImageAESKey)
	enc := make([]byte, 0, format.DatHeaderSize+len(seg))
	enc = append(enc, format.DatV4v1Signature...)
	enc = append(enc, byte(len(seg)), 0, 0, 0) // aesSize
	enc = append(enc, 0, 0, 0, 0)              // xorSize
	enc = append(enc, 0)                       // reserved
	enc = append(enc, seg...)

	_, err := DecryptV4(enc, 0x37, testutil.TestImageAESKey)
	require.Error(t, err)
	assert.Equal(t, types.ErrKindBadPadding, types.KindOf(err))
}

func TestDecryptV4TruncatedHeader(t *testing.T) {
	_, err := DecryptV4(format.DatV4v1Signature, 0, testutil.TestImageAESKey)
	require.Error(t, err)
	assert.Equal(t, types.ErrKindCorrupt, types.KindOf(err))
}

func TestAutoDecryptV3(t *testing.T) {
	plain := testutil.JPEGPayload(64)
	dir := t.TempDir()
	inPath := testutil.WriteFile(t, dir, "pic.dat", testutil.BuildV3Image(plain, 0xA5))
	outPath := filepath.Join(dir, "pic.jpg")

	version, err := AutoDecrypt(inPath, outPath, 0xA5, nil)
	require.NoError(t, err)
	assert.Equal(t, types.ImageV3, version)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestAutoDecryptV4(t *testing.T) {
	plain := testutil.JPEGPayload(150)
	dir := t.TempDir()
	enc := testutil.BuildV4Image(t, format.DatV4v2Signature, plain, testutil.TestImageAESKey, 0x11, 48, 30)
	inPath := testutil.WriteFile(t, dir, "pic.dat", enc)
	outPath := filepath.Join(dir, "pic.jpg")

	version, err := AutoDecrypt(inPath, outPath, 0x11, testutil.TestImageAESKey)
	require.NoError(t, err)
	assert.Equal(t, types.ImageV4v2, version)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestDetectXorKey(t *testing.T) {
	plain := testutil.JPEGPayload(64)
	dir := t.TempDir()
	inPath := testutil.WriteFile(t, dir, "pic.dat", testutil.BuildV3Image(plain, 0x6C))

	key, ok, err := DetectXorKey(inPath)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte(0x6C), key)

	// All-zero non-image bytes resolve to nothing.
	junk := testutil.WriteFile(t, dir, "junk.dat", make([]byte, 64))
	_, ok, err = DetectXorKey(junk)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, "jpg", DetectFormat(testutil.JPEGPayload(16)))
	assert.Equal(t, "", DetectFormat([]byte("plain text")))
}
