// Package format houses low-level decoders for the encrypted WeChat V4
// database page layout and the encrypted image ("dat") container. The goal
// is to keep the parsing focused, allocation-free where possible, and
// independent from the public API so higher-level packages can orchestrate
// the data in a more ergonomic form.
package format

var (
	// SQLiteMagic is the 16-byte header every plaintext SQLite 3 file
	// starts with. Decryption substitutes it for the salt on page 1.
	SQLiteMagic = []byte("SQLite format 3\x00")

	// DatV4v1Signature identifies a V4 image container, first variant.
	// Layout:
	//   0x00  0x07 0x08 'V' '1' 0x08 0x07
	DatV4v1Signature = []byte{0x07, 0x08, 0x56, 0x31, 0x08, 0x07}

	// DatV4v2Signature identifies a V4 image container, second variant.
	DatV4v2Signature = []byte{0x07, 0x08, 0x56, 0x32, 0x08, 0x07}
)

const (
	// PageSize is the fixed size of every encrypted database page.
	PageSize = 4096

	// SaltSize is the size of the KDF salt stored at the head of page 1.
	SaltSize = 16

	// IVSize is the size of the per-page AES-CBC initialization vector.
	IVSize = 16

	// MacSize is the size of the truncated HMAC-SHA512 tag on every page.
	MacSize = 20

	// TailPadSize is the reserved span after the MAC tag.
	TailPadSize = 12

	// ReserveSize is the unencrypted trailer of every page:
	// IV + MAC tag + reserved padding.
	ReserveSize = IVSize + MacSize + TailPadSize

	// BodySize is the encrypted span of every page.
	BodySize = PageSize - ReserveSize

	// KeySize is the size of the master key and both derived subkeys.
	KeySize = 32

	// HexKeyLen is the length of a master key in hex form.
	HexKeyLen = 2 * KeySize

	// EncIterations is the PBKDF2-HMAC-SHA512 iteration count for the
	// page encryption subkey.
	EncIterations = 256000

	// MacIterations is the PBKDF2-HMAC-SHA512 iteration count for the
	// page MAC subkey, derived from the encryption subkey.
	MacIterations = 2

	// MacSaltXor is XOR-ed into every salt byte to form the MAC salt.
	MacSaltXor = 0x3a

	// DatSignatureSize is the size of the V4 image container signature.
	DatSignatureSize = 6

	// DatHeaderSize is the full V4 image container header:
	// signature + u32 aesSize + u32 xorSize + 1 reserved byte.
	DatHeaderSize = DatSignatureSize + 4 + 4 + 1

	// AESImageKeySize is the size of the AES-128-ECB image key.
	AESImageKeySize = 16

	// AESBlockSize is the AES cipher block size.
	AESBlockSize = 16
)
