// Package testutil builds encrypted fixtures in memory so tests exercise the
// real codecs instead of golden binaries. The builders are exact inverses of
// the production decryption paths.
package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha512"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/pbkdf2"

	"github.com/wxforge/wxkit/internal/buf"
	"github.com/wxforge/wxkit/internal/format"
)

// TestMasterKeyHex is the well-known key used across the test suite.
const TestMasterKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// TestMasterKey returns the decoded well-known master key.
func TestMasterKey() []byte {
	key := make([]byte, format.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

// EncDB is an encrypted database fixture plus everything a test needs to
// check the decryption result.
type EncDB struct {
	Raw   []byte   // the encrypted file image
	Salt  []byte   // 16-byte KDF salt at the head of page 1
	Plain [][]byte // per-page 4048-byte plaintext bodies; page 1 starts with Salt
}

// BuildDB encrypts pages of deterministic plaintext under masterKey. The
// layout matches the production format byte for byte: per-page CBC body,
// trailing IV, truncated HMAC tag, and reserved padding.
func BuildDB(t *testing.T, masterKey []byte, pages int) *EncDB {
	t.Helper()

	salt := make([]byte, format.SaltSize)
	for i := range salt {
		salt[i] = byte(0xC0 + i)
	}

	encKey, macKey := deriveSubkeys(masterKey, salt)

	block, err := aes.NewCipher(encKey)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}

	db := &EncDB{Salt: salt}
	raw := make([]byte, 0, pages*format.PageSize)
	for n := 1; n <= pages; n++ {
		plain := pagePlaintext(n, salt)
		iv := pageIV(n)

		body := make([]byte, format.BodySize)
		enc := cipher.NewCBCEncrypter(block, iv)
		if n == 1 {
			copy(body, salt)
			enc.CryptBlocks(body[format.SaltSize:], plain[format.SaltSize:])
		} else {
			enc.CryptBlocks(body, plain)
		}

		tag := pageTag(macKey, body, iv, uint32(n))

		page := make([]byte, 0, format.PageSize)
		page = append(page, body...)
		page = append(page, iv...)
		page = append(page, tag...)
		page = append(page, make([]byte, format.TailPadSize)...)

		raw = append(raw, page...)
		db.Plain = append(db.Plain, plain)
	}
	db.Raw = raw
	return db
}

// ExpectedOutput returns the plaintext file image DecryptDatabase should
// produce for db: the SQLite magic over the salt, decrypted bodies, and each
// page's trailer preserved verbatim.
func (db *EncDB) ExpectedOutput() []byte {
	out := make([]byte, len(db.Raw))
	copy(out, db.Raw)
	for n := 1; n <= len(db.Plain); n++ {
		off := (n - 1) * format.PageSize
		copy(out[off:], db.Plain[n-1])
		if n == 1 {
			copy(out[off:], format.SQLiteMagic)
		}
	}
	return out
}

// WriteFile drops data into dir under name and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// CorruptPage flips one body byte of the given 1-based page in a raw file
// image, invalidating that page's tag without touching its neighbors.
func CorruptPage(raw []byte, pageNo int) {
	raw[(pageNo-1)*format.PageSize+100] ^= 0xFF
}

func deriveSubkeys(masterKey, salt []byte) (encKey, macKey []byte) {
	encKey = pbkdf2.Key(masterKey, salt, format.EncIterations, format.KeySize, sha512.New)
	macSalt := buf.XorBytes(salt, format.MacSaltXor)
	macKey = pbkdf2.Key(encKey, macSalt, format.MacIterations, format.KeySize, sha512.New)
	return encKey, macKey
}

func pageTag(macKey, body, iv []byte, pageNo uint32) []byte {
	mac := hmac.New(sha512.New, macKey)
	mac.Write(body)
	mac.Write(iv)
	var no [4]byte
	buf.PutU32LE(no[:], pageNo)
	mac.Write(no[:])
	return mac.Sum(nil)[:format.MacSize]
}

// pagePlaintext fills a deterministic 4048-byte body. Page 1 leads with the
// salt so the ciphertext layout mirrors a real database.
func pagePlaintext(pageNo int, salt []byte) []byte {
	plain := make([]byte, format.BodySize)
	for i := range plain {
		plain[i] = byte(pageNo + i)
	}
	if pageNo == 1 {
		copy(plain, salt)
	}
	return plain
}

// pageIV derives a distinct deterministic IV per page.
func pageIV(pageNo int) []byte {
	iv := make([]byte, format.IVSize)
	for i := range iv {
		iv[i] = byte(0x40 + pageNo + 3*i)
	}
	return iv
}
