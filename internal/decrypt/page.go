package decrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha512"
	"fmt"

	"github.com/wxforge/wxkit/internal/buf"
	"github.com/wxforge/wxkit/internal/format"
	"github.com/wxforge/wxkit/pkg/types"
)

// pageMac computes the truncated HMAC-SHA512 tag binding the encrypted body
// and the IV to the 1-based page number. Page 1's leading salt bytes are part
// of the body and are hashed as opaque bytes.
func pageMac(macKey []byte, frame format.PageFrame, pageNo uint32) []byte {
	mac := hmac.New(sha512.New, macKey)
	mac.Write(frame.Body)
	mac.Write(frame.IV)
	var no [4]byte
	buf.PutU32LE(no[:], pageNo)
	mac.Write(no[:])
	return mac.Sum(nil)[:format.MacSize]
}

// VerifyPage reports whether the stored tag matches the computed MAC.
// hmac.Equal compares in constant time.
func VerifyPage(macKey []byte, frame format.PageFrame, pageNo uint32) bool {
	return hmac.Equal(pageMac(macKey, frame, pageNo), frame.Tag)
}

// ValidateFirstPage is the cheap key-correctness oracle: it derives subkeys
// from the salt at the head of page 1 and checks the page's MAC. No output
// is written. Subkey material is scrubbed before return.
func ValidateFirstPage(page, masterKey []byte) bool {
	if len(page) != format.PageSize || len(masterKey) != format.KeySize {
		return false
	}
	frame, err := format.ParsePage(page)
	if err != nil {
		return false
	}
	encKey, macKey := DeriveSubkeys(masterKey, page[:format.SaltSize])
	defer buf.Zeroize(encKey)
	defer buf.Zeroize(macKey)
	return VerifyPage(macKey, frame, 1)
}

// DecryptPage authenticates and decrypts one page, returning the 4048-byte
// plaintext body. For page 1 the leading 16 salt bytes pass through
// unmodified; the pipeline substitutes the SQLite magic when writing. The
// trailing IV, tag, and reserved bytes are not included; callers reassemble
// the full output page from the original frame.
func DecryptPage(pageNo uint32, page []byte, encKey, macKey []byte) ([]byte, error) {
	frame, err := format.ParsePage(page)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindCorrupt, Msg: "malformed page", Err: err}
	}
	if !VerifyPage(macKey, frame, pageNo) {
		return nil, &types.MacError{Page: pageNo}
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindCrypto, Msg: "aes init failed", Err: err}
	}

	plain := make([]byte, format.BodySize)
	dec := cipher.NewCBCDecrypter(block, frame.IV)
	if pageNo == 1 {
		// The salt is not ciphertext. CBC starts at offset 16 with the
		// same IV; no padding exists at this layer.
		copy(plain, frame.Body[:format.SaltSize])
		dec.CryptBlocks(plain[format.SaltSize:], frame.Body[format.SaltSize:])
	} else {
		dec.CryptBlocks(plain, frame.Body)
	}
	return plain, nil
}

// assemblePage writes plaintext body and preserved trailer into out.
func assemblePage(out []byte, plain []byte, frame format.PageFrame) error {
	if len(out) != format.PageSize || len(plain) != format.BodySize {
		return fmt.Errorf("assemble: body %d tail %d", len(plain), len(out)-len(plain))
	}
	copy(out, plain)
	copy(out[format.BodySize:], frame.IV)
	copy(out[format.BodySize+format.IVSize:], frame.Tag)
	copy(out[format.BodySize+format.IVSize+format.MacSize:], frame.Reserved)
	return nil
}
