// Package decrypt implements the authenticated page codec and the streaming
// database pipeline for WeChat V4 encrypted SQLite files.
package decrypt

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/wxforge/wxkit/internal/buf"
	"github.com/wxforge/wxkit/internal/format"
	"github.com/wxforge/wxkit/pkg/types"
)

// ParseHexKey decodes and validates a 64-character hex master key. It runs
// before any file I/O so a malformed key never touches the input.
func ParseHexKey(hexKey string) ([]byte, error) {
	if len(hexKey) != format.HexKeyLen {
		return nil, &types.Error{
			Kind: types.ErrKindInvalidKey,
			Msg:  fmt.Sprintf("key must be %d hex characters, have %d", format.HexKeyLen, len(hexKey)),
		}
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindInvalidKey, Msg: "key is not valid hex", Err: err}
	}
	return key, nil
}

// DeriveSubkeys derives the page encryption key and the page MAC key from the
// master key and the per-database salt. The first derivation runs 256,000
// PBKDF2 iterations, so callers must invoke this exactly once per file.
func DeriveSubkeys(masterKey, salt []byte) (encKey, macKey []byte) {
	encKey = pbkdf2.Key(masterKey, salt, format.EncIterations, format.KeySize, sha512.New)
	macSalt := buf.XorBytes(salt, format.MacSaltXor)
	macKey = pbkdf2.Key(encKey, macSalt, format.MacIterations, format.KeySize, sha512.New)
	return encKey, macKey
}
