package format

import (
	"bytes"
	"fmt"
)

// PageFrame captures the regions of one 4096-byte encrypted page. The diagram
// below highlights the offsets we care about.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	0x000     16  KDF salt (page 1 only; opaque body bytes elsewhere)
//	0x000   4048  Encrypted body (AES-256-CBC)
//	0xFD0     16  AES-CBC initialization vector
//	0xFE0     20  HMAC-SHA512 tag, truncated
//	0xFF4     12  Reserved padding
//
// All slices alias the input buffer; callers must not retain them past the
// buffer's lifetime.
type PageFrame struct {
	Body     []byte // full encrypted body, salt included on page 1
	IV       []byte
	Tag      []byte
	Reserved []byte
}

// ParsePage splits a raw page into its regions.
func ParsePage(b []byte) (PageFrame, error) {
	if len(b) != PageSize {
		return PageFrame{}, fmt.Errorf("page: want %d bytes, have %d: %w", PageSize, len(b), ErrTruncated)
	}
	return PageFrame{
		Body:     b[:BodySize],
		IV:       b[BodySize : BodySize+IVSize],
		Tag:      b[BodySize+IVSize : BodySize+IVSize+MacSize],
		Reserved: b[BodySize+IVSize+MacSize:],
	}, nil
}

// CheckFileSize validates that size can hold a whole number of pages.
func CheckFileSize(size int64) error {
	if size <= 0 || size%PageSize != 0 {
		return fmt.Errorf("page: file size %d: %w", size, ErrPageSize)
	}
	return nil
}

// IsPlaintextSQLite reports whether the first bytes already carry the SQLite
// magic, meaning the file needs no decryption.
func IsPlaintextSQLite(first []byte) bool {
	return len(first) >= len(SQLiteMagic) && bytes.Equal(first[:len(SQLiteMagic)], SQLiteMagic)
}
