package decrypt

import (
	"encoding/hex"
	"io"
	"os"
	"time"

	"github.com/wxforge/wxkit/internal/buf"
	"github.com/wxforge/wxkit/internal/format"
	"github.com/wxforge/wxkit/internal/fsync"
	"github.com/wxforge/wxkit/internal/sqlcheck"
	"github.com/wxforge/wxkit/pkg/types"
)

// progressStride bounds callback overhead: OnPage fires every 64 pages plus
// once for the final page.
const progressStride = 64

func ioErr(msg string, err error) error {
	return &types.Error{Kind: types.ErrKindIO, Msg: msg, Err: err}
}

func corruptErr(msg string, err error) error {
	return &types.Error{Kind: types.ErrKindCorrupt, Msg: msg, Err: err}
}

// GetDatabaseInfo reads basic metadata from a database file without the key.
// Encrypted is true iff the file does not already start with the SQLite magic.
func GetDatabaseInfo(inPath string) (*types.DatabaseInfo, error) {
	f, err := os.Open(inPath)
	if err != nil {
		return nil, ioErr("open input", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, ioErr("stat input", err)
	}
	if err := format.CheckFileSize(st.Size()); err != nil {
		return nil, corruptErr("bad database size", err)
	}

	head := make([]byte, format.SaltSize)
	if _, err := io.ReadFull(f, head); err != nil {
		return nil, ioErr("read first page", err)
	}
	return &types.DatabaseInfo{
		Path:      inPath,
		SizeBytes: st.Size(),
		PageCount: st.Size() / format.PageSize,
		PageSize:  format.PageSize,
		SaltHex:   hex.EncodeToString(head),
		Encrypted: !format.IsPlaintextSQLite(head),
	}, nil
}

// ValidateKey checks the master key against page 1 of the database. It is a
// pure read: no output is created.
func ValidateKey(inPath string, masterKey []byte) (bool, error) {
	f, err := os.Open(inPath)
	if err != nil {
		return false, ioErr("open input", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return false, ioErr("stat input", err)
	}
	if err := format.CheckFileSize(st.Size()); err != nil {
		return false, corruptErr("bad database size", err)
	}

	page1 := make([]byte, format.PageSize)
	if _, err := io.ReadFull(f, page1); err != nil {
		return false, ioErr("read first page", err)
	}
	return ValidateFirstPage(page1, masterKey), nil
}

// DecryptDatabase streams inPath through the page codec and writes a standard
// SQLite file to outPath. Pages are written strictly in index order and the
// output size equals the input size. On any failure after the output is
// created, the partial file is removed before the error surfaces. Derived
// subkeys are scrubbed on every exit path.
func DecryptDatabase(inPath, outPath string, masterKey []byte, opts *types.DecryptOptions) (stats *types.DecryptStats, err error) {
	if opts == nil {
		opts = &types.DecryptOptions{}
	}
	start := time.Now()

	in, err := os.Open(inPath)
	if err != nil {
		return nil, ioErr("open input", err)
	}
	defer in.Close()

	st, err := in.Stat()
	if err != nil {
		return nil, ioErr("stat input", err)
	}
	size := st.Size()
	if err := format.CheckFileSize(size); err != nil {
		return nil, corruptErr("bad database size", err)
	}
	totalPages := size / format.PageSize

	page := make([]byte, format.PageSize)
	if _, err := io.ReadFull(in, page); err != nil {
		return nil, ioErr("read first page", err)
	}

	encKey, macKey := DeriveSubkeys(masterKey, page[:format.SaltSize])
	defer buf.Zeroize(encKey)
	defer buf.Zeroize(macKey)

	if !opts.SkipValidation {
		frame, ferr := format.ParsePage(page)
		if ferr != nil {
			return nil, corruptErr("malformed first page", ferr)
		}
		if !VerifyPage(macKey, frame, 1) {
			return nil, types.ErrInvalidKey
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return nil, ioErr("create output", err)
	}
	defer func() {
		if err != nil {
			out.Close()
			os.Remove(outPath)
		}
	}()

	outPage := make([]byte, format.PageSize)
	for pageNo := uint32(1); int64(pageNo) <= totalPages; pageNo++ {
		if pageNo > 1 {
			if _, err = io.ReadFull(in, page); err != nil {
				return nil, ioErr("read page", err)
			}
		}
		frame, _ := format.ParsePage(page)
		var plain []byte
		plain, err = DecryptPage(pageNo, page, encKey, macKey)
		if err != nil {
			return nil, err
		}
		if pageNo == 1 {
			copy(plain, format.SQLiteMagic)
		}
		if err = assemblePage(outPage, plain, frame); err != nil {
			return nil, corruptErr("assemble page", err)
		}
		if _, err = out.Write(outPage); err != nil {
			return nil, ioErr("write page", err)
		}
		if opts.Progress != nil && (pageNo%progressStride == 0 || int64(pageNo) == totalPages) {
			opts.Progress.OnPage(int64(pageNo), totalPages)
		}
	}

	if err = fsync.File(out); err != nil {
		return nil, ioErr("flush output", err)
	}
	if err = out.Close(); err != nil {
		return nil, ioErr("close output", err)
	}

	if opts.VerifyOutput {
		if err = sqlcheck.Check(outPath); err != nil {
			return nil, corruptErr("decrypted output failed sqlite verification", err)
		}
	}

	return &types.DecryptStats{
		Pages:    totalPages,
		Bytes:    size,
		Duration: time.Since(start),
	}, nil
}
