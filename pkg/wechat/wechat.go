package wechat

import (
	"github.com/wxforge/wxkit/internal/batch"
	"github.com/wxforge/wxkit/internal/decrypt"
	"github.com/wxforge/wxkit/internal/imgcodec"
	"github.com/wxforge/wxkit/pkg/types"
)

// DecryptDatabase decrypts one encrypted database file. hexKey is the 64-char
// hex encoding of the 32-byte master key; opts may be nil for defaults.
//
// Example:
//
//	stats, err := wechat.DecryptDatabase("MicroMsg.db", "out.db", hexKey, nil)
//	if err != nil {
//	    if wechat.IsWrongKey(err) {
//	        log.Fatal("wrong key")
//	    }
//	    log.Fatal(err)
//	}
func DecryptDatabase(inPath, outPath, hexKey string, opts *DecryptOptions) (*DecryptStats, error) {
	key, err := decrypt.ParseHexKey(hexKey)
	if err != nil {
		return nil, err
	}
	return decrypt.DecryptDatabase(inPath, outPath, key, opts)
}

// ValidateKey checks hexKey against the first page of the database at path
// without producing any output. A nil return means the key is correct; a
// rejected key surfaces as an error satisfying IsWrongKey.
func ValidateKey(path, hexKey string) error {
	key, err := decrypt.ParseHexKey(hexKey)
	if err != nil {
		return err
	}
	ok, err := decrypt.ValidateKey(path, key)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrInvalidKey
	}
	return nil
}

// GetDatabaseInfo inspects a database file without a key: size, page count,
// salt, and whether it is encrypted at all.
func GetDatabaseInfo(path string) (*DatabaseInfo, error) {
	return decrypt.GetDatabaseInfo(path)
}

// ScanDatabases walks root and lists candidate database files in a
// deterministic order. No decryption is attempted.
func ScanDatabases(root string) ([]DbFileEntry, error) {
	return batch.Scan(root)
}

// DecryptBatch decrypts every database under root into a mirrored tree under
// outRoot. Individual failures are collected in the report rather than
// aborting the run; opts may be nil for defaults.
//
// Example:
//
//	report, err := wechat.DecryptBatch("db_storage", "out", hexKey, &wechat.BatchOptions{Workers: 4})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d ok, %d failed\n", len(report.Successes), len(report.Failures))
func DecryptBatch(root, outRoot, hexKey string, opts *BatchOptions) (*BatchReport, error) {
	key, err := decrypt.ParseHexKey(hexKey)
	if err != nil {
		return nil, err
	}
	return batch.DecryptBatch(root, outRoot, key, opts)
}

// DecryptImage decodes one encrypted image file, dispatching on the detected
// container version. aesKey is the 16-byte image key, required only for V4
// files; pass nil for V3.
func DecryptImage(inPath, outPath string, xorKey byte, aesKey []byte) (ImageVersion, error) {
	return imgcodec.AutoDecrypt(inPath, outPath, xorKey, aesKey)
}

// DetectImageVersion classifies an image file by its leading bytes.
func DetectImageVersion(first []byte) ImageVersion {
	return imgcodec.DetectVersion(first)
}

// DetectImageXorKey probes a V3 image file for its single-byte XOR key. The
// boolean is false when no candidate byte yields a known image magic.
func DetectImageXorKey(path string) (byte, bool, error) {
	return imgcodec.DetectXorKey(path)
}

// DetectImageFormat returns the file extension ("jpg", "png", ...) matching
// decoded image bytes, or "" when the magic is unknown.
func DetectImageFormat(plain []byte) string {
	return imgcodec.DetectFormat(plain)
}
