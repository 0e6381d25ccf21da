package wechat

import "github.com/wxforge/wxkit/pkg/types"

// Re-exported result and option types. Callers only need this package; the
// aliases keep pkg/types out of their import lists.
type (
	Error          = types.Error
	ErrKind        = types.ErrKind
	MacError       = types.MacError
	DatabaseInfo   = types.DatabaseInfo
	DecryptStats   = types.DecryptStats
	DecryptOptions = types.DecryptOptions
	BatchOptions   = types.BatchOptions
	BatchReport    = types.BatchReport
	DbFileEntry    = types.DbFileEntry
	FileResult     = types.FileResult
	Progress       = types.Progress
	ImageVersion   = types.ImageVersion
)

const (
	ErrKindInvalidKey  = types.ErrKindInvalidKey
	ErrKindMacMismatch = types.ErrKindMacMismatch
	ErrKindCorrupt     = types.ErrKindCorrupt
	ErrKindCrypto      = types.ErrKindCrypto
	ErrKindIO          = types.ErrKindIO
	ErrKindUnsupported = types.ErrKindUnsupported
	ErrKindBadPadding  = types.ErrKindBadPadding

	ImageV3   = types.ImageV3
	ImageV4v1 = types.ImageV4v1
	ImageV4v2 = types.ImageV4v2
)

// KindOf reports the error kind of err, or ErrKindIO when err carries no
// typed kind.
func KindOf(err error) ErrKind { return types.KindOf(err) }

// IsWrongKey reports whether err indicates the supplied master key is wrong,
// as opposed to data corruption or an I/O failure.
func IsWrongKey(err error) bool { return types.IsWrongKey(err) }
