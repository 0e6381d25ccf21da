package types

import (
	"errors"
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindInvalidKey  ErrKind = iota // bad hex, wrong length, or page-1 MAC rejection
	ErrKindMacMismatch                // HMAC tag mismatch on a non-first page
	ErrKindCorrupt                    // bad sizes, truncated headers, section overruns
	ErrKindCrypto                     // a primitive returned an error
	ErrKindIO                         // read/write/seek/stat failures
	ErrKindUnsupported                // recognized container with an unknown variant
	ErrKindBadPadding                 // PKCS#7 unpadding failed on the AES image segment
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations.
var (
	// ErrInvalidKey indicates the supplied master key was rejected before or at page 1.
	ErrInvalidKey = &Error{Kind: ErrKindInvalidKey, Msg: "invalid decryption key"}
	// ErrCorrupt indicates non-recoverable structural inconsistency in the input.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt input"}
	// ErrCryptoFailure indicates a cipher or KDF primitive failed.
	ErrCryptoFailure = &Error{Kind: ErrKindCrypto, Msg: "crypto primitive failure"}
	// ErrUnsupportedVersion indicates a recognized-but-unknown container variant.
	ErrUnsupportedVersion = &Error{Kind: ErrKindUnsupported, Msg: "unsupported container version"}
	// ErrBadPadding indicates the AES image segment carried invalid PKCS#7 padding.
	ErrBadPadding = &Error{Kind: ErrKindBadPadding, Msg: "bad pkcs7 padding"}
)

// MacError reports an HMAC tag mismatch on a specific page. Page numbers are
// 1-based; page 1 means the key itself is wrong, later pages mean the file is
// corrupt or tampered with.
type MacError struct {
	Page uint32
}

func (e *MacError) Error() string {
	return fmt.Sprintf("hmac tag mismatch on page %d", e.Page)
}

// KindOf extracts the ErrKind from any error produced by this module.
// Unknown errors classify as ErrKindIO, the catch-all for environmental
// failures.
func KindOf(err error) ErrKind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	var me *MacError
	if errors.As(err, &me) {
		return ErrKindMacMismatch
	}
	return ErrKindIO
}

// IsWrongKey reports whether err means the master key was rejected, either by
// up-front validation or by a page-1 MAC failure when validation was skipped.
func IsWrongKey(err error) bool {
	var te *Error
	if errors.As(err, &te) && te.Kind == ErrKindInvalidKey {
		return true
	}
	var me *MacError
	return errors.As(err, &me) && me.Page == 1
}

// -----------------------------------------------------------------------------
// Results & Metadata
// -----------------------------------------------------------------------------

// DatabaseInfo describes an encrypted (or already-plaintext) database file
// without requiring the key.
type DatabaseInfo struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"sizeBytes"`
	PageCount int64  `json:"pageCount"`
	PageSize  int    `json:"pageSize"`
	SaltHex   string `json:"saltHex"`
	Encrypted bool   `json:"encrypted"`
}

// DecryptStats summarizes one successful database decryption.
type DecryptStats struct {
	Pages    int64         `json:"pages"`
	Bytes    int64         `json:"bytes"`
	Duration time.Duration `json:"duration"`
}

// DbFileEntry is one candidate database discovered by a scan. RelPath always
// uses forward slashes.
type DbFileEntry struct {
	RelPath   string `json:"relPath"`
	SizeBytes int64  `json:"sizeBytes"`
}

// FileResult records the outcome of one file inside a batch run.
type FileResult struct {
	RelPath  string        `json:"relPath"`
	Bytes    int64         `json:"bytes"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
	ErrMsg   string        `json:"error,omitempty"`
}

// BatchReport aggregates a whole batch run. Successes and Failures are stable
// in completion order; Entries preserves the deterministic scan order.
type BatchReport struct {
	JobID     string        `json:"jobId"`
	Entries   []DbFileEntry `json:"entries"`
	Successes []FileResult  `json:"successes"`
	Failures  []FileResult  `json:"failures"`
	Elapsed   time.Duration `json:"elapsed"`
}

// ImageVersion tags the container variant of an encrypted image file.
type ImageVersion int

const (
	// ImageV3 is the legacy whole-file XOR container (no signature).
	ImageV3 ImageVersion = iota
	// ImageV4v1 is the V4 container with the "V1" signature.
	ImageV4v1
	// ImageV4v2 is the V4 container with the "V2" signature.
	ImageV4v2
)

// String implements the Stringer interface for ImageVersion.
func (v ImageVersion) String() string {
	switch v {
	case ImageV3:
		return "v3"
	case ImageV4v1:
		return "v4.1"
	case ImageV4v2:
		return "v4.2"
	default:
		return fmt.Sprintf("UNKNOWN_VERSION_%d", int(v))
	}
}
