package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrPageSize indicates a file size that is zero or not a page multiple.
	ErrPageSize = errors.New("format: size is not a non-zero multiple of the page size")
	// ErrSectionOverrun indicates image sections that exceed the container.
	ErrSectionOverrun = errors.New("format: aes+xor sections exceed container size")
	// ErrSectionAlign indicates an AES section length that is not block aligned.
	ErrSectionAlign = errors.New("format: aes section not a multiple of the block size")
)
