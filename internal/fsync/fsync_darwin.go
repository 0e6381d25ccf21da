//go:build darwin

package fsync

import "golang.org/x/sys/unix"

// fdatasync performs file descriptor sync.
//
// macOS doesn't have fdatasync; use fsync. F_FULLFSYNC is deliberately not
// used: decrypted copies are reproducible from their inputs.
func fdatasync(fd int) error {
	return unix.Fsync(fd)
}
