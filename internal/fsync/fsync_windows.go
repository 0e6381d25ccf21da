//go:build windows

package fsync

import "golang.org/x/sys/windows"

// fdatasync performs file descriptor sync using FlushFileBuffers.
//
// On Windows, FlushFileBuffers ensures all file data and metadata is written
// to disk.
func fdatasync(fd int) error {
	return windows.FlushFileBuffers(windows.Handle(fd))
}
