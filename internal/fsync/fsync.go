// Package fsync makes completed output files durable before the pipeline
// reports success. Each platform uses its cheapest sufficient primitive.
package fsync

import "os"

// File flushes f's written data to stable storage.
func File(f *os.File) error {
	return fdatasync(int(f.Fd()))
}
