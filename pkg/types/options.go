package types

// Progress receives decryption progress events. Implementations must be
// non-blocking; the pipeline invokes them on the worker goroutine doing the
// work. A nil Progress is always valid.
type Progress interface {
	// OnPage reports page-level progress inside a single database.
	OnPage(current, total int64)
	// OnFile reports file-level progress inside a batch run.
	OnFile(path string, current, total int)
}

// NopProgress is a Progress implementation that discards all events.
type NopProgress struct{}

func (NopProgress) OnPage(current, total int64)            {}
func (NopProgress) OnFile(path string, current, total int) {}

// DecryptOptions controls single-database decryption behavior.
type DecryptOptions struct {
	// SkipValidation bypasses the dedicated page-1 key check before the
	// output file is created. The per-page MAC still rejects a wrong key
	// at the first page; the failure just surfaces as a MAC mismatch.
	SkipValidation bool

	// VerifyOutput opens the decrypted file with SQLite after the last
	// page is written and runs an integrity probe. Adds one extra pass
	// over the output.
	VerifyOutput bool

	// Progress receives page-level events, rate-limited by the pipeline.
	// Nil means no reporting.
	Progress Progress
}

// BatchOptions controls batch decryption behavior.
type BatchOptions struct {
	// Workers bounds the number of concurrent per-file pipelines.
	// 0 means sequential, which also enables page-level progress.
	Workers int

	// SkipValidation is passed through to every per-file pipeline.
	SkipValidation bool

	// VerifyOutput is passed through to every per-file pipeline.
	VerifyOutput bool

	// ScanOnly stops after enumeration and returns just the file list.
	ScanOnly bool

	// Progress receives file-level events (and page-level events when
	// Workers == 0). Nil means no reporting.
	Progress Progress
}
