package batch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wxforge/wxkit/internal/decrypt"
	"github.com/wxforge/wxkit/pkg/types"
)

// sink collects per-file results. Append-only under a single mutex; the
// orchestrator shares nothing else across workers.
type sink struct {
	mu        sync.Mutex
	successes []types.FileResult
	failures  []types.FileResult
	done      int
}

func (s *sink) record(res types.FileResult, progress types.Progress, total int) {
	s.mu.Lock()
	if res.Err == nil {
		s.successes = append(s.successes, res)
	} else {
		res.ErrMsg = res.Err.Error()
		s.failures = append(s.failures, res)
	}
	s.done++
	done := s.done
	s.mu.Unlock()
	if progress != nil {
		progress.OnFile(res.RelPath, done, total)
	}
}

// DecryptBatch scans root, mirrors its directory structure under outRoot, and
// decrypts every discovered database. All files are attempted; a failure
// never aborts its siblings. Workers == 0 runs sequentially, which also
// enables page-level progress that would interleave incomprehensibly under
// parallelism.
func DecryptBatch(root, outRoot string, masterKey []byte, opts *types.BatchOptions) (*types.BatchReport, error) {
	if opts == nil {
		opts = &types.BatchOptions{}
	}
	start := time.Now()

	entries, err := Scan(root)
	if err != nil {
		return nil, err
	}

	report := &types.BatchReport{
		JobID:   uuid.NewString(),
		Entries: entries,
	}
	if opts.ScanOnly {
		report.Elapsed = time.Since(start)
		return report, nil
	}

	// Directory creation is idempotent and happens eagerly so no worker
	// races another on MkdirAll.
	for _, e := range entries {
		dir := filepath.Dir(filepath.Join(outRoot, filepath.FromSlash(e.RelPath)))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &types.Error{Kind: types.ErrKindIO, Msg: "create output directory", Err: err}
		}
	}

	workers := opts.Workers
	sequential := workers == 0
	if sequential {
		workers = 1
	}

	fileOpts := &types.DecryptOptions{
		SkipValidation: opts.SkipValidation,
		VerifyOutput:   opts.VerifyOutput,
	}
	if sequential {
		fileOpts.Progress = opts.Progress
	}

	results := &sink{}
	queue := make(chan types.DbFileEntry)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range queue {
				results.record(decryptOne(root, outRoot, masterKey, e, fileOpts), opts.Progress, len(entries))
			}
		}()
	}
	for _, e := range entries {
		queue <- e
	}
	close(queue)
	wg.Wait()

	report.Successes = results.successes
	report.Failures = results.failures
	report.Elapsed = time.Since(start)
	return report, nil
}

func decryptOne(root, outRoot string, masterKey []byte, e types.DbFileEntry, opts *types.DecryptOptions) types.FileResult {
	res := types.FileResult{RelPath: e.RelPath}
	began := time.Now()
	stats, err := decrypt.DecryptDatabase(
		filepath.Join(root, filepath.FromSlash(e.RelPath)),
		filepath.Join(outRoot, filepath.FromSlash(e.RelPath)),
		masterKey, opts)
	res.Duration = time.Since(began)
	if err != nil {
		res.Err = err
		return res
	}
	res.Bytes = stats.Bytes
	return res
}
