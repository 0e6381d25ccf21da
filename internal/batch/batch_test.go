package batch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxforge/wxkit/internal/testutil"
	"github.com/wxforge/wxkit/pkg/types"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "b/msg.db", []byte("x"))
	testutil.WriteFile(t, dir, "a/contact.DB", []byte("xx"))
	testutil.WriteFile(t, dir, "a/media.db", []byte("xxx"))
	testutil.WriteFile(t, dir, "a/notes.txt", []byte("skip"))
	testutil.WriteFile(t, dir, "readme.md", []byte("skip"))

	entries, err := Scan(dir)
	require.NoError(t, err)

	rels := make([]string, len(entries))
	for i, e := range entries {
		rels[i] = e.RelPath
	}
	assert.Equal(t, []string{"a/contact.DB", "a/media.db", "b/msg.db"}, rels,
		"lexicographic order, forward slashes, case-insensitive extension")
	assert.Equal(t, int64(2), entries[0].SizeBytes)

	// Repeated scans over an unchanged tree are identical.
	again, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, entries, again)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, types.ErrKindIO, types.KindOf(err))
}

func TestDecryptBatch(t *testing.T) {
	master := testutil.TestMasterKey()
	good := testutil.BuildDB(t, master, 2)
	bad := testutil.BuildDB(t, master, 2)
	testutil.CorruptPage(bad.Raw, 2)

	root := t.TempDir()
	testutil.WriteFile(t, root, "msg/chat.db", good.Raw)
	testutil.WriteFile(t, root, "media/thumb.db", good.Raw)
	testutil.WriteFile(t, root, "msg/broken.db", bad.Raw)

	outRoot := filepath.Join(t.TempDir(), "out")
	report, err := DecryptBatch(root, outRoot, master, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, report.JobID)
	assert.Len(t, report.Entries, 3)
	assert.Len(t, report.Successes, 2)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "msg/broken.db", report.Failures[0].RelPath)
	assert.NotEmpty(t, report.Failures[0].ErrMsg)

	// The output tree mirrors the input tree for the successes only.
	got, err := os.ReadFile(filepath.Join(outRoot, "msg", "chat.db"))
	require.NoError(t, err)
	assert.Equal(t, good.ExpectedOutput(), got)
	_, err = os.Stat(filepath.Join(outRoot, "media", "thumb.db"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outRoot, "msg", "broken.db"))
	assert.True(t, os.IsNotExist(err), "failed file leaves no partial output")
}

func TestDecryptBatchParallel(t *testing.T) {
	master := testutil.TestMasterKey()
	db := testutil.BuildDB(t, master, 1)

	root := t.TempDir()
	for _, name := range []string{"a.db", "b.db", "c.db", "d.db"} {
		testutil.WriteFile(t, root, name, db.Raw)
	}

	outRoot := filepath.Join(t.TempDir(), "out")
	report, err := DecryptBatch(root, outRoot, master, &types.BatchOptions{Workers: 3})
	require.NoError(t, err)
	assert.Len(t, report.Successes, 4)
	assert.Empty(t, report.Failures)
}

func TestDecryptBatchScanOnly(t *testing.T) {
	master := testutil.TestMasterKey()
	db := testutil.BuildDB(t, master, 1)

	root := t.TempDir()
	testutil.WriteFile(t, root, "a.db", db.Raw)

	outRoot := filepath.Join(t.TempDir(), "out")
	report, err := DecryptBatch(root, outRoot, master, &types.BatchOptions{ScanOnly: true})
	require.NoError(t, err)
	assert.Len(t, report.Entries, 1)
	assert.Empty(t, report.Successes)
	assert.Empty(t, report.Failures)
	_, err = os.Stat(outRoot)
	assert.True(t, os.IsNotExist(err), "scan-only writes nothing")
}

// fileProgress records OnFile callbacks.
type fileProgress struct {
	mu    sync.Mutex
	files []string
}

func (p *fileProgress) OnPage(int64, int64) {}
func (p *fileProgress) OnFile(path string, current, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files = append(p.files, path)
}

func TestDecryptBatchProgress(t *testing.T) {
	master := testutil.TestMasterKey()
	db := testutil.BuildDB(t, master, 1)

	root := t.TempDir()
	testutil.WriteFile(t, root, "a.db", db.Raw)
	testutil.WriteFile(t, root, "b.db", db.Raw)

	prog := &fileProgress{}
	outRoot := filepath.Join(t.TempDir(), "out")
	_, err := DecryptBatch(root, outRoot, master, &types.BatchOptions{Progress: prog})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.db", "b.db"}, prog.files)
}
