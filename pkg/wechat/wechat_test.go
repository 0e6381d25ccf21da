package wechat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxforge/wxkit/internal/testutil"
	"github.com/wxforge/wxkit/pkg/wechat"
)

func TestDecryptDatabase(t *testing.T) {
	db := testutil.BuildDB(t, testutil.TestMasterKey(), 2)
	dir := t.TempDir()
	inPath := testutil.WriteFile(t, dir, "enc.db", db.Raw)
	outPath := filepath.Join(dir, "plain.db")

	stats, err := wechat.DecryptDatabase(inPath, outPath, testutil.TestMasterKeyHex, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Pages)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, db.ExpectedOutput(), got)
}

func TestDecryptDatabaseBadHexKey(t *testing.T) {
	dir := t.TempDir()
	_, err := wechat.DecryptDatabase(filepath.Join(dir, "in.db"), filepath.Join(dir, "out.db"), "nothex", nil)
	require.Error(t, err)
	assert.True(t, wechat.IsWrongKey(err))
	assert.Equal(t, wechat.ErrKindInvalidKey, wechat.KindOf(err))
}

func TestValidateKey(t *testing.T) {
	db := testutil.BuildDB(t, testutil.TestMasterKey(), 1)
	inPath := testutil.WriteFile(t, t.TempDir(), "enc.db", db.Raw)

	require.NoError(t, wechat.ValidateKey(inPath, testutil.TestMasterKeyHex))

	wrongHex := "ff" + testutil.TestMasterKeyHex[2:]
	err := wechat.ValidateKey(inPath, wrongHex)
	require.Error(t, err)
	assert.True(t, wechat.IsWrongKey(err))
}

func TestGetDatabaseInfo(t *testing.T) {
	db := testutil.BuildDB(t, testutil.TestMasterKey(), 3)
	inPath := testutil.WriteFile(t, t.TempDir(), "enc.db", db.Raw)

	info, err := wechat.GetDatabaseInfo(inPath)
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.PageCount)
	assert.True(t, info.Encrypted)
}

func TestScanAndBatch(t *testing.T) {
	db := testutil.BuildDB(t, testutil.TestMasterKey(), 1)
	root := t.TempDir()
	testutil.WriteFile(t, root, "sub/a.db", db.Raw)
	testutil.WriteFile(t, root, "sub/b.db", db.Raw)

	entries, err := wechat.ScanDatabases(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	outRoot := filepath.Join(t.TempDir(), "out")
	report, err := wechat.DecryptBatch(root, outRoot, testutil.TestMasterKeyHex, nil)
	require.NoError(t, err)
	assert.Len(t, report.Successes, 2)
	assert.Empty(t, report.Failures)
}

func TestDecryptImage(t *testing.T) {
	plain := testutil.JPEGPayload(64)
	dir := t.TempDir()
	inPath := testutil.WriteFile(t, dir, "pic.dat", testutil.BuildV3Image(plain, 0x3C))
	outPath := filepath.Join(dir, "pic.jpg")

	key, ok, err := wechat.DetectImageXorKey(inPath)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, byte(0x3C), key)

	version, err := wechat.DecryptImage(inPath, outPath, key, nil)
	require.NoError(t, err)
	assert.Equal(t, wechat.ImageV3, version)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
	assert.Equal(t, "jpg", wechat.DetectImageFormat(got))
}
