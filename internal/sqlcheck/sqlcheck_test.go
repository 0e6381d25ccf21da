package sqlcheck

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAcceptsRealDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "real.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE msg (id INTEGER PRIMARY KEY, body TEXT)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO msg (body) VALUES ('hello')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.NoError(t, Check(path))
}

func TestCheckRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.db")
	junk := make([]byte, 4096)
	for i := range junk {
		junk[i] = byte(i * 7)
	}
	require.NoError(t, os.WriteFile(path, junk, 0o644))

	assert.Error(t, Check(path))
}
