// Package sqlcheck verifies that a decrypted database is a SQLite file the
// real engine accepts. It opens the finished output read-only and asks SQLite
// itself; the decryption core never interprets pages.
package sqlcheck

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Check opens path as a SQLite database, runs PRAGMA integrity_check, and
// confirms the schema table is readable. A nil return means SQLite accepted
// the file.
func Check(path string) error {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro&immutable=1", path))
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	var verdict string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&verdict); err != nil {
		return fmt.Errorf("integrity_check: %w", err)
	}
	if verdict != "ok" {
		return fmt.Errorf("integrity_check: %s", verdict)
	}

	var objects int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&objects); err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	return nil
}
