// Package repotest provides SQLite-backed fixtures for repository and
// service tests.
package repotest

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/migrations"
)

// NewSQLiteDB opens a fresh SQLite database file in a temporary directory,
// applies the schema and closes it when the test ends.
func NewSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, dialect, err := dbx.Open(ctx, "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Up(ctx, db, dialect); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// InsertUser adds a user row directly and returns its id.
func InsertUser(t testing.TB, db *sql.DB, username string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		username, fmt.Sprintf("%s@example.com", username), "hash", dbx.Now(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert user %q: %v", username, err)
	}
	return id
}

// Count returns the number of rows in table.
func Count(t testing.TB, db *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
