package migrations

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EmbedsEveryDialect(t *testing.T) {
	for _, d := range []dbx.Dialect{dbx.DialectSQLite, dbx.DialectPostgres} {
		files, err := fs.Glob(Migrations, string(d)+"/*.sql")
		require.NoError(t, err)
		assert.NotEmpty(t, files, "no migrations for %s", d)
	}
}

func TestUp_SQLiteCreatesSchemaIdempotently(t *testing.T) {
	ctx := context.Background()
	db, _, err := dbx.Open(ctx, "file:"+filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Up(ctx, db, dbx.DialectSQLite))
	require.NoError(t, Up(ctx, db, dbx.DialectSQLite), "second run must be a no-op")

	for _, table := range []string{"users", "tasks", "sessions"} {
		var name string
		err := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestUp_UsesDialectDirectory(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Up(context.Background(), nil, dbx.DialectPostgres))
	assert.Equal(t, "postgres", gotDir)
}

func TestUp_Error(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	err := Up(context.Background(), nil, dbx.DialectSQLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
