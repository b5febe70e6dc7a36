package dbx

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFromDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want Dialect
	}{
		{"postgres://u:p@localhost:5432/tasks?sslmode=disable", DialectPostgres},
		{"postgresql://localhost/tasks", DialectPostgres},
		{"POSTGRES://localhost/tasks", DialectPostgres},
		{"file:tasktracker.db", DialectSQLite},
		{"tasktracker.db", DialectSQLite},
		{":memory:", DialectSQLite},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, DialectFromDSN(tt.dsn))
		})
	}
}

func TestDialectNames(t *testing.T) {
	assert.Equal(t, "sqlite", DialectSQLite.DriverName())
	assert.Equal(t, "pgx", DialectPostgres.DriverName())
	assert.Equal(t, "sqlite3", DialectSQLite.GooseDialect())
	assert.Equal(t, "pgx", DialectPostgres.GooseDialect())
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		in      string
		want    string
	}{
		{"sqlite untouched", DialectSQLite, "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = ? AND b = ?"},
		{"postgres numbered", DialectPostgres, "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{"quoted literal kept", DialectPostgres, "SELECT '?' FROM t WHERE a = ?", "SELECT '?' FROM t WHERE a = $1"},
		{"no placeholders", DialectPostgres, "SELECT 1", "SELECT 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rebind(tt.dialect, tt.in))
		})
	}
}

func TestWithDialect_RebindsForPostgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM t WHERE id = $1 AND owner = $2").
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT v FROM t WHERE id = $1").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("x"))
	mock.ExpectQuery("SELECT v FROM t WHERE id = $1").
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("y"))

	pg := WithDialect(db, DialectPostgres)
	ctx := context.Background()

	_, err = pg.ExecContext(ctx, "DELETE FROM t WHERE id = ? AND owner = ?", 1, 2)
	require.NoError(t, err)

	rows, err := pg.QueryContext(ctx, "SELECT v FROM t WHERE id = ?", 3)
	require.NoError(t, err)
	require.NoError(t, rows.Close())

	var v string
	require.NoError(t, pg.QueryRowContext(ctx, "SELECT v FROM t WHERE id = ?", 4).Scan(&v))
	assert.Equal(t, "y", v)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithDialect_SQLiteReturnsSameHandle(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Same(t, db, WithDialect(db, DialectSQLite))
}

func TestOpen_SQLiteEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "fk.db")

	db, dialect, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	assert.Equal(t, DialectSQLite, dialect)

	_, err = db.ExecContext(ctx, `CREATE TABLE parent (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `CREATE TABLE child (id INTEGER PRIMARY KEY, parent_id INTEGER NOT NULL REFERENCES parent(id) ON DELETE CASCADE)`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO child (parent_id) VALUES (42)`)
	require.Error(t, err, "orphan insert must violate the foreign key")

	_, err = db.ExecContext(ctx, `INSERT INTO parent (id) VALUES (1)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO child (parent_id) VALUES (1)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM parent WHERE id = 1`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM child`).Scan(&n))
	assert.Equal(t, 0, n, "delete must cascade")
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	ctx := context.Background()
	db, _, err := Open(ctx, "file:"+filepath.Join(t.TempDir(), "uniq.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `CREATE TABLE u (name TEXT UNIQUE NOT NULL)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO u (name) VALUES ('alice')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO u (name) VALUES ('alice')`)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	_, err = db.ExecContext(ctx, `INSERT INTO u (name) VALUES (NULL)`)
	require.Error(t, err)
	assert.False(t, IsUniqueViolation(err), "NOT NULL is not a unique violation")
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}
