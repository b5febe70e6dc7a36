package dbx

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect names the SQL flavour of the connected database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectFromDSN picks the dialect for a DSN. postgres:// and postgresql://
// URLs select PostgreSQL, anything else is treated as a SQLite path or URI.
func DialectFromDSN(dsn string) Dialect {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// GooseDialect returns the dialect name understood by goose.
func (d Dialect) GooseDialect() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite3"
}

// Rebind rewrites '?' placeholders into the dialect's positional form.
// Question marks inside single-quoted literals are left alone.
func Rebind(d Dialect, query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

type rebindDB struct {
	db      DBTX
	dialect Dialect
}

// WithDialect returns a DBTX that rebinds every query for d before passing it
// to db. For SQLite db is returned unchanged.
func WithDialect(db DBTX, d Dialect) DBTX {
	if d != DialectPostgres {
		return db
	}
	return &rebindDB{db: db, dialect: d}
}

func (r *rebindDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.ExecContext(ctx, Rebind(r.dialect, query), args...)
}

func (r *rebindDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, Rebind(r.dialect, query), args...)
}

func (r *rebindDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.db.QueryRowContext(ctx, Rebind(r.dialect, query), args...)
}

// Now returns the current UTC time at microsecond precision, the finest
// resolution both SQLite text timestamps and PostgreSQL TIMESTAMPTZ keep
// identically.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
