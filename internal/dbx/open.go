package dbx

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var registerSQLiteHook sync.Once

// Open opens the database named by dsn, selecting the driver from the DSN,
// and verifies the connection.
//
// SQLite databases are limited to a single open connection so that all
// requests are serialized through it, and every connection is opened with
// foreign keys enforced.
func Open(ctx context.Context, dsn string) (*sql.DB, Dialect, error) {
	dialect := DialectFromDSN(dsn)

	if dialect == DialectSQLite {
		registerSQLiteHook.Do(func() {
			sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, _ string) error {
				_, err := conn.ExecContext(context.Background(), "PRAGMA foreign_keys = ON", []driver.NamedValue{})
				return err
			})
		})
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, dialect, fmt.Errorf("open %s: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, dialect, fmt.Errorf("ping %s: %w", dialect, err)
	}

	return db, dialect, nil
}

// IsUniqueViolation reports whether err was caused by a UNIQUE or PRIMARY KEY
// constraint on either supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe.Code == "23505"
	}

	return false
}
