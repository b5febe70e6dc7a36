// Package dbx holds the database plumbing shared by the server repositories:
// the DBTX handle they run queries on, dialect-aware placeholder rebinding,
// driver selection from the DSN and the transaction helper used when several
// repositories must write together.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is what a repository needs to run its queries. *sql.DB, *sql.Tx and
// the rebinding wrapper returned by WithDialect all satisfy it, so one
// repository type serves plain calls and transactional ones.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back when it returns an error or panics; fn's error
// is returned unchanged so callers can still match sentinels such as
// common.ErrorAlreadyExists. Registration uses it to store a user and the
// user's first session atomically:
//
//	err := dbx.WithTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) error {
//	    user, err := rm.Users(tx).Create(ctx, u)
//	    if err != nil {
//	        return err
//	    }
//	    return rm.Sessions(tx).Create(ctx, &models.Session{UserID: user.ID, ...})
//	})
//
// On SQLite the pool holds a single connection, so fn must only use tx.
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db error: begin: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("db error: commit: %w", cerr)
		}
	}()

	return fn(ctx, tx)
}
