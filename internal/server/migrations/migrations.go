// Package migrations embeds the schema bootstrap for every supported dialect
// and applies it with goose. Each dialect lives in its own directory, named
// after dbx.Dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Up applies every pending migration for the dialect. The statements are
// idempotent, so running Up against an existing schema is harmless.
func Up(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(d.GooseDialect()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, string(d)); err != nil {
		return fmt.Errorf("migrate %s: %w", d, err)
	}
	return nil
}
