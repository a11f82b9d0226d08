// Package store bootstraps the client's local SQLite database: opening the
// file and applying the embedded goose migrations that create the item,
// category, queue and metadata tables.
package store

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/ebalakin/cartsync/internal/client/migrations"
)

// RunMigrations applies the embedded client migrations. Safe to call on
// every startup; goose tracks applied versions.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local database at dsn and
// brings its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// The local store sees no concurrent access within a device, and a
	// single connection avoids SQLITE_BUSY between the REPL and the syncer.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
