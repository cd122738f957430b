package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/expenseshare/internal/client/migrations"
	"github.com/dmitrijs2005/expenseshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/expenseshare/internal/filex"
)

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenSQLite opens (creating if needed) the local database at dsn and brings
// its schema up to date.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewRepository returns the metadata repository backing a Store. A non-empty
// secret seals every value at rest.
func NewRepository(ctx context.Context, db *sql.DB, secret string) (metadata.Repository, error) {
	repo := metadata.NewSQLiteRepository(db)
	if secret == "" {
		return repo, nil
	}
	return metadata.NewEncryptedRepository(ctx, repo, []byte(secret))
}
