package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Supported dialect names, matching the storage driver names in config.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Migrate applies all pending migrations to db. The same SQL files serve
// both dialects.
//
// A goose Provider is used instead of the package-level goose state so that
// several databases (e.g. isolated test instances) can be migrated
// concurrently.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseDialect, err := toGooseDialect(dialect)
	if err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	provider, err := goose.NewProvider(gooseDialect, db, embedMigrations)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func toGooseDialect(dialect string) (goose.Dialect, error) {
	switch dialect {
	case DialectPostgres:
		return goose.DialectPostgres, nil
	case DialectSQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", dialect)
	}
}
