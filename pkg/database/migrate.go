package database

import (
	"database/sql"
	"fmt"

	"clubhouse/pkg/database/migrations"

	"github.com/pressly/goose/v3"
)

// EnsureSchema applies the embedded migrations. Goose tracks applied
// versions in its own table, so running this on every start is idempotent.
func EnsureSchema(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
