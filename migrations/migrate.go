// Package migrations holds the embedded goose migrations of the resource
// store. The same SQL runs on sqlite and postgresql; only the goose dialect
// differs.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Goose dialects used by the store backends.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "pgx"
)

var errNilDB = errors.New("db is nil")

// Migrate applies all pending migrations using the given goose dialect.
func Migrate(db *sql.DB, dialect string) error {
	if err := prepare(db, dialect); err != nil {
		return err
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// Reset rolls every applied migration back, dropping the schema, and then
// migrates up again.
func Reset(db *sql.DB, dialect string) error {
	if err := prepare(db, dialect); err != nil {
		return err
	}

	if err := goose.Reset(db, "."); err != nil {
		return fmt.Errorf("migration reset error: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func prepare(db *sql.DB, dialect string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}
	return nil
}
