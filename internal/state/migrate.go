package state

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Migrate runs all pending database migrations. Running it again is a no-op.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	results, err := migrateDB(ctx, s.db, s.dialect)
	if err != nil {
		return err
	}
	for _, r := range results {
		s.logger.Info("applied migration",
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration))
	}
	return nil
}

// MigrateWithDB runs migrations using a raw database connection.
// This is useful for testing or when you have a db connection from elsewhere.
func MigrateWithDB(ctx context.Context, db *sql.DB, driver string) error {
	d, err := dialectFor(driver)
	if err != nil {
		return err
	}
	_, err = migrateDB(ctx, db, d)
	return err
}

// MigrationVersion returns the current migration version.
func (s *SQLStore) MigrationVersion(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	p, err := newProvider(s.db, s.dialect)
	if err != nil {
		return 0, err
	}
	return p.GetDBVersion(ctx)
}

func migrateDB(ctx context.Context, db *sql.DB, d *dialect) ([]*goose.MigrationResult, error) {
	p, err := newProvider(db, d)
	if err != nil {
		return nil, err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return results, nil
}

// newProvider uses goose's Provider API so nothing touches goose package globals.
func newProvider(db *sql.DB, d *dialect) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrations, d.migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}
	p, err := goose.NewProvider(d.gooseName, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return p, nil
}
