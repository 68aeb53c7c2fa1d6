// Package state provides persistent storage for pinned items.
// It tracks the shared homepage pin list in SQLite or PostgreSQL.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/pins/pkg/core"
)

// Driver names accepted in Config.Driver.
const (
	DriverSQLite   = "sqlite"   // modernc.org/sqlite, pure Go
	DriverSQLite3  = "sqlite3"  // github.com/mattn/go-sqlite3, cgo
	DriverPostgres = "postgres" // github.com/jackc/pgx/v5/stdlib
)

// Config selects and locates the backing database.
type Config struct {
	// Driver is one of DriverSQLite, DriverSQLite3 or DriverPostgres.
	Driver string
	// Path is the SQLite database file. Use ":memory:" for an in-memory database.
	Path string
	// DSN is the PostgreSQL connection string.
	DSN string
}

// SQLStore implements core.PinStore on top of database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect *dialect
	logger  *slog.Logger
}

var _ core.PinStore = (*SQLStore)(nil)

// NewSQLStore creates a new store instance. If logger is nil, a discard logger is used.
func NewSQLStore(logger *slog.Logger) *SQLStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLStore{logger: logger.With("component", "state")}
}

// OpenStore opens the configured database and applies pending migrations.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (*SQLStore, error) {
	s := NewSQLStore(logger)
	if err := s.Open(ctx, cfg); err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Open opens a connection to the configured database.
func (s *SQLStore) Open(ctx context.Context, cfg Config) error {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return err
	}

	dsn := cfg.DSN
	if d.sqlite {
		if cfg.Path == "" {
			return fmt.Errorf("sqlite database path is required")
		}
		if err := ensureParentDir(cfg.Path); err != nil {
			return err
		}
		dsn = d.buildDSN(cfg.Path)
	} else if dsn == "" {
		return fmt.Errorf("%s dsn is required", cfg.Driver)
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	// Every connection to ":memory:" gets its own database.
	if d.sqlite && cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	s.db = db
	s.dialect = d
	s.logger.Debug("store opened", slog.String("driver", cfg.Driver), slog.String("path", cfg.Path))
	return nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// DB returns the underlying database connection.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

func ensureParentDir(path string) error {
	if path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return nil
}
