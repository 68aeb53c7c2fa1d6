package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/pins/internal/state"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Database.Driver) {
	case "", state.DriverSQLite, state.DriverSQLite3:
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path is required for sqlite"))
		}
	case state.DriverPostgres, "pgx":
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("database.dsn is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database.driver %q (want sqlite, sqlite3 or postgres)", c.Database.Driver))
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if bp := c.Server.BasePath; bp != "" && !strings.HasPrefix(bp, "/") {
		errs = append(errs, fmt.Errorf("server.base_path %q must start with /", bp))
	}

	switch c.OutputFormat {
	case "", "auto", "text", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q (want auto, text, json or yaml)", c.OutputFormat))
	}

	return errors.Join(errs...)
}
