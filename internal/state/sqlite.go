package state

import (
	// Registers the "sqlite3" driver (cgo).
	_ "github.com/mattn/go-sqlite3"
	// Registers the "sqlite" driver (pure Go, default).
	_ "modernc.org/sqlite"
)
