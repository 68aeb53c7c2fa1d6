// Package metadata looks up descriptive information for databases and tables.
package metadata

import "context"

// Entry is the descriptive metadata of a resource.
type Entry struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
	License     string `json:"license,omitempty"`
}

// IsZero reports whether the entry carries no information.
func (e Entry) IsZero() bool {
	return e == Entry{}
}

// Lookup resolves metadata for a database, or a table inside it when table is non-nil.
// A resource without metadata yields a zero Entry and no error.
type Lookup interface {
	Lookup(ctx context.Context, database string, table *string) (Entry, error)
}

// Table is configured metadata for a table, view or canned query.
type Table struct {
	Title       string `koanf:"title" yaml:"title,omitempty"`
	Description string `koanf:"description" yaml:"description,omitempty"`
	Source      string `koanf:"source" yaml:"source,omitempty"`
	SourceURL   string `koanf:"source_url" yaml:"source_url,omitempty"`
	License     string `koanf:"license" yaml:"license,omitempty"`
}

// Database is configured metadata for a database and its tables.
type Database struct {
	Title       string           `koanf:"title" yaml:"title,omitempty"`
	Description string           `koanf:"description" yaml:"description,omitempty"`
	Source      string           `koanf:"source" yaml:"source,omitempty"`
	SourceURL   string           `koanf:"source_url" yaml:"source_url,omitempty"`
	License     string           `koanf:"license" yaml:"license,omitempty"`
	Tables      map[string]Table `koanf:"tables" yaml:"tables,omitempty"`
}

// Static serves metadata from configuration.
type Static struct {
	databases map[string]Database
}

var _ Lookup = (*Static)(nil)

// NewStatic creates a lookup over the configured databases.
func NewStatic(databases map[string]Database) *Static {
	if databases == nil {
		databases = map[string]Database{}
	}
	return &Static{databases: databases}
}

// Lookup implements Lookup. Tables inherit source and license from their database.
func (s *Static) Lookup(ctx context.Context, database string, table *string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	db, ok := s.databases[database]
	if !ok {
		return Entry{}, nil
	}
	if table == nil {
		return Entry{
			Title:       db.Title,
			Description: db.Description,
			Source:      db.Source,
			SourceURL:   db.SourceURL,
			License:     db.License,
		}, nil
	}

	t, ok := db.Tables[*table]
	if !ok {
		return Entry{}, nil
	}
	e := Entry{
		Title:       t.Title,
		Description: t.Description,
		Source:      t.Source,
		SourceURL:   t.SourceURL,
		License:     t.License,
	}
	if e.Source == "" {
		e.Source, e.SourceURL = db.Source, db.SourceURL
	}
	if e.License == "" {
		e.License = db.License
	}
	return e, nil
}
