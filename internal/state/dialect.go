package state

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pressly/goose/v3"
)

// dialect holds the per-backend driver name and query set.
type dialect struct {
	driverName  string
	sqlite      bool
	gooseName   goose.Dialect
	migrations  string
	buildDSN    func(path string) string
	listPins    string
	insertPin   string
	findPin     string
	deletePin   string
	reorderPins string
}

const sqliteListPins = `
	SELECT id, pinner_actor_id, pin_location, item_type, origin_database,
	       origin_table, identifier, order_idx
	FROM global_pinned_items
	ORDER BY order_idx, id
`

const sqliteInsertPin = `
	INSERT INTO global_pinned_items
		(pinner_actor_id, pin_location, item_type, origin_database, origin_table, identifier, order_idx)
	VALUES (?, ?, ?, ?, ?, NULL, ?)
	ON CONFLICT DO NOTHING
	RETURNING id
`

const sqliteFindPin = `
	SELECT id FROM global_pinned_items
	WHERE item_type = ?
	  AND origin_database = ?
	  AND coalesce(origin_table, '') = coalesce(?, '')
	ORDER BY id
	LIMIT 1
`

const sqliteDeletePin = `DELETE FROM global_pinned_items WHERE id = ?`

// The whole reorder is one correlated UPDATE over the decoded JSON payload.
const sqliteReorderPins = `
	WITH new_order AS (
		SELECT json_extract(value, '$.id') AS id,
		       json_extract(value, '$.order_idx') AS order_idx
		FROM json_each(?)
	)
	UPDATE global_pinned_items
	SET order_idx = new_order.order_idx
	FROM new_order
	WHERE global_pinned_items.id = new_order.id
`

const postgresListPins = sqliteListPins

const postgresInsertPin = `
	INSERT INTO global_pinned_items
		(pinner_actor_id, pin_location, item_type, origin_database, origin_table, identifier, order_idx)
	VALUES ($1, $2, $3, $4, $5, NULL, $6)
	ON CONFLICT DO NOTHING
	RETURNING id
`

const postgresFindPin = `
	SELECT id FROM global_pinned_items
	WHERE item_type = $1
	  AND origin_database = $2
	  AND coalesce(origin_table, '') = coalesce($3::text, '')
	ORDER BY id
	LIMIT 1
`

const postgresDeletePin = `DELETE FROM global_pinned_items WHERE id = $1`

const postgresReorderPins = `
	UPDATE global_pinned_items AS g
	SET order_idx = n.order_idx
	FROM jsonb_to_recordset($1::jsonb) AS n(id bigint, order_idx bigint)
	WHERE g.id = n.id
`

// sqlitePragmas are applied on every new connection.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"foreign_keys(1)",
}

// uriPath escapes the characters SQLite gives meaning to in a file: URI path.
var uriPath = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

func modernDSN(path string) string {
	q := url.Values{}
	for _, p := range sqlitePragmas {
		q.Add("_pragma", p)
	}
	q.Set("_txlock", "immediate")
	return "file:" + uriPath.Replace(path) + "?" + q.Encode()
}

func mattnDSN(path string) string {
	q := url.Values{}
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", "5000")
	q.Set("_foreign_keys", "1")
	q.Set("_txlock", "immediate")
	return "file:" + uriPath.Replace(path) + "?" + q.Encode()
}

var (
	sqliteDialect = dialect{
		driverName:  "sqlite",
		sqlite:      true,
		gooseName:   goose.DialectSQLite3,
		migrations:  "migrations/sqlite",
		buildDSN:    modernDSN,
		listPins:    sqliteListPins,
		insertPin:   sqliteInsertPin,
		findPin:     sqliteFindPin,
		deletePin:   sqliteDeletePin,
		reorderPins: sqliteReorderPins,
	}

	sqlite3Dialect = func() dialect {
		d := sqliteDialect
		d.driverName = "sqlite3"
		d.buildDSN = mattnDSN
		return d
	}()

	postgresDialect = dialect{
		driverName:  "pgx",
		gooseName:   goose.DialectPostgres,
		migrations:  "migrations/postgres",
		listPins:    postgresListPins,
		insertPin:   postgresInsertPin,
		findPin:     postgresFindPin,
		deletePin:   postgresDeletePin,
		reorderPins: postgresReorderPins,
	}
)

func dialectFor(driver string) (*dialect, error) {
	switch driver {
	case DriverSQLite, "":
		d := sqliteDialect
		return &d, nil
	case DriverSQLite3:
		d := sqlite3Dialect
		return &d, nil
	case DriverPostgres, "pgx":
		d := postgresDialect
		return &d, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}
