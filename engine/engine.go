package engine

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

const foreignKeysPragma = "_pragma=foreign_keys(1)"

// Open opens a SQLite database using the modernc.org/sqlite driver. Every
// connection enforces foreign keys, and the scalar functions are registered
// before the first connection is made.
//
// For file-based databases, pass a path like "./timings.db". For in-memory
// databases, pass ":memory:"; the pool is then limited to one connection so
// all statements see the same database.
func Open(dsn string) (*sql.DB, error) {
	if err := RegisterFunctions(); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", withForeignKeys(dsn))
	if err != nil {
		return nil, fmt.Errorf("engine: open %q: %w", dsn, err)
	}
	if isMemory(dsn) {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + foreignKeysPragma
	}
	return dsn + "?" + foreignKeysPragma
}

func isMemory(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
