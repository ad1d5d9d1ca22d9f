package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const (
	// EventsTable receives one row per insert/delete on the catalog tables.
	EventsTable = "events"
)

var catalogSchema = []string{`
CREATE TABLE IF NOT EXISTS programs (
    program_name    TEXT PRIMARY KEY,
    description     TEXT NOT NULL DEFAULT '',
    cmd_line_prefix TEXT NOT NULL DEFAULT ''
);`, `
CREATE TABLE IF NOT EXISTS timings (
    id           TEXT PRIMARY KEY,
    program_name TEXT NOT NULL REFERENCES programs(program_name) ON DELETE CASCADE,
    problem_size INTEGER NOT NULL CHECK (problem_size > 0),
    timing       REAL NOT NULL CHECK (timing >= 0),
    created_at   INTEGER NOT NULL,
    UNIQUE(program_name, problem_size)
);`, `
CREATE TABLE IF NOT EXISTS events (
    seq        INTEGER PRIMARY KEY AUTOINCREMENT,
    tbl        TEXT NOT NULL,
    op         TEXT NOT NULL,
    item_key   TEXT NOT NULL,
    created_at INTEGER NOT NULL DEFAULT (CAST(strftime('%s', 'now') AS INTEGER))
);`,
}

// EnsureSchema creates the catalog tables and their event triggers in the
// provided database if they do not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := append([]string{}, catalogSchema...)
	stmts = append(stmts, EventTriggers("programs", "program_name")...)
	stmts = append(stmts, EventTriggers("timings", "program_name", "problem_size")...)
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: ensure schema: %w", err)
		}
	}
	return nil
}

// EventTriggers returns AFTER INSERT/DELETE trigger DDL that logs changes to
// table into the events table. The logged key joins keyColumns of the changed
// row with ':'.
//
// Table and column names are interpolated into SQL; callers must pass trusted
// values.
func EventTriggers(table string, keyColumns ...string) []string {
	key := func(alias string) string {
		parts := make([]string, len(keyColumns))
		for i, col := range keyColumns {
			parts[i] = alias + "." + col
		}
		return strings.Join(parts, " || ':' || ")
	}
	trigger := func(suffix, event, op, alias string) string {
		return fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS %[1]s_%[2]s AFTER %[3]s ON %[1]s
BEGIN
    INSERT INTO %[4]s(tbl, op, item_key) VALUES ('%[1]s', '%[5]s', %[6]s);
END;`, table, suffix, event, EventsTable, op, key(alias))
	}
	return []string{
		trigger("ai", "INSERT", "insert", "NEW"),
		trigger("ad", "DELETE", "delete", "OLD"),
	}
}
