package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteStore implements Store on a SQLite database. Compare relies on the
// scalar functions registered by engine.Open, so the database should be
// opened through that package.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore creates a new SQLite-backed Store. It ensures the catalog
// schema exists in the provided database.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// AddProgram inserts p into the programs table.
func (s *SQLiteStore) AddProgram(ctx context.Context, p Program) error {
	if p.Name == "" {
		return fmt.Errorf("store: Program.Name must be set")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO programs(program_name, description, cmd_line_prefix) VALUES(?, ?, ?)`,
		p.Name, p.Description, p.CmdLinePrefix)
	switch {
	case isConstraint(err, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE):
		return fmt.Errorf("%w: %q", ErrProgramExists, p.Name)
	case err != nil:
		return fmt.Errorf("store: add program: %w", err)
	}
	return nil
}

// Program looks up a program by name.
func (s *SQLiteStore) Program(ctx context.Context, name string) (Program, error) {
	p := Program{Name: name}
	err := s.db.QueryRowContext(ctx,
		`SELECT description, cmd_line_prefix FROM programs WHERE program_name = ?`, name).
		Scan(&p.Description, &p.CmdLinePrefix)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Program{}, fmt.Errorf("%w: %q", ErrProgramNotFound, name)
	case err != nil:
		return Program{}, fmt.Errorf("store: get program: %w", err)
	}
	return p, nil
}

// Programs lists all programs ordered by name.
func (s *SQLiteStore) Programs(ctx context.Context) ([]Program, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT program_name, description, cmd_line_prefix FROM programs ORDER BY program_name`)
	if err != nil {
		return nil, fmt.Errorf("store: get programs: %w", err)
	}
	defer rows.Close()

	var out []Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.Name, &p.Description, &p.CmdLinePrefix); err != nil {
			return nil, fmt.Errorf("store: get programs: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: get programs: %w", err)
	}
	return out, nil
}

// DeleteProgram deletes a program; its timings are removed by the foreign
// key's ON DELETE CASCADE.
func (s *SQLiteStore) DeleteProgram(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM programs WHERE program_name = ?`, name)
	if err != nil {
		return fmt.Errorf("store: delete program: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete program: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrProgramNotFound, name)
	}
	return nil
}

// AddTiming inserts t, assigning a new ID and the current time.
func (s *SQLiteStore) AddTiming(ctx context.Context, t Timing) (Timing, error) {
	t.ID = uuid.NewString()
	t.CreatedAt = s.now().UTC().Truncate(time.Second)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO timings(id, program_name, problem_size, timing, created_at) VALUES(?, ?, ?, ?, ?)`,
		t.ID, t.ProgramName, t.ProblemSize, t.Seconds, t.CreatedAt.Unix())
	switch {
	case isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE):
		return Timing{}, fmt.Errorf("%w: %q size %d", ErrTimingExists, t.ProgramName, t.ProblemSize)
	case isConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY):
		return Timing{}, fmt.Errorf("%w: %q", ErrProgramNotFound, t.ProgramName)
	case err != nil:
		return Timing{}, fmt.Errorf("store: add timing: %w", err)
	}
	return t, nil
}

// Timings lists a program's timings ordered by problem size.
func (s *SQLiteStore) Timings(ctx context.Context, program string) ([]Timing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, problem_size, timing, created_at FROM timings
		 WHERE program_name = ? ORDER BY problem_size ASC`, program)
	if err != nil {
		return nil, fmt.Errorf("store: get timings: %w", err)
	}
	defer rows.Close()

	var out []Timing
	for rows.Next() {
		t := Timing{ProgramName: program}
		var created int64
		if err := rows.Scan(&t.ID, &t.ProblemSize, &t.Seconds, &created); err != nil {
			return nil, fmt.Errorf("store: get timings: %w", err)
		}
		t.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: get timings: %w", err)
	}
	return out, nil
}

// HasTiming reports whether program has a timing for size.
func (s *SQLiteStore) HasTiming(ctx context.Context, program string, size int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM timings WHERE program_name = ? AND problem_size = ?`, program, size).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("store: has timing: %w", err)
	}
	return n > 0, nil
}

// DeleteTimings deletes all of a program's timings.
func (s *SQLiteStore) DeleteTimings(ctx context.Context, program string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM timings WHERE program_name = ?`, program)
	if err != nil {
		return 0, fmt.Errorf("store: delete timings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("store: delete timings: %w", err)
	}
	return n, nil
}

// Compare evaluates complexity_linear and complexity_nlogn next to each of the
// program's timings.
func (s *SQLiteStore) Compare(ctx context.Context, program string) ([]Comparison, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT problem_size, timing, complexity_linear(problem_size), complexity_nlogn(problem_size)
		 FROM timings WHERE program_name = ? ORDER BY problem_size ASC`, program)
	if err != nil {
		return nil, fmt.Errorf("store: compare: %w", err)
	}
	defer rows.Close()

	var out []Comparison
	for rows.Next() {
		var c Comparison
		if err := rows.Scan(&c.ProblemSize, &c.Seconds, &c.Linear, &c.NLogN); err != nil {
			return nil, fmt.Errorf("store: compare: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: compare: %w", err)
	}
	return out, nil
}

// Events returns up to limit events, most recent first. A non-positive limit
// returns all events.
func (s *SQLiteStore) Events(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, tbl, op, item_key, created_at FROM events ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: get events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var created int64
		if err := rows.Scan(&e.Seq, &e.Table, &e.Op, &e.Key, &created); err != nil {
			return nil, fmt.Errorf("store: get events: %w", err)
		}
		e.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: get events: %w", err)
	}
	return out, nil
}

func isConstraint(err error, codes ...int) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	for _, code := range codes {
		if serr.Code() == code {
			return true
		}
	}
	return false
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
