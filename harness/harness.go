// Package harness generates, stores and compares execution timings of
// external programs across problem sizes. It ties together the catalog
// (store), the program runner and the in-process norm computation used to
// verify the C-style exercises.
package harness

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/patflynngithub/pycnumanal/engine"
	"github.com/patflynngithub/pycnumanal/runner"
	"github.com/patflynngithub/pycnumanal/sequence"
	"github.com/patflynngithub/pycnumanal/store"
)

// sequenceTable is the virtual table Verify aggregates over.
const sequenceTable = "seq"

var (
	ErrInvalidProblemSize = errors.New("harness: problem size must be > 0")
	ErrInvalidTiming      = errors.New("harness: timing must be a number >= 0")
	ErrMissingExecutable  = errors.New("harness: executable not found")
	ErrEmptyName          = errors.New("harness: program name must not be empty")
)

// Harness is the controller behind the numanal command.
type Harness struct {
	cfg    Config
	db     *sql.DB
	store  store.Store
	runner *runner.Runner
	logger *slog.Logger
}

// Open opens (creating if needed) the catalog at cfg.DBPath and returns a
// ready Harness. Close releases the database.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	db, err := engine.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	// Modules are attached when a connection opens, so register before the
	// first statement.
	if err := sequence.Register(db); err != nil {
		db.Close()
		return nil, err
	}
	st, err := store.NewSQLiteStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := sequence.EnsureTable(ctx, db, sequenceTable); err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("catalog opened", "db", cfg.DBPath)
	return New(cfg, db, st, runner.New(cfg.WorkDir, cfg.Timeout), logger), nil
}

// New assembles a Harness from its parts. db is used only by Verify and may
// be nil when Verify is not needed.
func New(cfg Config, db *sql.DB, st store.Store, r *runner.Runner, logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.Default()
	}
	return &Harness{cfg: cfg, db: db, store: st, runner: r, logger: logger}
}

// Close closes the underlying database, if any.
func (h *Harness) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}

// AddProgram registers a program. With Config.RequireExecutable set, the
// executable named by the prefix must exist in the working directory.
func (h *Harness) AddProgram(ctx context.Context, p store.Program) error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if path, ok := h.runner.Executable(p.CmdLinePrefix); !ok {
		if h.cfg.RequireExecutable {
			return fmt.Errorf("%w: %q", ErrMissingExecutable, path)
		}
		h.logger.Warn("executable not found; adding program anyway", "program", p.Name, "path", path)
	}
	if err := h.store.AddProgram(ctx, p); err != nil {
		return err
	}
	h.logger.Info("program added", "program", p.Name, "prefix", p.CmdLinePrefix)
	return nil
}

// DeleteProgram removes a program together with its timings.
func (h *Harness) DeleteProgram(ctx context.Context, name string) error {
	if err := h.store.DeleteProgram(ctx, name); err != nil {
		return err
	}
	h.logger.Info("program deleted", "program", name)
	return nil
}

// Programs lists the registered programs.
func (h *Harness) Programs(ctx context.Context) ([]store.Program, error) {
	return h.store.Programs(ctx)
}

// Program returns a single program.
func (h *Harness) Program(ctx context.Context, name string) (store.Program, error) {
	return h.store.Program(ctx, name)
}

// Timings lists a program's timings in ascending problem size.
func (h *Harness) Timings(ctx context.Context, name string) ([]store.Timing, error) {
	if _, err := h.store.Program(ctx, name); err != nil {
		return nil, err
	}
	return h.store.Timings(ctx, name)
}

// AddTiming records a manually entered timing.
func (h *Harness) AddTiming(ctx context.Context, name string, size int64, seconds float64) (store.Timing, error) {
	if size <= 0 {
		return store.Timing{}, fmt.Errorf("%w: %d", ErrInvalidProblemSize, size)
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return store.Timing{}, fmt.Errorf("%w: %v", ErrInvalidTiming, seconds)
	}
	t, err := h.store.AddTiming(ctx, store.Timing{ProgramName: name, ProblemSize: size, Seconds: seconds})
	if err != nil {
		return store.Timing{}, err
	}
	h.logger.Info("timing added", "program", name, "size", size, "seconds", seconds)
	return t, nil
}

// DeleteTimings removes all of a program's timings and returns the count.
func (h *Harness) DeleteTimings(ctx context.Context, name string) (int64, error) {
	if _, err := h.store.Program(ctx, name); err != nil {
		return 0, err
	}
	n, err := h.store.DeleteTimings(ctx, name)
	if err != nil {
		return 0, err
	}
	h.logger.Info("timings deleted", "program", name, "count", n)
	return n, nil
}

// Compare returns a program's timings next to the linear and n log n curves.
func (h *Harness) Compare(ctx context.Context, name string) ([]store.Comparison, error) {
	if _, err := h.store.Program(ctx, name); err != nil {
		return nil, err
	}
	return h.store.Compare(ctx, name)
}

// History returns the most recent catalog changes.
func (h *Harness) History(ctx context.Context, limit int) ([]store.Event, error) {
	return h.store.Events(ctx, limit)
}
