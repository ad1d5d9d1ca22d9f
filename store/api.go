package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrProgramExists   = errors.New("store: program already exists")
	ErrProgramNotFound = errors.New("store: program not found")
	ErrTimingExists    = errors.New("store: problem size already timed for program")
)

// Program is an external executable whose timings are tracked.
type Program struct {
	// Name identifies the program in the catalog.
	Name string

	Description string

	// CmdLinePrefix is the executable (relative to the harness working
	// directory) plus any fixed arguments. The problem size is appended as the
	// final argument when the program is run.
	CmdLinePrefix string
}

// Timing is one measured (or manually entered) timing of a program at a
// problem size.
type Timing struct {
	// ID is assigned by the store on insert.
	ID          string
	ProgramName string
	ProblemSize int64
	Seconds     float64
	CreatedAt   time.Time
}

// Comparison pairs a stored timing with the closed-form complexity curves
// evaluated at the same problem size.
type Comparison struct {
	ProblemSize int64
	Seconds     float64
	Linear      float64
	NLogN       float64
}

// Event is an entry of the append-only change log maintained by triggers.
type Event struct {
	Seq       int64
	Table     string
	Op        string
	Key       string
	CreatedAt time.Time
}

// Store defines the catalog API used by the harness.
type Store interface {
	// AddProgram inserts a new program. It returns ErrProgramExists if the
	// name is taken.
	AddProgram(ctx context.Context, p Program) error

	// Program returns the named program or ErrProgramNotFound.
	Program(ctx context.Context, name string) (Program, error)

	// Programs lists all programs ordered by name.
	Programs(ctx context.Context) ([]Program, error)

	// DeleteProgram removes a program and, by cascade, its timings.
	DeleteProgram(ctx context.Context, name string) error

	// AddTiming inserts a timing and returns it with ID and CreatedAt set.
	AddTiming(ctx context.Context, t Timing) (Timing, error)

	// Timings lists a program's timings in ascending problem size.
	Timings(ctx context.Context, program string) ([]Timing, error)

	// HasTiming reports whether a program already has a timing for size.
	HasTiming(ctx context.Context, program string, size int64) (bool, error)

	// DeleteTimings removes all of a program's timings and returns how many
	// were removed.
	DeleteTimings(ctx context.Context, program string) (int64, error)

	// Compare returns a program's timings next to the complexity curves.
	Compare(ctx context.Context, program string) ([]Comparison, error)

	// Events returns up to limit change-log entries, most recent first.
	Events(ctx context.Context, limit int) ([]Event, error)
}
