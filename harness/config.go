package harness

import (
	"errors"
	"fmt"
	"time"
)

// Config controls where the harness keeps its catalog and how it runs
// external programs.
type Config struct {
	DBPath            string        // SQLite catalog path (":memory:" for tests)
	WorkDir           string        // Directory external programs are resolved in
	Repeat            int           // Runs per problem size; the mean is stored
	Timeout           time.Duration // Per-run deadline (0 = none)
	RequireExecutable bool          // Reject programs whose executable is missing
}

// DefaultConfig returns the settings the command-line tool starts from.
func DefaultConfig() Config {
	return Config{
		DBPath:  "timings.db",
		WorkDir: ".",
		Repeat:  1,
		Timeout: time.Minute,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.DBPath == "":
		return errors.New("harness: config: DBPath must be set")
	case c.Repeat < 1:
		return fmt.Errorf("harness: config: Repeat must be >= 1, got %d", c.Repeat)
	case c.Timeout < 0:
		return fmt.Errorf("harness: config: Timeout must be >= 0, got %v", c.Timeout)
	}
	return nil
}
