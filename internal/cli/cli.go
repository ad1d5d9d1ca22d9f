// Package cli implements the command-line front ends: the single-argument
// exercise tools (l2vecnorm, lineartiming, nlogntiming) and the numanal
// timing harness.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"

	"github.com/patflynngithub/pycnumanal/harness"
	"github.com/patflynngithub/pycnumanal/vector"
)

// Process exit statuses.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// usageError marks errors caused by bad command-line input.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usage(err error) error {
	if err == nil {
		return nil
	}
	return usageError{err: err}
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	var ue usageError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.As(err, &ue),
		errors.Is(err, vector.ErrInvalidArgument),
		errors.Is(err, vector.ErrInvalidLength),
		errors.Is(err, harness.ErrInvalidProblemSize),
		errors.Is(err, harness.ErrInvalidTiming):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// NewLogger returns a tint logger writing to w at the named level
// ("debug", "info", "warn", "error").
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
			return nil, usage(fmt.Errorf("invalid log level %q", level))
		}
	}
	return newLogger(w, lvl), nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}))
}

func report(stderr io.Writer, prog string, err error) int {
	code := ExitCode(err)
	if code != ExitOK {
		fmt.Fprintf(stderr, "%s: %v\n", prog, err)
	}
	return code
}
