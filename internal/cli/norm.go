package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/patflynngithub/pycnumanal/timing"
	"github.com/patflynngithub/pycnumanal/vector"
)

// Norm runs l2vecnorm: it builds the sequence 0..N-1 and prints its L2 norm
// as "%f\n". With -timing it prints instead the duration of the reduction in
// clock ticks (timing.TicksPerSecond), with no trailing newline. Nothing is
// written to stdout on failure.
func Norm(args []string, stdout, stderr io.Writer) int {
	const prog = "l2vecnorm"
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [-timing] [-clock process|monotonic] [-v] N\n", prog)
		fs.PrintDefaults()
	}
	timed := fs.Bool("timing", false, "print the reduction time in ticks instead of the norm")
	clockName := fs.String("clock", "", "clock used with -timing: process (default) or monotonic")
	verbose := fs.Bool("v", false, "log details to stderr")
	flagArgs, lengths := splitNegativeInts(args)
	if err := fs.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := newLogger(stderr, level)

	n, err := vector.ParseLength(append(fs.Args(), lengths...))
	if err != nil {
		fs.Usage()
		return report(stderr, prog, err)
	}
	v, err := vector.BuildSequence(n)
	if err != nil {
		return report(stderr, prog, err)
	}

	if !*timed {
		norm := vector.L2Norm(v)
		logger.Debug("norm computed", "n", n, "norm", norm)
		fmt.Fprintf(stdout, "%f\n", norm)
		return ExitOK
	}

	clock, err := chooseClock(*clockName, logger)
	if err != nil {
		return report(stderr, prog, err)
	}
	norm, d := timing.Measure(clock, func() float64 { return vector.L2Norm(v) })
	logger.Debug("norm timed", "n", n, "norm", norm, "clock", clock.Name(),
		"resolution", clock.Resolution(), "duration", d)
	fmt.Fprint(stdout, timing.Ticks(d))
	return ExitOK
}

// splitNegativeInts separates arguments such as "-3" from args so the flag
// parser does not mistake a negative length for an undefined flag. No flag of
// l2vecnorm takes a numeric value.
func splitNegativeInts(args []string) (rest, ints []string) {
	for _, a := range args {
		if isNegativeInt(a) {
			ints = append(ints, a)
			continue
		}
		rest = append(rest, a)
	}
	return rest, ints
}

func isNegativeInt(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// chooseClock resolves name. Without an explicit name the process CPU clock
// is preferred, falling back to the monotonic clock where it is unsupported.
func chooseClock(name string, logger *slog.Logger) (timing.Clock, error) {
	if name != "" {
		c, err := timing.ClockByName(name)
		if err != nil && !errors.Is(err, timing.ErrClockUnsupported) {
			return nil, usage(err)
		}
		return c, err
	}
	c, err := timing.NewProcessClock()
	if errors.Is(err, timing.ErrClockUnsupported) {
		logger.Warn("process clock unsupported; using monotonic clock")
		return timing.NewMonotonicClock(), nil
	}
	return c, err
}
