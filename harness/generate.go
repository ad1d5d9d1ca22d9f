package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/patflynngithub/pycnumanal/store"
)

// Outcome reports what happened for one requested problem size.
type Outcome struct {
	Size    int64
	Seconds float64
	StdDev  float64 // across Config.Repeat runs
	Skipped bool
	Reason  string
}

// GenerateTimings runs the program once per size (Config.Repeat times, keeping
// the mean) and stores each result. Invalid or already-timed sizes are
// skipped and reported rather than aborting the batch. A failing run stops
// the batch; outcomes gathered so far are returned with the error.
func (h *Harness) GenerateTimings(ctx context.Context, name string, sizes []int64) ([]Outcome, error) {
	p, err := h.store.Program(ctx, name)
	if err != nil {
		return nil, err
	}
	if path, ok := h.runner.Executable(p.CmdLinePrefix); !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingExecutable, path)
	}

	out := make([]Outcome, 0, len(sizes))
	for _, size := range sizes {
		if size <= 0 {
			out = append(out, Outcome{Size: size, Skipped: true, Reason: "invalid problem size"})
			continue
		}
		exists, err := h.store.HasTiming(ctx, name, size)
		if err != nil {
			return out, err
		}
		if exists {
			h.logger.Info("problem size already timed; skipping", "program", name, "size", size)
			out = append(out, Outcome{Size: size, Skipped: true, Reason: "already in database"})
			continue
		}

		summary, err := h.runner.Sample(ctx, p.CmdLinePrefix, size, h.cfg.Repeat)
		if err != nil {
			return out, fmt.Errorf("harness: generate %q size %d: %w", name, size, err)
		}
		if _, err := h.store.AddTiming(ctx, store.Timing{ProgramName: name, ProblemSize: size, Seconds: summary.Mean}); err != nil {
			if errors.Is(err, store.ErrTimingExists) {
				out = append(out, Outcome{Size: size, Skipped: true, Reason: "already in database"})
				continue
			}
			return out, err
		}
		h.logger.Info("timing generated", "program", name, "size", size,
			"seconds", summary.Mean, "runs", summary.Count, "stddev", summary.StdDev)
		out = append(out, Outcome{Size: size, Seconds: summary.Mean, StdDev: summary.StdDev})
	}
	return out, nil
}
