package timing

import (
	"errors"
	"fmt"
	"time"
)

// Clock names accepted by ClockByName.
const (
	ClockProcess   = "process"
	ClockMonotonic = "monotonic"
)

// ErrClockUnsupported reports a clock that is not available on this platform.
var ErrClockUnsupported = errors.New("timing: clock not supported on this platform")

// Clock is a non-decreasing time source. Now returns the elapsed time since an
// arbitrary fixed origin, so only differences between readings are meaningful.
type Clock interface {
	Name() string
	Now() time.Duration
	// Resolution is the granularity reported by the underlying source.
	Resolution() time.Duration
}

type monotonicClock struct {
	origin time.Time
}

// NewMonotonicClock returns a Clock backed by Go's monotonic wall clock.
func NewMonotonicClock() Clock {
	return &monotonicClock{origin: time.Now()}
}

func (c *monotonicClock) Name() string { return ClockMonotonic }

func (c *monotonicClock) Now() time.Duration { return time.Since(c.origin) }

func (c *monotonicClock) Resolution() time.Duration { return time.Nanosecond }

// ClockByName resolves "process" or "monotonic". An empty name selects the
// process clock.
func ClockByName(name string) (Clock, error) {
	switch name {
	case "", ClockProcess:
		return NewProcessClock()
	case ClockMonotonic:
		return NewMonotonicClock(), nil
	default:
		return nil, fmt.Errorf("timing: unknown clock %q (want %q or %q)", name, ClockProcess, ClockMonotonic)
	}
}
