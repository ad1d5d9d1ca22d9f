//go:build linux

package timing

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

type processClock struct {
	resolution time.Duration
}

// NewProcessClock returns a Clock reading CPU time consumed by all threads of
// this process (CLOCK_PROCESS_CPUTIME_ID).
func NewProcessClock() (Clock, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_PROCESS_CPUTIME_ID, &ts); err != nil {
		return nil, fmt.Errorf("timing: process clock: %w", err)
	}
	var res unix.Timespec
	if err := unix.ClockGetres(unix.CLOCK_PROCESS_CPUTIME_ID, &res); err != nil {
		return nil, fmt.Errorf("timing: process clock resolution: %w", err)
	}
	return &processClock{resolution: time.Duration(res.Nano())}, nil
}

func (c *processClock) Name() string { return ClockProcess }

// Now cannot fail once NewProcessClock has probed the clock id.
func (c *processClock) Now() time.Duration {
	var ts unix.Timespec
	_ = unix.ClockGettime(unix.CLOCK_PROCESS_CPUTIME_ID, &ts)
	return time.Duration(ts.Nano())
}

func (c *processClock) Resolution() time.Duration { return c.resolution }
