// Package timing samples how long a computation takes. A Clock is either the
// process CPU-time clock or Go's monotonic wall clock; Measure reads it
// immediately around a single call so that setup work stays out of the
// reading. Durations convert to POSIX clock ticks for tools that report ticks.
package timing
