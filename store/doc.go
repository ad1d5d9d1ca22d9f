// Package store defines the program/timing catalog API and its SQLite-backed
// implementation. It includes:
//   - Program, Timing, Comparison and Event models and the Store interface
//   - SQLiteStore: durable storage with cascade deletion of timings
//   - Schema helpers, including triggers that append to an events log
//
// Errors that are not one of the package sentinels are wrapped with the
// failing operation so callers do not depend on the SQLite driver's errors.
package store
