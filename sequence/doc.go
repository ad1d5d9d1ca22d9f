// Package sequence implements a SQLite virtual table that yields the vector
// 0, 1, ..., n-1 one element per row, so sums of squares and norms can be
// computed with ordinary SQL aggregates.
//
// Usage:
//   - sequence.Register(db) before creating tables
//   - CREATE VIRTUAL TABLE seq USING sequence
//   - SELECT sum(value*value) FROM seq WHERE n = 5
//
// The hidden column n is required; rows are produced by vector.BuildSequence.
package sequence
