// Package vector implements the L2 (Euclidean) norm exercise used across this
// module. It includes:
//   - Length parsing from command-line arguments and the 0..n-1 test sequence
//   - Sum-of-squares reduction and the norm built on it
//   - Closed-form and gonum reference norms used to verify results
//   - BLOB encoding of float64/float32 vectors for SQLite
package vector
