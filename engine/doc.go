// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening connections with foreign keys enforced and
// registering the SQL scalar functions (l2norm, vec_norm, complexity_linear,
// complexity_nlogn) that the catalog queries rely on.
package engine
