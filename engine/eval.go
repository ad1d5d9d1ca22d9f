package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/patflynngithub/pycnumanal/vector"
)

// EvalNorms evaluates l2norm and vec_norm inside SQLite for v, encoded as
// float64 and float32 BLOBs respectively. An empty vector encodes to NULL and
// reports a norm of 0.
func EvalNorms(ctx context.Context, db *sql.DB, v []float64) (l2, vec float64, err error) {
	var a, b sql.NullFloat64
	err = db.QueryRowContext(ctx, `SELECT l2norm(?), vec_norm(?)`,
		vector.EncodeFloat64s(v), vector.EncodeFloat32s(vector.Float32s(v))).Scan(&a, &b)
	if err != nil {
		return 0, 0, fmt.Errorf("engine: eval norms: %w", err)
	}
	return a.Float64, b.Float64, nil
}
