package harness

import (
	"context"
	"fmt"

	"github.com/patflynngithub/pycnumanal/engine"
	"github.com/patflynngithub/pycnumanal/sequence"
	"github.com/patflynngithub/pycnumanal/vector"
)

// Verification compares the norm of the 0..n-1 sequence computed several ways.
type Verification struct {
	N          int
	Norm       float64 // vector.L2Norm
	ClosedForm float64 // sqrt((n-1)n(2n-1)/6)
	Reference  float64 // gonum floats.Norm
	SQL        float64 // l2norm() inside SQLite, float64 BLOB
	SQL32      float64 // vec_norm() inside SQLite, float32 BLOB
	Table      float64 // sqrt(sum(value*value)) over the sequence virtual table
}

// Verify builds the sequence of length n and evaluates its norm in Go, in
// closed form, with gonum, through the SQLite scalar functions and by
// aggregating the sequence virtual table.
func (h *Harness) Verify(ctx context.Context, n int) (Verification, error) {
	v, err := vector.BuildSequence(n)
	if err != nil {
		return Verification{}, err
	}
	res := Verification{
		N:          n,
		Norm:       vector.L2Norm(v),
		ClosedForm: vector.ClosedFormNorm(n),
		Reference:  vector.ReferenceNorm(v),
	}
	if h.db == nil {
		return res, fmt.Errorf("harness: verify: no database")
	}
	res.SQL, res.SQL32, err = engine.EvalNorms(ctx, h.db, v)
	if err != nil {
		return res, err
	}
	res.Table, err = sequence.Norm(ctx, h.db, sequenceTable, n)
	if err != nil {
		return res, err
	}
	return res, nil
}
