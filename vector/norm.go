package vector

import (
	"math"

	"github.com/viant/vec/search"
	"gonum.org/v1/gonum/floats"
)

// SumOfSquares accumulates v[i]*v[i] in index order. The order is fixed so
// floating-point rounding is reproducible between runs.
func SumOfSquares(v []float64) float64 {
	var accum float64
	for i := 0; i < len(v); i++ {
		accum += v[i] * v[i]
	}
	return accum
}

// L2Norm returns the Euclidean norm of v. The norm of an empty vector is 0.
//
// There is no overflow guard: a sum of squares beyond math.MaxFloat64 yields
// +Inf.
func L2Norm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return math.Sqrt(SumOfSquares(v))
}

// ClosedFormNorm returns the norm of BuildSequence(n) using
// sum(i^2, i<n) = (n-1)n(2n-1)/6.
func ClosedFormNorm(n int) float64 {
	if n <= 1 {
		return 0
	}
	m := float64(n)
	return math.Sqrt((m - 1) * m * (2*m - 1) / 6)
}

// ReferenceNorm computes the norm with gonum's scaled L2 algorithm. Its
// rounding differs from L2Norm, so compare the two with a tolerance.
func ReferenceNorm(v []float64) float64 {
	return floats.Norm(v, 2)
}

// Magnitude32 returns the norm of a float32 vector.
func Magnitude32(v []float32) float32 {
	if len(v) == 0 {
		return 0
	}
	return search.Float32s(v).Magnitude()
}

// Float32s narrows v to float32, as stored in float32 BLOBs.
func Float32s(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
