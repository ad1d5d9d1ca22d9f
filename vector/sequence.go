package vector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidArgument reports a missing, extra, or non-integer length argument.
	ErrInvalidArgument = errors.New("vector: invalid argument")

	// ErrInvalidLength reports a negative vector length.
	ErrInvalidLength = errors.New("vector: invalid length")
)

// ParseLength parses the single positional length argument. Exactly one
// argument is accepted and it must be a base-10 integer that fits in an int.
func ParseLength(args []string) (int, error) {
	switch len(args) {
	case 0:
		return 0, fmt.Errorf("%w: missing vector length", ErrInvalidArgument)
	case 1:
	default:
		return 0, fmt.Errorf("%w: expected 1 argument, got %d", ErrInvalidArgument, len(args))
	}
	n, err := strconv.ParseInt(args[0], 10, strconv.IntSize)
	if err != nil {
		// Out-of-range negatives are still negative lengths.
		if errors.Is(err, strconv.ErrRange) && strings.HasPrefix(args[0], "-") {
			return 0, fmt.Errorf("%w: %s", ErrInvalidLength, args[0])
		}
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidArgument, args[0])
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	return int(n), nil
}

// BuildSequence returns a vector of length n whose element i equals i. A zero
// length yields an empty, non-nil vector.
func BuildSequence(n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = float64(i)
	}
	return v, nil
}
