package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/patflynngithub/pycnumanal/complexity"
	"github.com/patflynngithub/pycnumanal/vector"
	sqlite "modernc.org/sqlite"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterFunctions registers l2norm, vec_norm, complexity_linear and
// complexity_nlogn with the driver so they are available on new connections
// opened after this call. It is safe to call more than once.
// Note: existing open connections will not see new functions.
func RegisterFunctions() error {
	registerOnce.Do(func() {
		for name, fn := range map[string]func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error){
			"l2norm":            l2NormImpl,
			"vec_norm":          vecNormImpl,
			"complexity_linear": curveImpl(complexity.Linear),
			"complexity_nlogn":  curveImpl(complexity.NLogN),
		} {
			if err := sqlite.RegisterDeterministicScalarFunction(name, 1, fn); err != nil {
				registerErr = fmt.Errorf("engine: register %s: %w", name, err)
				return
			}
		}
	})
	return registerErr
}

func asBlob(name string, arg driver.Value) ([]byte, bool, error) {
	switch v := arg.(type) {
	case nil:
		return nil, false, nil
	case []byte:
		return v, true, nil
	default:
		return nil, false, fmt.Errorf("%s: unsupported argument type %T; want BLOB", name, arg)
	}
}

// l2NormImpl computes the norm of a float64 BLOB (vector.EncodeFloat64s).
func l2NormImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	b, ok, err := asBlob("l2norm", args[0])
	if !ok || err != nil {
		return nil, err
	}
	v, err := vector.DecodeFloat64s(b)
	if err != nil {
		return nil, err
	}
	return vector.L2Norm(v), nil
}

// vecNormImpl computes the norm of a float32 BLOB (vector.EncodeFloat32s).
func vecNormImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	b, ok, err := asBlob("vec_norm", args[0])
	if !ok || err != nil {
		return nil, err
	}
	v, err := vector.DecodeFloat32s(b)
	if err != nil {
		return nil, err
	}
	return float64(vector.Magnitude32(v)), nil
}

func curveImpl(eval func(int) float32) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case nil:
			return nil, nil
		case int64:
			if v < 0 {
				return nil, fmt.Errorf("complexity: negative problem size %d", v)
			}
			return float64(eval(int(v))), nil
		default:
			return nil, fmt.Errorf("complexity: unsupported argument type %T; want INTEGER", args[0])
		}
	}
}
