// Package complexity evaluates closed-form timing-complexity curves used as
// baselines next to measured timings.
package complexity

import (
	"fmt"
	"math"
	"sort"
)

// Curve is a named complexity function of the problem size.
type Curve struct {
	Name string
	Eval func(n int) float32
}

// Linear returns n, the O(n) curve.
func Linear(n int) float32 {
	return float32(n)
}

// NLogN returns n*ln(n), the O(n log n) curve. NLogN(0) is 0, the limit of
// n*ln(n) as n approaches 0.
func NLogN(n int) float32 {
	if n == 0 {
		return 0
	}
	m := float64(n)
	return float32(m * math.Log(m))
}

var curves = map[string]Curve{
	"linear": {Name: "linear", Eval: Linear},
	"nlogn":  {Name: "nlogn", Eval: NLogN},
}

// Lookup returns the curve registered under name.
func Lookup(name string) (Curve, error) {
	c, ok := curves[name]
	if !ok {
		return Curve{}, fmt.Errorf("complexity: unknown curve %q (known: %v)", name, Names())
	}
	return c, nil
}

// Names lists the registered curve names in sorted order.
func Names() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
