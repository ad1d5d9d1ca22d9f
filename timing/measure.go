package timing

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// TicksPerSecond matches POSIX CLOCKS_PER_SEC.
const TicksPerSecond = 1_000_000

// Measure calls f once and returns its result together with the elapsed time
// on c. Only f runs between the two clock readings.
func Measure[T any](c Clock, f func() T) (T, time.Duration) {
	start := c.Now()
	result := f()
	end := c.Now()
	return result, end - start
}

// Ticks converts d to whole clock ticks, truncating.
func Ticks(d time.Duration) int64 {
	return int64(d) / int64(time.Second/TicksPerSecond)
}

// Summary describes repeated samples of the same measurement.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64 // sample standard deviation; 0 for fewer than two samples
}

// Summarize computes summary statistics for samples expressed in seconds.
func Summarize(samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	s := Summary{
		Count: len(samples),
		Min:   math.Inf(1),
		Max:   math.Inf(-1),
		Mean:  stat.Mean(samples, nil),
	}
	for _, v := range samples {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	if len(samples) > 1 {
		s.StdDev = stat.StdDev(samples, nil)
	}
	return s
}

// Seconds converts durations to float64 seconds for Summarize.
func Seconds(ds []time.Duration) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.Seconds()
	}
	return out
}
