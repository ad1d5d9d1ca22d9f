package timing

import (
	"math"
	"testing"
	"time"

	"github.com/patflynngithub/pycnumanal/vector"
)

// stepClock advances by step on every reading.
type stepClock struct {
	now  time.Duration
	step time.Duration
}

func (c *stepClock) Name() string { return "step" }

func (c *stepClock) Resolution() time.Duration { return c.step }

func (c *stepClock) Now() time.Duration {
	c.now += c.step
	return c.now
}

func TestMeasure_ReadsClockAroundCallOnly(t *testing.T) {
	clock := &stepClock{step: 3 * time.Millisecond}

	// Construction happens before Measure and must not advance the reading.
	v, err := vector.BuildSequence(1 << 16)
	if err != nil {
		t.Fatalf("BuildSequence failed: %v", err)
	}

	calls := 0
	norm, d := Measure(clock, func() float64 {
		calls++
		return vector.L2Norm(v)
	})
	if calls != 1 {
		t.Fatalf("Measure called f %d times, want 1", calls)
	}
	if d != 3*time.Millisecond {
		t.Fatalf("Measure duration = %v, want exactly one clock step", d)
	}
	if want := vector.ClosedFormNorm(1 << 16); math.Abs(norm-want) > 1e-6*want {
		t.Fatalf("Measure result = %v, want %v", norm, want)
	}
}

func TestMeasure_MonotonicNonNegative(t *testing.T) {
	clock := NewMonotonicClock()
	v, _ := vector.BuildSequence(1000)
	_, d := Measure(clock, func() float64 { return vector.L2Norm(v) })
	if d < 0 {
		t.Fatalf("duration = %v, want >= 0", d)
	}
}

func TestMeasure_ExcludesConstruction(t *testing.T) {
	clock := NewMonotonicClock()

	var v []float64
	_, build := Measure(clock, func() error {
		var err error
		v, err = vector.BuildSequence(4 << 20)
		return err
	})

	_, reduce := Measure(clock, func() float64 { return vector.L2Norm(v[:1]) })
	if reduce < 0 {
		t.Fatalf("reduce duration = %v, want >= 0", reduce)
	}
	if reduce >= build {
		t.Fatalf("one-element reduction took %v, construction of %d elements took %v", reduce, len(v), build)
	}
}

func TestProcessClock(t *testing.T) {
	clock, err := NewProcessClock()
	if err == ErrClockUnsupported {
		t.Skip("process clock not supported on this platform")
	}
	if err != nil {
		t.Fatalf("NewProcessClock failed: %v", err)
	}
	if clock.Name() != ClockProcess {
		t.Fatalf("Name() = %q, want %q", clock.Name(), ClockProcess)
	}
	if clock.Resolution() <= 0 {
		t.Fatalf("Resolution() = %v, want > 0", clock.Resolution())
	}
	v, _ := vector.BuildSequence(100000)
	_, d := Measure(clock, func() float64 { return vector.L2Norm(v) })
	if d < 0 {
		t.Fatalf("duration = %v, want >= 0", d)
	}
}

func TestClockByName(t *testing.T) {
	c, err := ClockByName(ClockMonotonic)
	if err != nil {
		t.Fatalf("ClockByName(monotonic) failed: %v", err)
	}
	if c.Name() != ClockMonotonic {
		t.Fatalf("Name() = %q", c.Name())
	}
	if _, err := ClockByName("sundial"); err == nil {
		t.Fatalf("ClockByName(sundial) succeeded, want error")
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int64
	}{
		{0, 0},
		{999 * time.Nanosecond, 0},
		{time.Microsecond, 1},
		{1500 * time.Microsecond, 1500},
		{2 * time.Second, 2 * TicksPerSecond},
	}
	for _, tc := range tests {
		if got := Ticks(tc.d); got != tc.want {
			t.Errorf("Ticks(%v) = %d, want %d", tc.d, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	if s := Summarize(nil); s.Count != 0 {
		t.Fatalf("Summarize(nil) = %+v, want zero", s)
	}

	s := Summarize([]float64{0.5})
	if s.Count != 1 || s.Mean != 0.5 || s.StdDev != 0 || s.Min != 0.5 || s.Max != 0.5 {
		t.Fatalf("Summarize(single) = %+v", s)
	}

	s = Summarize(Seconds([]time.Duration{time.Second, 2 * time.Second, 3 * time.Second}))
	if s.Mean != 2 || s.Min != 1 || s.Max != 3 {
		t.Fatalf("Summarize = %+v, want mean 2 min 1 max 3", s)
	}
	if math.Abs(s.StdDev-1) > 1e-12 {
		t.Fatalf("StdDev = %v, want 1", s.StdDev)
	}
}
