//go:build !linux

package timing

// NewProcessClock is only implemented on Linux; use NewMonotonicClock
// elsewhere.
func NewProcessClock() (Clock, error) {
	return nil, ErrClockUnsupported
}
