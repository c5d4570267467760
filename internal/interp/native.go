package interp

import "time"

// NewClock builds the native clock() function: it reports elapsed
// time as a floating-point count of seconds since the Unix epoch.
func NewClock() Callable {
	return clockFn{now: func() float64 {
		return float64(time.Now().UnixNano()) / 1e9
	}}
}
