package progress

import "time"

// Clock supplies the current time. Streaks and date sets are defined in
// device-local calendar days, so tests inject fixed clocks instead of
// shifting the process time zone.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
