package clock

import "time"

// Clock supplies "today" as a naive calendar date so lead-time and
// cancellation checks are deterministic under test. Dates are midnight
// UTC throughout the service; no timezone conversion ever happens.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func System() Clock {
	return systemClock{}
}

func (systemClock) Today() time.Time {
	return Midnight(time.Now())
}

// Fixed returns a clock pinned to the given day. Test helper.
func Fixed(day time.Time) Clock {
	return fixedClock{day: Midnight(day)}
}

type fixedClock struct {
	day time.Time
}

func (c fixedClock) Today() time.Time {
	return c.day
}

// Midnight truncates t to its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
