package utils

import "time"

// TimestampLayout renders local date-time without zone and with trailing zeros of the fraction dropped,
// e.g. 2024-05-01T10:15:30.123.
const TimestampLayout = "2006-01-02T15:04:05.999999999"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// Timestamp returns the current time of the clock formatted with TimestampLayout.
func Timestamp(clock Clock) string {
	return clock.Now().Format(TimestampLayout)
}
