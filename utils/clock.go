package utils

import "time"

// Clock abstracts "now" so future-date validation and past-slot classification
// can run against a fixed instant in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
