package chrono

import (
	"time"

	"milesearch-backend/lib/timezone"
)

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	// Now returns the current time in JST.
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (StandardTime) Now() time.Time {
	return timezone.Now()
}

// FixedTime always returns the same instant.
type FixedTime struct {
	At time.Time
}

func (f FixedTime) Now() time.Time {
	return f.At.In(timezone.Location)
}
