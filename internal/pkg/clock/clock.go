package clock

import "time"

// Clock abstracts time retrieval so temporal business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// Real reads the actual current time.
type Real struct{}

func (Real) Now() time.Time { return time.Now().UTC() }
