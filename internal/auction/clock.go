package auction

import "time"

// Clock abstracts wall-clock time.  Every time-window check in the
// service goes through it so tests can simulate expiry without sleeping.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// RealClock returns a Clock backed by time.Now in UTC.
func RealClock() Clock { return realClock{} }
