// Package clock provides the injectable time source used by the codec,
// the repositories and the services. Nothing in the server reads time.Now
// directly.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock. Tests use it to pin time.
type Func func() time.Time

// Now implements Clock.
func (f Func) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System is the wall clock, always in UTC so that stored timestamps compare
// consistently across database drivers.
var System Clock = systemClock{}

// Fixed returns a Clock frozen at t.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}
