package taskpool

import "time"

// RateLimiter is the interface ProducerConsumer requires of an optional
// submission throttle. github.com/joeycumines/go-catrate's *catrate.Limiter
// satisfies it directly: Allow attempts to register an event for category,
// reporting whether it was registered, and the next time an event may be
// registered (the zero time if another is allowed now).
type RateLimiter interface {
	Allow(category any) (time.Time, bool)
}
