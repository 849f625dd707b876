package event

import (
	"sync"
	"time"
)

// CountdownLatch is an integer counter; Wait blocks until it reaches zero.
// Current is monotonically non-negative: it never goes below zero, and
// SignalN(k) with k greater than the current count simply saturates at zero.
type CountdownLatch struct {
	mu      sync.Mutex
	cond    *sync.Cond
	initial uint64
	current uint64
}

// NewCountdownLatch returns a new CountdownLatch with the given initial count.
func NewCountdownLatch(initial uint64) *CountdownLatch {
	l := &CountdownLatch{initial: initial, current: initial}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Initial returns the count the latch was constructed with.
func (l *CountdownLatch) Initial() uint64 {
	return l.initial
}

// Current returns the current count.
func (l *CountdownLatch) Current() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Signal decrements the count by one, saturating at zero, returning the new
// count. If the count reaches zero, every waiter is woken.
func (l *CountdownLatch) Signal() uint64 {
	return l.SignalN(1)
}

// SignalN decrements the count by n, saturating at zero, returning the new
// count. If the count reaches zero, every waiter is woken.
func (l *CountdownLatch) SignalN(n uint64) uint64 {
	l.mu.Lock()
	if n >= l.current {
		l.current = 0
	} else {
		l.current -= n
	}
	reached := l.current == 0
	current := l.current
	l.mu.Unlock()

	if reached {
		l.cond.Broadcast()
	}
	return current
}

// AddCount increments the count by n, returning the new count. It never
// wakes waiters: the zero-count predicate they block on is unaffected by an
// increase.
func (l *CountdownLatch) AddCount(n uint64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current += n
	return l.current
}

// TryAddCount increments the count by n, returning the new count and true,
// unless the count is already zero, in which case it returns (0, false)
// without modifying the latch.
func (l *CountdownLatch) TryAddCount(n uint64) (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == 0 {
		return 0, false
	}
	l.current += n
	return l.current, true
}

// Wait blocks until the count reaches zero.
func (l *CountdownLatch) Wait() {
	l.mu.Lock()
	for l.current != 0 {
		l.cond.Wait()
	}
	l.mu.Unlock()
}

// WaitTimeout blocks until the count reaches zero or d elapses, returning
// whether the count was observed to be zero. A zero or negative d blocks
// indefinitely, the same as Wait.
func (l *CountdownLatch) WaitTimeout(d time.Duration) bool {
	if d <= 0 {
		l.Wait()
		return true
	}

	deadline := time.Now().Add(d)
	timer := time.AfterFunc(d, func() {
		l.mu.Lock()
		l.cond.Broadcast()
		l.mu.Unlock()
	})
	defer timer.Stop()

	l.mu.Lock()
	defer l.mu.Unlock()
	for l.current != 0 {
		if !time.Now().Before(deadline) {
			return false
		}
		l.cond.Wait()
	}
	return true
}
