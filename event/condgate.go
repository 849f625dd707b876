package event

import (
	"sync"
	"time"
)

// condGate is the shared plumbing behind Signal, AutoResetEvent, and
// ManualResetEvent: a boolean flag guarded by a Mutex/Cond pair.
//
// Timed waits are implemented with the common Go idiom of a deferred
// AfterFunc forcing a spurious Broadcast at the deadline, since sync.Cond has
// no native timeout support.
type condGate struct {
	mu   sync.Mutex
	cond *sync.Cond
	flag bool
}

func newCondGate(initial bool) *condGate {
	g := &condGate{flag: initial}
	g.cond = sync.NewCond(&g.mu)
	return g
}

func (g *condGate) isSignaled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.flag
}

// setOne sets the flag and wakes a single waiter, if any.
func (g *condGate) setOne() {
	g.mu.Lock()
	g.flag = true
	g.mu.Unlock()
	g.cond.Signal()
}

// setAll sets the flag and wakes every current waiter.
func (g *condGate) setAll() {
	g.mu.Lock()
	g.flag = true
	g.mu.Unlock()
	g.cond.Broadcast()
}

func (g *condGate) reset() {
	g.mu.Lock()
	g.flag = false
	g.mu.Unlock()
}

// waitConsume blocks until the flag is true, then atomically clears it.
func (g *condGate) waitConsume() {
	g.mu.Lock()
	for !g.flag {
		g.cond.Wait()
	}
	g.flag = false
	g.mu.Unlock()
}

// waitPersist blocks until the flag is true, leaving it set.
func (g *condGate) waitPersist() {
	g.mu.Lock()
	for !g.flag {
		g.cond.Wait()
	}
	g.mu.Unlock()
}

// waitTimeout blocks until the flag is true or the timeout elapses. consume
// controls whether a successful wait clears the flag.
func (g *condGate) waitTimeout(d time.Duration, consume bool) bool {
	if d <= 0 {
		if consume {
			g.waitConsume()
		} else {
			g.waitPersist()
		}
		return true
	}

	deadline := time.Now().Add(d)
	timer := time.AfterFunc(d, func() {
		g.mu.Lock()
		g.cond.Broadcast()
		g.mu.Unlock()
	})
	defer timer.Stop()

	g.mu.Lock()
	defer g.mu.Unlock()
	for !g.flag {
		if !time.Now().Before(deadline) {
			return false
		}
		g.cond.Wait()
	}
	if consume {
		g.flag = false
	}
	return true
}

// waitWhile re-enters waitConsume (or waitPersist, if !consume) for as long
// as cond() is true.
func (g *condGate) waitWhile(cond func() bool, consume bool) {
	wait := g.waitPersist
	if consume {
		wait = g.waitConsume
	}
	for cond() {
		wait()
	}
}

// waitTimeoutWhile re-enters a timed wait for as long as cond() is true,
// returning false the instant the overall timeout elapses.
func (g *condGate) waitTimeoutWhile(cond func() bool, d time.Duration, consume bool) bool {
	deadline := time.Now().Add(d)
	for cond() {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		if !g.waitTimeout(remaining, consume) {
			return false
		}
	}
	return true
}
