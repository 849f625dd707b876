// Package event provides the synchronization primitives shared by the
// taskpool runtimes: Signal, AutoResetEvent, ManualResetEvent, and
// CountdownLatch.
package event

import "time"

// Signal is a one-shot / auto-resetting binary notifier. Set stores true;
// Wait blocks until the flag is true, then atomically clears it and returns.
// At most one waiter wakes per Set. Set is idempotent while already set.
type Signal struct {
	gate *condGate
}

// NewSignal returns a new, unset Signal.
func NewSignal() *Signal {
	return &Signal{gate: newCondGate(false)}
}

// Set stores the flag as true, waking a single waiter if one is blocked in
// Wait or WaitTimeout.
func (s *Signal) Set() {
	s.gate.setOne()
}

// Reset clears the flag without waking anyone.
func (s *Signal) Reset() {
	s.gate.reset()
}

// Wait blocks until the flag is true, then clears it.
func (s *Signal) Wait() {
	s.gate.waitConsume()
}

// WaitTimeout blocks until the flag is true or d elapses, returning whether
// the flag was observed (and consumed). A zero or negative d blocks
// indefinitely, the same as Wait.
func (s *Signal) WaitTimeout(d time.Duration) bool {
	return s.gate.waitTimeout(d, true)
}
