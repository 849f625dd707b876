package event

import "time"

// AutoResetEvent has the same operational shape as Signal, plus WaitWhile and
// WaitTimeoutWhile variants: while pred() evaluates true the caller re-enters
// the wait. Use these when the condition of interest is an external
// predicate that the event merely signals progress on, rather than the event
// itself.
type AutoResetEvent struct {
	gate *condGate
}

// NewAutoResetEvent returns a new AutoResetEvent with the given initial state.
func NewAutoResetEvent(initial bool) *AutoResetEvent {
	return &AutoResetEvent{gate: newCondGate(initial)}
}

// Set stores the flag as true, waking a single waiter if one is blocked.
func (e *AutoResetEvent) Set() {
	e.gate.setOne()
}

// Reset clears the flag without waking anyone.
func (e *AutoResetEvent) Reset() {
	e.gate.reset()
}

// IsSet reports the current flag value, without consuming it.
func (e *AutoResetEvent) IsSet() bool {
	return e.gate.isSignaled()
}

// Wait blocks until the flag is true, then clears it.
func (e *AutoResetEvent) Wait() {
	e.gate.waitConsume()
}

// WaitTimeout blocks until the flag is true or d elapses, consuming the flag
// on success. A zero or negative d blocks indefinitely, the same as Wait.
func (e *AutoResetEvent) WaitTimeout(d time.Duration) bool {
	return e.gate.waitTimeout(d, true)
}

// WaitWhile re-enters Wait for as long as pred returns true.
func (e *AutoResetEvent) WaitWhile(pred func() bool) {
	e.gate.waitWhile(pred, true)
}

// WaitTimeoutWhile re-enters a timed wait for as long as pred returns true,
// bounded overall by d. Returns false if d elapses before pred becomes false.
func (e *AutoResetEvent) WaitTimeoutWhile(pred func() bool, d time.Duration) bool {
	return e.gate.waitTimeoutWhile(pred, d, true)
}
