package event

import "time"

// ManualResetEvent is a boolean gate whose Set wakes all current and future
// waiters; the flag persists until Reset is called. It is the terminal event
// of each taskpool runtime: every goroutine that calls a Wait* method
// observes completion exactly once, no matter how many there are or when
// they call it relative to Set.
type ManualResetEvent struct {
	gate *condGate
}

// NewManualResetEvent returns a new ManualResetEvent with the given initial state.
func NewManualResetEvent(initial bool) *ManualResetEvent {
	return &ManualResetEvent{gate: newCondGate(initial)}
}

// Set stores the flag as true and wakes every waiter. Idempotent.
func (e *ManualResetEvent) Set() {
	e.gate.setAll()
}

// Reset clears the flag. Subsequent waits block again until the next Set.
func (e *ManualResetEvent) Reset() {
	e.gate.reset()
}

// IsSet reports the current flag value.
func (e *ManualResetEvent) IsSet() bool {
	return e.gate.isSignaled()
}

// Wait blocks until the flag is true. It does not consume it: any number of
// concurrent or subsequent calls return immediately until Reset.
func (e *ManualResetEvent) Wait() {
	e.gate.waitPersist()
}

// WaitTimeout blocks until the flag is true or d elapses. A zero or negative
// d blocks indefinitely, the same as Wait.
func (e *ManualResetEvent) WaitTimeout(d time.Duration) bool {
	return e.gate.waitTimeout(d, false)
}

// WaitWhile re-enters Wait for as long as pred returns true.
func (e *ManualResetEvent) WaitWhile(pred func() bool) {
	e.gate.waitWhile(pred, false)
}

// WaitTimeoutWhile re-enters a timed wait for as long as pred returns true,
// bounded overall by d.
func (e *ManualResetEvent) WaitTimeoutWhile(pred func() bool, d time.Duration) bool {
	return e.gate.waitTimeoutWhile(pred, d, false)
}
