package taskpool

import (
	"time"

	"github.com/joeycumines/go-taskpool/event"
	"github.com/joeycumines/go-taskpool/taskerr"
)

// Wait blocks until r is finished or cancelled, returning taskerr.ErrCanceled
// in the latter case.
func Wait[R AwaitableConsumer](r R, terminal *event.ManualResetEvent) error {
	terminal.WaitWhile(func() bool { return !r.IsCancelled() && !r.IsFinished() })
	if r.IsCancelled() {
		return taskerr.ErrCanceled
	}
	return nil
}

// WaitFor is Wait bounded by timeout, returning taskerr.ErrTimeout if neither
// flag flips in time. A zero or negative timeout returns ErrTimeout
// immediately.
func WaitFor[R AwaitableConsumer](r R, timeout time.Duration, terminal *event.ManualResetEvent) error {
	if timeout <= 0 {
		return taskerr.ErrTimeout
	}
	ok := terminal.WaitTimeoutWhile(func() bool { return !r.IsCancelled() && !r.IsFinished() }, timeout)
	if !ok {
		return taskerr.ErrTimeout
	}
	if r.IsCancelled() {
		return taskerr.ErrCanceled
	}
	return nil
}

// WaitUntil is Wait, additionally returning success once cond(r) is true.
func WaitUntil[R AwaitableConsumer](r R, terminal *event.ManualResetEvent, cond func(R) bool) error {
	// cond is re-evaluated at least every PeekTimeoutDefault, since nothing
	// signals terminal when it becomes true.
	for !r.IsCancelled() && !r.IsFinished() && !cond(r) {
		terminal.WaitTimeout(PeekTimeoutDefault)
	}
	if r.IsCancelled() {
		return taskerr.ErrCanceled
	}
	return nil
}

// WaitForUntil combines WaitFor and WaitUntil.
func WaitForUntil[R AwaitableConsumer](r R, timeout time.Duration, terminal *event.ManualResetEvent, cond func(R) bool) error {
	if timeout <= 0 {
		return taskerr.ErrTimeout
	}
	deadline := timeNow().Add(timeout)
	for !r.IsCancelled() && !r.IsFinished() && !cond(r) {
		remaining := deadline.Sub(timeNow())
		if remaining <= 0 {
			return taskerr.ErrTimeout
		}
		terminal.WaitTimeout(min(remaining, PeekTimeoutDefault))
	}
	if r.IsCancelled() {
		return taskerr.ErrCanceled
	}
	return nil
}

// WaitAsync is the async analogue of Wait: done must be a channel closed
// exactly once, at the same moment the runtime's terminal event is set
// (true for every runtime in this package).
func WaitAsync[R AwaitableConsumer](r R, done <-chan struct{}) error {
	<-done
	if r.IsCancelled() {
		return taskerr.ErrCanceled
	}
	return nil
}

// WaitForAsync is the async analogue of WaitFor.
func WaitForAsync[R AwaitableConsumer](r R, timeout time.Duration, done <-chan struct{}) error {
	if timeout <= 0 {
		return taskerr.ErrTimeout
	}
	timer := timeNewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		return taskerr.ErrTimeout
	}
	if r.IsCancelled() {
		return taskerr.ErrCanceled
	}
	return nil
}
