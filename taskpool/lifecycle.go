package taskpool

import (
	"sync"
	"sync/atomic"

	"github.com/joeycumines/go-taskpool/event"
)

// lifecycle holds the state machine bits shared by Consumer, ProducerConsumer,
// and InjectorWorker: the four lifecycle flags, the active-worker count, and
// the terminal event.
type lifecycle struct {
	started   atomic.Bool
	completed atomic.Bool
	cancelled atomic.Bool
	paused    atomic.Bool
	active    atomic.Int32

	terminal   *event.ManualResetEvent
	doneCh     chan struct{}
	finishOnce sync.Once
}

func newLifecycle() *lifecycle {
	return &lifecycle{
		terminal: event.NewManualResetEvent(false),
		doneCh:   make(chan struct{}),
	}
}

// markStarted flips started false->true, returning whether this call won.
func (lc *lifecycle) markStarted() bool {
	return lc.started.CompareAndSwap(false, true)
}

// markCompleted flips completed false->true, returning whether this call won.
func (lc *lifecycle) markCompleted() bool {
	return lc.completed.CompareAndSwap(false, true)
}

// markCancelled flips cancelled false->true, returning whether this call won.
func (lc *lifecycle) markCancelled() bool {
	return lc.cancelled.CompareAndSwap(false, true)
}

func (lc *lifecycle) isStarted() bool   { return lc.started.Load() }
func (lc *lifecycle) isCompleted() bool { return lc.completed.Load() }
func (lc *lifecycle) isCancelled() bool { return lc.cancelled.Load() }
func (lc *lifecycle) isPaused() bool    { return lc.paused.Load() }
func (lc *lifecycle) isFinished() bool  { return lc.terminal.IsSet() }

func (lc *lifecycle) setPaused(v bool) { lc.paused.Store(v) }

func (lc *lifecycle) incActive(n int32) int32 { return lc.active.Add(n) }
func (lc *lifecycle) decActive() int32        { return lc.active.Add(-1) }
func (lc *lifecycle) activeCount() int32      { return lc.active.Load() }

// drained reports whether the runtime has been marked completed and every
// worker has exited (callers combine this with the cancelled flag as needed).
func (lc *lifecycle) drained() bool {
	return lc.isCompleted() && lc.activeCount() == 0
}

// fire sets the terminal event and closes doneCh, exactly once, reporting
// whether this call was the one that did it.
func (lc *lifecycle) fire() bool {
	fired := false
	lc.finishOnce.Do(func() {
		lc.terminal.Set()
		close(lc.doneCh)
		fired = true
	})
	return fired
}
