package taskpool

import (
	"time"

	"github.com/joeycumines/go-taskpool/ringqueue"
	"github.com/joeycumines/go-taskpool/taskerr"
)

// InjectorWorker is the work-stealing runtime: a single global injector queue
// feeds Threads workers, each of which owns a local queue. A worker drains its
// own local queue first, refills from the injector when empty, and failing
// that steals a batch off another worker's local queue, mirroring a classic
// work-stealing scheduler.
type InjectorWorker[T any] struct {
	opts     InjectorWorkerOptions
	injector *ringqueue.Queue[T]
	locals   []*ringqueue.Queue[T]
	lc       *lifecycle

	delegate TaskDelegation[*InjectorWorker[T], T]
}

// NewInjectorWorker returns an InjectorWorker with default options.
func NewInjectorWorker[T any]() *InjectorWorker[T] {
	return NewInjectorWorkerWithOptions[T](NewInjectorWorkerOptions())
}

// NewInjectorWorkerWithOptions returns an InjectorWorker configured by opts.
func NewInjectorWorkerWithOptions[T any](opts InjectorWorkerOptions) *InjectorWorker[T] {
	return &InjectorWorker[T]{
		opts:     opts.normalize(),
		injector: ringqueue.New[T](),
		lc:       newLifecycle(),
	}
}

// Start transitions the runtime from New to Running, allocating one local
// queue per worker and spawning the worker pool.
func (w *InjectorWorker[T]) Start(delegate TaskDelegation[*InjectorWorker[T], T]) error {
	if !w.lc.markStarted() {
		return taskerr.ErrQueueStarted
	}
	w.delegate = delegate
	w.locals = make([]*ringqueue.Queue[T], w.opts.Threads)
	for i := range w.locals {
		w.locals[i] = ringqueue.New[T]()
	}
	w.lc.incActive(int32(w.opts.Threads))
	delegate.OnStarted(w)
	logStarted(w.opts.Logger, `injectorworker`, w.opts.Threads)
	for i := range w.locals {
		go w.worker(i)
	}
	return nil
}

// Enqueue stages item on the global injector queue, for any idle worker to
// claim.
func (w *InjectorWorker[T]) Enqueue(item T) error {
	if w.lc.isCompleted() {
		return taskerr.ErrQueueCompleted
	}
	if w.lc.isCancelled() {
		return taskerr.ErrCanceled
	}
	if !w.injector.TryPushBack(item, w.opts.Capacity) {
		return taskerr.Exceeded(`injector queue at capacity`)
	}
	if w.opts.SleepAfterSend > 0 {
		time.Sleep(w.opts.SleepAfterSend)
	}
	return nil
}

// Complete marks the runtime as no longer accepting new items. Once the
// injector and every local queue drain, the terminal event fires.
func (w *InjectorWorker[T]) Complete() {
	if w.lc.markCompleted() {
		logCompleted(w.opts.Logger, `injectorworker`)
	}
}

// Cancel discards pending items (local and injector queues are simply
// abandoned) and fires the terminal event immediately.
func (w *InjectorWorker[T]) Cancel() {
	if !w.lc.markCancelled() {
		return
	}
	logCancelled(w.opts.Logger, `injectorworker`)
	if w.delegate != nil {
		w.delegate.OnCancelled(w)
	}
	w.finish()
}

// Pause prevents new Process calls from starting; in-flight calls complete.
func (w *InjectorWorker[T]) Pause() {
	w.lc.setPaused(true)
	logPaused(w.opts.Logger, `injectorworker`)
}

// Resume clears Pause.
func (w *InjectorWorker[T]) Resume() {
	w.lc.setPaused(false)
	logResumed(w.opts.Logger, `injectorworker`)
}

// Stop is equivalent to Cancel if enforce, else Complete.
func (w *InjectorWorker[T]) Stop(enforce bool) {
	if enforce {
		w.Cancel()
	} else {
		w.Complete()
	}
}

func (w *InjectorWorker[T]) IsStarted() bool   { return w.lc.isStarted() }
func (w *InjectorWorker[T]) IsCompleted() bool { return w.lc.isCompleted() }
func (w *InjectorWorker[T]) IsCancelled() bool { return w.lc.isCancelled() }
func (w *InjectorWorker[T]) IsPaused() bool    { return w.lc.isPaused() }
func (w *InjectorWorker[T]) IsFinished() bool  { return w.lc.isFinished() }

// IsEmpty reports whether the injector queue and every local queue are empty.
func (w *InjectorWorker[T]) IsEmpty() bool { return w.Len() == 0 }

// Len returns the total number of items staged across the injector queue and
// every worker's local queue.
func (w *InjectorWorker[T]) Len() int {
	n := w.injector.Len()
	for _, l := range w.locals {
		n += l.Len()
	}
	return n
}

// Workers reports the configured worker pool size, 0 before Start.
func (w *InjectorWorker[T]) Workers() int {
	if !w.lc.isStarted() {
		return 0
	}
	return w.opts.Threads
}

// Wait blocks until finished or cancelled.
func (w *InjectorWorker[T]) Wait() error { return Wait[*InjectorWorker[T]](w, w.lc.terminal) }

// WaitFor is Wait bounded by timeout.
func (w *InjectorWorker[T]) WaitFor(timeout time.Duration) error {
	return WaitFor[*InjectorWorker[T]](w, timeout, w.lc.terminal)
}

// WaitAsync is the channel-based analogue of Wait.
func (w *InjectorWorker[T]) WaitAsync() error {
	return WaitAsync[*InjectorWorker[T]](w, w.lc.doneCh)
}

// WaitForAsync is the channel-based analogue of WaitFor.
func (w *InjectorWorker[T]) WaitForAsync(timeout time.Duration) error {
	return WaitForAsync[*InjectorWorker[T]](w, timeout, w.lc.doneCh)
}

func (w *InjectorWorker[T]) finish() {
	if w.lc.fire() {
		if w.delegate != nil {
			w.delegate.OnFinished(w)
		}
		logFinished(w.opts.Logger, `injectorworker`)
		doneProgress(w.opts.Progress)
	}
}

// popLocal removes one item from this worker's own queue, honoring Behavior:
// FIFO pops the head (the oldest item), LIFO pops the tail (the end refill
// appends to, and the end a thief would otherwise steal from).
func (w *InjectorWorker[T]) popLocal(i int) (T, bool) {
	if w.opts.Behavior == LIFO {
		return w.locals[i].PopBack()
	}
	return w.locals[i].PopFront()
}

// refill tries, in order, to top up locals[i] from the global injector queue
// and then by stealing from a peer's local queue, returning true if either
// succeeded in adding at least one item.
func (w *InjectorWorker[T]) refill(i int) bool {
	if batch := w.injector.DrainFront(w.opts.StealBatch); len(batch) > 0 {
		for _, v := range batch {
			w.locals[i].PushBack(v)
		}
		return true
	}

	n := len(w.locals)
	for offset := 1; offset < n; offset++ {
		victim := (i + offset) % n
		if stolen := w.locals[victim].StealBack(w.opts.StealBatch); len(stolen) > 0 {
			for _, v := range stolen {
				w.locals[i].PushBack(v)
			}
			return true
		}
	}
	return false
}

func (w *InjectorWorker[T]) worker(i int) {
	defer func() {
		w.lc.decActive()
		if w.lc.drained() && w.Len() == 0 {
			w.finish()
		}
	}()

	for {
		if w.lc.isCancelled() {
			return
		}

		if w.lc.isPaused() {
			time.Sleep(w.opts.PauseTimeout)
			continue
		}

		item, ok := w.popLocal(i)
		if !ok {
			if w.refill(i) {
				item, ok = w.popLocal(i)
			}
		}
		if !ok {
			if w.lc.isCompleted() && w.Len() == 0 {
				return
			}
			time.Sleep(w.opts.PeekTimeout)
			continue
		}

		start := timeNow()
		result := runProcess[*InjectorWorker[T], T](w.opts.Logger, `injectorworker`, w.delegate, w, item)
		keepGoing := w.delegate.OnCompleted(w, item, result)
		tickProgress(w.opts.Progress)

		if elapsed := timeNow().Sub(start); w.opts.Threshold > 0 && elapsed < w.opts.Threshold {
			time.Sleep(w.opts.Threshold - elapsed)
		}

		if !keepGoing {
			return
		}
	}
}
