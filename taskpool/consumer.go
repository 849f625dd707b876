package taskpool

import (
	"time"

	"github.com/joeycumines/go-taskpool/event"
	"github.com/joeycumines/go-taskpool/ringqueue"
	"github.com/joeycumines/go-taskpool/taskerr"
)

// Consumer is the single-queue runtime: one internal MPMC queue, drained by
// exactly one worker goroutine (see DESIGN.md for why ConsumerOptions.Threads
// is accepted but ignored).
type Consumer[T any] struct {
	opts  ConsumerOptions
	queue *ringqueue.Queue[T]
	lc    *lifecycle

	delegate TaskDelegation[*Consumer[T], T]
}

// NewConsumer returns a Consumer with default options.
func NewConsumer[T any]() *Consumer[T] {
	return NewConsumerWithOptions[T](NewConsumerOptions())
}

// NewConsumerWithOptions returns a Consumer configured by opts.
func NewConsumerWithOptions[T any](opts ConsumerOptions) *Consumer[T] {
	return &Consumer[T]{
		opts:  opts.normalize(),
		queue: ringqueue.New[T](),
		lc:    newLifecycle(),
	}
}

// Start transitions the runtime from New to Running, spawning its worker and
// invoking delegate.OnStarted. Returns taskerr.ErrQueueStarted if already started.
func (c *Consumer[T]) Start(delegate TaskDelegation[*Consumer[T], T]) error {
	if !c.lc.markStarted() {
		return taskerr.ErrQueueStarted
	}
	c.delegate = delegate
	c.lc.incActive(1)
	delegate.OnStarted(c)
	logStarted(c.opts.Logger, `consumer`, 1)
	go c.worker()
	return nil
}

// Enqueue stages item for processing.
func (c *Consumer[T]) Enqueue(item T) error {
	if c.lc.isCompleted() {
		return taskerr.ErrQueueCompleted
	}
	if c.lc.isCancelled() {
		return taskerr.ErrCanceled
	}
	if !c.queue.TryPushBack(item, c.opts.Capacity) {
		return taskerr.Exceeded(`consumer queue at capacity`)
	}
	if c.opts.SleepAfterSend > 0 {
		time.Sleep(c.opts.SleepAfterSend)
	}
	return nil
}

// Complete marks the runtime as no longer accepting new items. Once the
// queue drains and the worker idles, the terminal event fires.
func (c *Consumer[T]) Complete() {
	if c.lc.markCompleted() {
		logCompleted(c.opts.Logger, `consumer`)
	}
}

// Cancel marks the runtime as cancelled. In-flight processing is not
// interrupted, but the terminal event fires immediately.
func (c *Consumer[T]) Cancel() {
	if !c.lc.markCancelled() {
		return
	}
	logCancelled(c.opts.Logger, `consumer`)
	if c.delegate != nil {
		c.delegate.OnCancelled(c)
	}
	c.finish()
}

// Pause prevents new Process calls from starting; in-flight calls complete.
func (c *Consumer[T]) Pause() {
	c.lc.setPaused(true)
	logPaused(c.opts.Logger, `consumer`)
}

// Resume clears Pause.
func (c *Consumer[T]) Resume() {
	c.lc.setPaused(false)
	logResumed(c.opts.Logger, `consumer`)
}

// Stop is equivalent to Cancel if enforce, else Complete.
func (c *Consumer[T]) Stop(enforce bool) {
	if enforce {
		c.Cancel()
	} else {
		c.Complete()
	}
}

func (c *Consumer[T]) IsStarted() bool   { return c.lc.isStarted() }
func (c *Consumer[T]) IsCompleted() bool { return c.lc.isCompleted() }
func (c *Consumer[T]) IsCancelled() bool { return c.lc.isCancelled() }
func (c *Consumer[T]) IsPaused() bool    { return c.lc.isPaused() }
func (c *Consumer[T]) IsFinished() bool  { return c.lc.isFinished() }
func (c *Consumer[T]) IsEmpty() bool     { return c.queue.Len() == 0 }
func (c *Consumer[T]) Len() int          { return c.queue.Len() }

// Workers reports the number of worker goroutines: 0 before Start, 1 after.
func (c *Consumer[T]) Workers() int {
	if !c.lc.isStarted() {
		return 0
	}
	return 1
}

// Wait blocks until finished or cancelled.
func (c *Consumer[T]) Wait() error { return Wait[*Consumer[T]](c, c.lc.terminal) }

// WaitFor is Wait bounded by timeout.
func (c *Consumer[T]) WaitFor(timeout time.Duration) error {
	return WaitFor[*Consumer[T]](c, timeout, c.lc.terminal)
}

// WaitAsync is the channel-based analogue of Wait.
func (c *Consumer[T]) WaitAsync() error { return WaitAsync[*Consumer[T]](c, c.lc.doneCh) }

// WaitForAsync is the channel-based analogue of WaitFor.
func (c *Consumer[T]) WaitForAsync(timeout time.Duration) error {
	return WaitForAsync[*Consumer[T]](c, timeout, c.lc.doneCh)
}

func (c *Consumer[T]) dequeue() (T, bool) {
	if c.opts.Behavior == LIFO {
		return c.queue.PopBack()
	}
	return c.queue.PopFront()
}

// finish attempts to fire the terminal event, calling OnFinished exactly
// once if this call was the one that fired it.
func (c *Consumer[T]) finish() {
	if c.lc.fire() {
		if c.delegate != nil {
			c.delegate.OnFinished(c)
		}
		logFinished(c.opts.Logger, `consumer`)
		doneProgress(c.opts.Progress)
	}
}

func (c *Consumer[T]) worker() {
	defer func() {
		c.lc.decActive()
		if c.lc.drained() {
			c.finish()
		}
	}()

	for {
		if c.lc.isCancelled() {
			return
		}

		if c.lc.isPaused() {
			time.Sleep(c.opts.PauseTimeout)
			continue
		}

		item, ok := c.dequeue()
		if !ok {
			if c.lc.isCompleted() {
				return
			}
			time.Sleep(c.opts.PeekTimeout)
			continue
		}

		start := timeNow()
		result := runProcess[*Consumer[T], T](c.opts.Logger, `consumer`, c.delegate, c, item)
		keepGoing := c.delegate.OnCompleted(c, item, result)
		tickProgress(c.opts.Progress)

		if elapsed := timeNow().Sub(start); c.opts.Threshold > 0 && elapsed < c.opts.Threshold {
			time.Sleep(c.opts.Threshold - elapsed)
		}

		if !keepGoing {
			return
		}
	}
}
