package taskpool

import (
	"time"

	"github.com/joeycumines/go-taskpool/ringqueue"
	"github.com/joeycumines/go-taskpool/taskerr"
)

// ProducerConsumer is the bounded/unbounded-channel runtime: a fixed pool of
// Threads worker goroutines drains an internal queue fed by any number of
// external producers. When Capacity is positive, Enqueue blocks (polling at
// PeekTimeout intervals) once that many items are staged, via an internal
// semaphore channel — the Go analogue of a bounded channel's send blocking.
type ProducerConsumer[T any] struct {
	opts  ProducerConsumerOptions
	queue *ringqueue.Queue[T]
	sem   chan struct{} // nil when unbounded
	lc    *lifecycle

	delegate TaskDelegation[*ProducerConsumer[T], T]
}

// NewProducerConsumer returns a ProducerConsumer with default options.
func NewProducerConsumer[T any]() *ProducerConsumer[T] {
	return NewProducerConsumerWithOptions[T](NewProducerConsumerOptions())
}

// NewProducerConsumerWithOptions returns a ProducerConsumer configured by opts.
func NewProducerConsumerWithOptions[T any](opts ProducerConsumerOptions) *ProducerConsumer[T] {
	opts = opts.normalize()
	p := &ProducerConsumer[T]{
		opts:  opts,
		queue: ringqueue.New[T](),
		lc:    newLifecycle(),
	}
	if opts.Capacity > 0 {
		p.sem = make(chan struct{}, opts.Capacity)
	}
	return p
}

// Start transitions the runtime from New to Running, spawning its worker
// pool and invoking delegate.OnStarted.
func (p *ProducerConsumer[T]) Start(delegate TaskDelegation[*ProducerConsumer[T], T]) error {
	if !p.lc.markStarted() {
		return taskerr.ErrQueueStarted
	}
	p.delegate = delegate
	p.lc.incActive(int32(p.opts.Threads))
	delegate.OnStarted(p)
	logStarted(p.opts.Logger, `producerconsumer`, p.opts.Threads)
	for i := 0; i < p.opts.Threads; i++ {
		go p.worker()
	}
	return nil
}

func (p *ProducerConsumer[T]) checkOpen() error {
	if p.lc.isCompleted() {
		return taskerr.ErrQueueCompleted
	}
	if p.lc.isCancelled() {
		return taskerr.ErrCanceled
	}
	return nil
}

func (p *ProducerConsumer[T]) acquire() error {
	for {
		select {
		case p.sem <- struct{}{}:
			return nil
		case <-time.After(p.opts.PeekTimeout):
		}
		if err := p.checkOpen(); err != nil {
			return err
		}
	}
}

// Enqueue stages item for processing, blocking while a positive Capacity is
// already fully staged.
func (p *ProducerConsumer[T]) Enqueue(item T) error {
	if err := p.checkOpen(); err != nil {
		return err
	}

	if p.opts.Limiter != nil {
		if _, ok := p.opts.Limiter.Allow(p.opts.LimiterCategory); !ok {
			return taskerr.Exceeded(`rate limited`)
		}
	}

	if p.sem != nil {
		if err := p.acquire(); err != nil {
			return err
		}
	}

	p.queue.PushBack(item)

	if p.opts.SleepAfterSend > 0 {
		time.Sleep(p.opts.SleepAfterSend)
	}
	return nil
}

// Complete closes the sending side: no further items may be staged, but
// those already staged are still drained.
func (p *ProducerConsumer[T]) Complete() {
	if p.lc.markCompleted() {
		logCompleted(p.opts.Logger, `producerconsumer`)
	}
}

// Cancel discards pending items and fires the terminal event immediately.
func (p *ProducerConsumer[T]) Cancel() {
	if !p.lc.markCancelled() {
		return
	}
	logCancelled(p.opts.Logger, `producerconsumer`)
	if p.delegate != nil {
		p.delegate.OnCancelled(p)
	}
	p.finish()
}

// Pause prevents new Process calls from starting; in-flight calls complete.
func (p *ProducerConsumer[T]) Pause() {
	p.lc.setPaused(true)
	logPaused(p.opts.Logger, `producerconsumer`)
}

// Resume clears Pause.
func (p *ProducerConsumer[T]) Resume() {
	p.lc.setPaused(false)
	logResumed(p.opts.Logger, `producerconsumer`)
}

// Stop is equivalent to Cancel if enforce, else Complete.
func (p *ProducerConsumer[T]) Stop(enforce bool) {
	if enforce {
		p.Cancel()
	} else {
		p.Complete()
	}
}

func (p *ProducerConsumer[T]) IsStarted() bool   { return p.lc.isStarted() }
func (p *ProducerConsumer[T]) IsCompleted() bool { return p.lc.isCompleted() }
func (p *ProducerConsumer[T]) IsCancelled() bool { return p.lc.isCancelled() }
func (p *ProducerConsumer[T]) IsPaused() bool    { return p.lc.isPaused() }
func (p *ProducerConsumer[T]) IsFinished() bool  { return p.lc.isFinished() }
func (p *ProducerConsumer[T]) IsEmpty() bool     { return p.queue.Len() == 0 }
func (p *ProducerConsumer[T]) Len() int          { return p.queue.Len() }

// Workers reports the configured worker pool size, 0 before Start.
func (p *ProducerConsumer[T]) Workers() int {
	if !p.lc.isStarted() {
		return 0
	}
	return p.opts.Threads
}

// Wait blocks until finished or cancelled.
func (p *ProducerConsumer[T]) Wait() error {
	return Wait[*ProducerConsumer[T]](p, p.lc.terminal)
}

// WaitFor is Wait bounded by timeout.
func (p *ProducerConsumer[T]) WaitFor(timeout time.Duration) error {
	return WaitFor[*ProducerConsumer[T]](p, timeout, p.lc.terminal)
}

// WaitAsync is the channel-based analogue of Wait.
func (p *ProducerConsumer[T]) WaitAsync() error {
	return WaitAsync[*ProducerConsumer[T]](p, p.lc.doneCh)
}

// WaitForAsync is the channel-based analogue of WaitFor.
func (p *ProducerConsumer[T]) WaitForAsync(timeout time.Duration) error {
	return WaitForAsync[*ProducerConsumer[T]](p, timeout, p.lc.doneCh)
}

func (p *ProducerConsumer[T]) finish() {
	if p.lc.fire() {
		if p.delegate != nil {
			p.delegate.OnFinished(p)
		}
		logFinished(p.opts.Logger, `producerconsumer`)
		doneProgress(p.opts.Progress)
	}
}

func (p *ProducerConsumer[T]) worker() {
	defer func() {
		p.lc.decActive()
		if p.lc.drained() {
			p.finish()
		}
	}()

	for {
		if p.lc.isCancelled() {
			return
		}

		if p.lc.isPaused() {
			time.Sleep(p.opts.PauseTimeout)
			continue
		}

		item, ok := p.queue.PopFront()
		if !ok {
			if p.lc.isCompleted() {
				return
			}
			time.Sleep(p.opts.PeekTimeout)
			continue
		}
		if p.sem != nil {
			<-p.sem
		}

		start := timeNow()
		result := runProcess[*ProducerConsumer[T], T](p.opts.Logger, `producerconsumer`, p.delegate, p, item)
		keepGoing := p.delegate.OnCompleted(p, item, result)
		tickProgress(p.opts.Progress)

		if elapsed := timeNow().Sub(start); p.opts.Threshold > 0 && elapsed < p.opts.Threshold {
			time.Sleep(p.opts.Threshold - elapsed)
		}

		if !keepGoing {
			return
		}
	}
}
