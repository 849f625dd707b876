package taskpool

import (
	"sync"
	"testing"
	"time"
)

// S2: ProducerConsumer with threads=4; five producer goroutines each enqueue
// 50 items; then Complete. Expect OnCompleted called exactly 250 times;
// WaitFor(10s) succeeds.
func TestProducerConsumer_S2_FiveProducersFourWorkers(t *testing.T) {
	delegate := newCountingDelegate[*ProducerConsumer[int], int](func(i int) (TaskResult, error) {
		return ResultSuccess(), nil
	})

	opts := NewProducerConsumerOptions().WithThreads(4)
	p := NewProducerConsumerWithOptions[int](opts)
	if err := p.Start(delegate); err != nil {
		t.Fatalf(`Start: %v`, err)
	}

	const producers = 5
	const perProducer = 50
	var wg sync.WaitGroup
	for prod := 0; prod < producers; prod++ {
		wg.Add(1)
		go func(prod int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if err := p.Enqueue(prod*perProducer + i); err != nil {
					t.Errorf(`Enqueue: %v`, err)
				}
			}
		}(prod)
	}
	wg.Wait()
	p.Complete()

	if err := p.WaitFor(10 * time.Second); err != nil {
		t.Fatalf(`WaitFor(10s): %v`, err)
	}
	if n := delegate.completed.Load(); n != producers*perProducer {
		t.Fatalf(`OnCompleted called %d times, want %d`, n, producers*perProducer)
	}
}

func TestProducerConsumer_BoundedCapacityBlocksEnqueue(t *testing.T) {
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(1)
	var once sync.Once

	delegate := newCountingDelegate[*ProducerConsumer[int], int](func(i int) (TaskResult, error) {
		once.Do(started.Done)
		<-release
		return ResultSuccess(), nil
	})

	opts := NewProducerConsumerOptions().WithThreads(1)
	opts.Capacity = 1
	p := NewProducerConsumerWithOptions[int](opts)
	if err := p.Start(delegate); err != nil {
		t.Fatalf(`Start: %v`, err)
	}

	// First item is picked up by the worker and blocks on release.
	if err := p.Enqueue(1); err != nil {
		t.Fatalf(`Enqueue(1): %v`, err)
	}
	started.Wait()

	// Second item fills the one-slot semaphore.
	if err := p.Enqueue(2); err != nil {
		t.Fatalf(`Enqueue(2): %v`, err)
	}

	enqueued3 := make(chan error, 1)
	go func() { enqueued3 <- p.Enqueue(3) }()

	select {
	case <-enqueued3:
		t.Fatal(`Enqueue(3) returned before capacity was freed`)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	if err := <-enqueued3; err != nil {
		t.Fatalf(`Enqueue(3): %v`, err)
	}

	p.Complete()
	if err := p.WaitFor(5 * time.Second); err != nil {
		t.Fatalf(`WaitFor: %v`, err)
	}
	if n := delegate.completed.Load(); n != 3 {
		t.Fatalf(`OnCompleted called %d times, want 3`, n)
	}
}

func TestProducerConsumer_RateLimiterRejectsEnqueue(t *testing.T) {
	delegate := newCountingDelegate[*ProducerConsumer[int], int](func(i int) (TaskResult, error) {
		return ResultSuccess(), nil
	})

	opts := NewProducerConsumerOptions()
	opts.Limiter = denyAllLimiter{}
	p := NewProducerConsumerWithOptions[int](opts)
	if err := p.Start(delegate); err != nil {
		t.Fatalf(`Start: %v`, err)
	}

	if err := p.Enqueue(1); err == nil {
		t.Fatal(`expected Enqueue to be rejected by the rate limiter`)
	}
	p.Cancel()
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(category any) (time.Time, bool) {
	return time.Now().Add(time.Hour), false
}
