package taskpool

import (
	"testing"
	"time"

	"github.com/joeycumines/go-catrate"
)

// TestProducerConsumer_CatrateLimiterThrottlesEnqueue confirms that
// *catrate.Limiter satisfies RateLimiter structurally, and that a tight rate
// limit actually rejects a burst of submissions past its allowance.
func TestProducerConsumer_CatrateLimiterThrottlesEnqueue(t *testing.T) {
	limiter := catrate.NewLimiter(map[time.Duration]int{
		time.Minute: 3,
	})

	delegate := newCountingDelegate[*ProducerConsumer[int], int](func(i int) (TaskResult, error) {
		return ResultSuccess(), nil
	})

	opts := NewProducerConsumerOptions()
	opts.Limiter = limiter
	opts.LimiterCategory = `burst`
	p := NewProducerConsumerWithOptions[int](opts)
	if err := p.Start(delegate); err != nil {
		t.Fatalf(`Start: %v`, err)
	}

	var allowed, rejected int
	for i := 0; i < 10; i++ {
		if err := p.Enqueue(i); err != nil {
			rejected++
		} else {
			allowed++
		}
	}

	if allowed != 3 {
		t.Fatalf(`allowed = %d, want 3`, allowed)
	}
	if rejected != 7 {
		t.Fatalf(`rejected = %d, want 7`, rejected)
	}

	p.Complete()
	if err := p.WaitFor(5 * time.Second); err != nil {
		t.Fatalf(`WaitFor: %v`, err)
	}
	if n := delegate.completed.Load(); n != 3 {
		t.Fatalf(`OnCompleted called %d times, want 3`, n)
	}
}
