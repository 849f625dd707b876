package taskpool

import (
	"testing"
	"time"
)

// S3: InjectorWorker with threads=2, LIFO; enqueue 20 items, complete, wait.
// Expect OnCompleted called 20 times; no assertion on order.
func TestInjectorWorker_S3_TwentyItemsTwoWorkersLIFO(t *testing.T) {
	delegate := newCountingDelegate[*InjectorWorker[int], int](func(i int) (TaskResult, error) {
		return ResultSuccess(), nil
	})

	opts := NewInjectorWorkerOptions()
	opts.Threads = 2
	opts.Behavior = LIFO
	w := NewInjectorWorkerWithOptions[int](opts)
	if err := w.Start(delegate); err != nil {
		t.Fatalf(`Start: %v`, err)
	}

	for i := 0; i < 20; i++ {
		if err := w.Enqueue(i); err != nil {
			t.Fatalf(`Enqueue(%d): %v`, i, err)
		}
	}
	w.Complete()
	if err := w.Wait(); err != nil {
		t.Fatalf(`Wait: %v`, err)
	}
	if n := delegate.completed.Load(); n != 20 {
		t.Fatalf(`OnCompleted called %d times, want 20`, n)
	}
	if !w.IsEmpty() {
		t.Fatal(`expected injector and local queues to be empty after drain`)
	}
}

func TestInjectorWorker_ManyWorkersDrainSharedInjector(t *testing.T) {
	delegate := newCountingDelegate[*InjectorWorker[int], int](func(i int) (TaskResult, error) {
		return ResultSuccess(), nil
	})

	opts := NewInjectorWorkerOptions()
	opts.Threads = 4
	opts.StealBatch = 2
	w := NewInjectorWorkerWithOptions[int](opts)
	if err := w.Start(delegate); err != nil {
		t.Fatalf(`Start: %v`, err)
	}

	for i := 0; i < 40; i++ {
		if err := w.Enqueue(i); err != nil {
			t.Fatalf(`Enqueue(%d): %v`, i, err)
		}
	}
	w.Complete()
	if err := w.WaitFor(5 * time.Second); err != nil {
		t.Fatalf(`WaitFor: %v`, err)
	}
	if n := delegate.completed.Load(); n != 40 {
		t.Fatalf(`OnCompleted called %d times, want 40`, n)
	}
}

func TestInjectorWorker_EnqueueAfterCancelFails(t *testing.T) {
	delegate := newCountingDelegate[*InjectorWorker[int], int](func(i int) (TaskResult, error) {
		return ResultSuccess(), nil
	})
	w := NewInjectorWorker[int]()
	if err := w.Start(delegate); err != nil {
		t.Fatalf(`Start: %v`, err)
	}
	w.Cancel()
	if err := w.Wait(); err == nil {
		t.Fatal(`expected Wait to report cancellation`)
	}
	if err := w.Enqueue(1); err == nil {
		t.Fatal(`expected Enqueue after Cancel to fail`)
	}
	if n := delegate.cancelled.Load(); n != 1 {
		t.Fatalf(`OnCancelled called %d times, want 1`, n)
	}
}
