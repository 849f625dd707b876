package taskpool

import "time"

// Defaults and clamps for runtime Options values.
const (
	CapacityDefault = 0 // 0 = unbounded
	ThreadsDefault  = 1
	ThreadsMin      = 1
	ThreadsMax      = 255

	ThresholdDefault      = time.Duration(0)
	SleepAfterSendDefault = time.Duration(0)

	PeekTimeoutDefault = 50 * time.Millisecond
	PeekTimeoutMin     = 10 * time.Millisecond
	PeekTimeoutMax     = 5 * time.Second

	PauseTimeoutDefault = 50 * time.Millisecond
	PauseTimeoutMin     = 10 * time.Millisecond
	PauseTimeoutMax     = 5 * time.Second
)

func clampDuration(d, min, max time.Duration) time.Duration {
	if d < min {
		return min
	}
	if d > max {
		return max
	}
	return d
}

func clampThreads(n int) int {
	if n <= 0 {
		return ThreadsDefault
	}
	if n < ThreadsMin {
		return ThreadsMin
	}
	if n > ThreadsMax {
		return ThreadsMax
	}
	return n
}

// ConsumerOptions configures a Consumer.
//
// Threads is accepted for symmetry with the other two runtimes' options, but
// is ignored: Consumer always starts exactly one worker goroutine (see
// DESIGN.md's Open Question resolution). It is kept on the struct, rather
// than removed, so options can be constructed generically across runtimes.
type ConsumerOptions struct {
	Capacity    int
	Threads     int
	Behavior    QueueBehavior
	Threshold   time.Duration
	SleepAfterSend time.Duration
	PeekTimeout time.Duration
	PauseTimeout time.Duration
	Logger      *Logger
	Progress    ProgressSink
}

// NewConsumerOptions returns ConsumerOptions with every field at its
// documented default.
func NewConsumerOptions() ConsumerOptions {
	return ConsumerOptions{
		Capacity:       CapacityDefault,
		Threads:        ThreadsDefault,
		Behavior:       FIFO,
		Threshold:      ThresholdDefault,
		SleepAfterSend: SleepAfterSendDefault,
		PeekTimeout:    PeekTimeoutDefault,
		PauseTimeout:   PauseTimeoutDefault,
	}
}

func (o ConsumerOptions) normalize() ConsumerOptions {
	o.PeekTimeout = clampDuration(orDefault(o.PeekTimeout, PeekTimeoutDefault), PeekTimeoutMin, PeekTimeoutMax)
	o.PauseTimeout = clampDuration(orDefault(o.PauseTimeout, PauseTimeoutDefault), PauseTimeoutMin, PauseTimeoutMax)
	if o.Capacity < 0 {
		o.Capacity = CapacityDefault
	}
	return o
}

// ProducerConsumerOptions configures a ProducerConsumer.
type ProducerConsumerOptions struct {
	Capacity       int
	Threads        int
	Threshold      time.Duration
	SleepAfterSend time.Duration
	PeekTimeout    time.Duration
	PauseTimeout   time.Duration
	Logger         *Logger
	Progress       ProgressSink

	// Limiter, if non-nil, gates Enqueue: a producer submitting under the
	// given category must be Allow()ed by the limiter before the item is
	// handed to the internal channel.
	Limiter         RateLimiter
	LimiterCategory any
}

// NewProducerConsumerOptions returns ProducerConsumerOptions with every field
// at its documented default.
func NewProducerConsumerOptions() ProducerConsumerOptions {
	return ProducerConsumerOptions{
		Capacity:       CapacityDefault,
		Threads:        ThreadsDefault,
		Threshold:      ThresholdDefault,
		SleepAfterSend: SleepAfterSendDefault,
		PeekTimeout:    PeekTimeoutDefault,
		PauseTimeout:   PauseTimeoutDefault,
	}
}

// WithThreads returns a copy of o with Threads set.
func (o ProducerConsumerOptions) WithThreads(n int) ProducerConsumerOptions {
	o.Threads = n
	return o
}

func (o ProducerConsumerOptions) normalize() ProducerConsumerOptions {
	o.Threads = clampThreads(o.Threads)
	o.PeekTimeout = clampDuration(orDefault(o.PeekTimeout, PeekTimeoutDefault), PeekTimeoutMin, PeekTimeoutMax)
	o.PauseTimeout = clampDuration(orDefault(o.PauseTimeout, PauseTimeoutDefault), PauseTimeoutMin, PauseTimeoutMax)
	if o.Capacity < 0 {
		o.Capacity = CapacityDefault
	}
	return o
}

// InjectorWorkerOptions configures an InjectorWorker.
type InjectorWorkerOptions struct {
	Capacity       int
	Threads        int
	Behavior       QueueBehavior
	Threshold      time.Duration
	SleepAfterSend time.Duration
	PeekTimeout    time.Duration
	PauseTimeout   time.Duration
	Logger         *Logger
	Progress       ProgressSink

	// StealBatch caps how many items a worker moves per steal attempt, and
	// per injector-drain attempt. Defaults to 32 if zero or negative.
	StealBatch int
}

// NewInjectorWorkerOptions returns InjectorWorkerOptions with every field at
// its documented default.
func NewInjectorWorkerOptions() InjectorWorkerOptions {
	return InjectorWorkerOptions{
		Capacity:       CapacityDefault,
		Threads:        ThreadsDefault,
		Behavior:       FIFO,
		Threshold:      ThresholdDefault,
		SleepAfterSend: SleepAfterSendDefault,
		PeekTimeout:    PeekTimeoutDefault,
		PauseTimeout:   PauseTimeoutDefault,
		StealBatch:     32,
	}
}

func (o InjectorWorkerOptions) normalize() InjectorWorkerOptions {
	o.Threads = clampThreads(o.Threads)
	o.PeekTimeout = clampDuration(orDefault(o.PeekTimeout, PeekTimeoutDefault), PeekTimeoutMin, PeekTimeoutMax)
	o.PauseTimeout = clampDuration(orDefault(o.PauseTimeout, PauseTimeoutDefault), PauseTimeoutMin, PauseTimeoutMax)
	if o.Capacity < 0 {
		o.Capacity = CapacityDefault
	}
	if o.StealBatch <= 0 {
		o.StealBatch = 32
	}
	return o
}

func orDefault(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}
	return d
}
