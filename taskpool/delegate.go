package taskpool

// AwaitableConsumer is satisfied by every runtime (Consumer, ProducerConsumer,
// InjectorWorker): it exposes just enough state for the free Wait* helpers
// and for a delegate to inspect cancellation without a back-reference cycle.
type AwaitableConsumer interface {
	IsCancelled() bool
	IsFinished() bool
}

// TaskDelegation is the user-supplied lifecycle callback set. R is the
// concrete runtime type (e.g. *Consumer[T]), passed to every method so the
// delegate can inspect it (e.g. call IsCancelled) without the runtime holding
// a reference back to the delegate's state.
//
// Implementations must tolerate concurrent calls to Process and OnCompleted
// from multiple worker goroutines.
type TaskDelegation[R AwaitableConsumer, T any] interface {
	// OnStarted is called once per runtime Start, from the starting goroutine.
	OnStarted(r R)
	// Process is the unit of work. A non-nil error is treated identically to
	// returning ResultError(err), regardless of the TaskResult also returned.
	Process(r R, item T) (TaskResult, error)
	// OnCompleted is consulted after every Process call. Returning false
	// requests the calling worker stop draining further items (a cooperative
	// stop, not a hard cancel).
	OnCompleted(r R, item T, result TaskResult) bool
	// OnCancelled fires at most once, when cancellation is first observed.
	OnCancelled(r R)
	// OnFinished fires exactly once per lifecycle, after the terminal event
	// is set.
	OnFinished(r R)
}

// runProcess invokes delegate.Process, catching any panic and translating it
// into a ResultError, per the panic-containment design.
func runProcess[R AwaitableConsumer, T any](l *Logger, kind string, d TaskDelegation[R, T], r R, item T) (result TaskResult) {
	defer func() {
		if rec := recover(); rec != nil {
			logWorkerPanic(l, kind, rec)
			result = ResultError(panicError{rec})
		}
	}()

	res, err := d.Process(r, item)
	if err != nil {
		return ResultError(err)
	}
	return res
}

type panicError struct {
	recovered any
}

func (p panicError) Error() string {
	return stringifyRecover(p.recovered)
}
