// Package taskpool implements three task-pipeline runtimes, each driven by
// a caller-supplied TaskDelegation: Consumer, a single queue drained by one
// worker goroutine in FIFO or LIFO order; ProducerConsumer, a
// bounded or unbounded staging queue fed by any number of producers and
// drained by a fixed pool of workers, optionally throttled by a RateLimiter;
// and InjectorWorker, a shared injector queue plus one local deque per
// worker, with idle workers stealing work from both the injector and their
// peers' local queues.
//
// All three runtimes share the same lifecycle (Start, Complete, Cancel,
// Pause, Resume, Stop), the same TaskResult/ResultKind reporting, the same
// structured logging via logiface, and the same progress and awaitable
// plumbing, differing only in how work is queued and handed to workers.
package taskpool
