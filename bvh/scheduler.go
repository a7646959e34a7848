package bvh

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// The Scheduler interface supplies fork-join execution to the builder. The
// builder never owns threads: each inner split that qualifies for parallel
// recursion hands its two subtree tasks to the scheduler, which must run
// both to completion before returning. Implementations may run the pair
// concurrently or serially; the builder never shares a writable node between
// the two tasks and does not rely on their relative ordering.
type Scheduler interface {
	ForkJoin(left, right func())
}

type serialScheduler struct{}

// Create a scheduler that runs fork-join pairs on the calling goroutine.
// Builds driven by it are fully deterministic.
func NewSerialScheduler() Scheduler {
	return serialScheduler{}
}

func (serialScheduler) ForkJoin(left, right func()) {
	left()
	right()
}

type workerScheduler struct {
	tokens chan struct{}
}

// Create a scheduler that runs fork-join pairs on up to workers goroutines.
// A non-positive worker count selects GOMAXPROCS.
func NewWorkerScheduler(workers int) Scheduler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &workerScheduler{tokens: make(chan struct{}, workers)}
}

// Run left on a worker goroutine while right executes on the calling
// goroutine. When all workers are busy the pair degrades to serial
// execution, bounding the number of build goroutines regardless of tree
// shape.
func (s *workerScheduler) ForkJoin(left, right func()) {
	select {
	case s.tokens <- struct{}{}:
	default:
		left()
		right()
		return
	}

	var group errgroup.Group
	group.Go(func() error {
		defer func() { <-s.tokens }()
		left()
		return nil
	})
	right()
	group.Wait()
}
