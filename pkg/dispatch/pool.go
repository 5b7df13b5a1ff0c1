package dispatch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool is the worker pool the engine runs systems on. It provides the
// two primitives the dispatch loop needs: Spawn starts a fire-and-forget
// coordinator task, and ForEach runs fn once per index in [0, n),
// bounding how many run at once, returning only after every call has
// finished. ForEach must be callable from inside a Spawn closure.
type Pool interface {
	Spawn(fn func())
	ForEach(n int, fn func(i int))
}

// ErrgroupPool is the default Pool: system bodies run under an
// errgroup.Group whose fan-out is bounded by a weighted semaphore shared
// across all ForEach calls, so concurrently running stages compete for
// the same slot budget. Coordinator tasks started via Spawn are not
// counted against the budget; there is at most one per in-flight stage
// and all it does is block on ForEach.
//
// Each Engine owns its own ErrgroupPool rather than sharing one
// process-wide, so one graph's concurrency limit never starves
// another's.
type ErrgroupPool struct {
	sem *semaphore.Weighted
}

// NewErrgroupPool returns a Pool that runs at most concurrency system
// bodies at once. concurrency <= 0 defaults to runtime.GOMAXPROCS(0).
func NewErrgroupPool(concurrency int) *ErrgroupPool {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &ErrgroupPool{sem: semaphore.NewWeighted(int64(concurrency))}
}

// Spawn runs fn on its own goroutine and returns immediately.
func (p *ErrgroupPool) Spawn(fn func()) {
	go fn()
}

// ForEach runs fn for every index in [0, n), at most the pool's
// concurrency limit at a time, and returns once all have finished.
func (p *ErrgroupPool) ForEach(n int, fn func(i int)) {
	g := &errgroup.Group{}
	for i := 0; i < n; i++ {
		i := i
		// Acquire with a background context cannot fail.
		_ = p.sem.Acquire(context.Background(), 1)
		g.Go(func() error {
			defer p.sem.Release(1)
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
