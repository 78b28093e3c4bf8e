package platform

import (
	"golang.org/x/sync/errgroup"
)

// Pool is the Heap platform's work-stealing-flavored worker budget: a
// semaphore bounding concurrent goroutines, joined through errgroup so a
// failure in one fork is reported rather than silently dropped. Fan-out is
// per-op rather than a long-lived job queue, with a fixed worker budget.
type Pool struct {
	sem chan struct{}
}

// NewPool builds a pool with the given worker budget, defaulting to 1 if
// size is non-positive.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: make(chan struct{}, size)}
}

// Parallel runs fn(i) for every i in [0,n), bounded by the pool's worker
// budget, and joins every invocation before returning. The first non-nil
// error is returned once all invocations have finished; an error does not
// cancel the others, which still run. No goroutine survives past an op's
// Enqueue call.
func (p *Pool) Parallel(n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	g := new(errgroup.Group)
	for i := 0; i < n; i++ {
		i := i
		p.sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-p.sem }()
			return fn(i)
		})
	}
	return g.Wait()
}

// Chunks splits [0,size) into up to Pool-sized contiguous spans and runs
// fn(start,end) over each span in parallel — the Heap platform's
// elementwise/reduce/matmul chunking primitive.
func (p *Pool) Chunks(size int, fn func(start, end int) error) error {
	if size == 0 {
		return nil
	}
	workers := cap(p.sem)
	if workers > size {
		workers = size
	}
	chunk := (size + workers - 1) / workers

	return p.Parallel(workers, func(i int) error {
		start := i * chunk
		end := start + chunk
		if end > size {
			end = size
		}
		if start >= end {
			return nil
		}
		return fn(start, end)
	})
}

// Fork runs two thunks concurrently and joins both before returning, e.g.
// reading both operands of a Dual op concurrently.
func (p *Pool) Fork(a, b func() error) error {
	g := new(errgroup.Group)
	g.Go(a)
	g.Go(b)
	return g.Wait()
}
