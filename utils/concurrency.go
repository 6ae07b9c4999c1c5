package utils

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs jobs on a bounded number of goroutines. The first job error
// cancels the pool context and is returned by Wait.
type WorkerPool struct {
	group     *errgroup.Group
	ctx       context.Context
	completed atomic.Int64
}

// NewWorkerPool creates a WorkerPool with the given concurrency.
func NewWorkerPool(ctx context.Context, maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	return &WorkerPool{group: g, ctx: gctx}
}

// Submit enqueues a job, blocking while all workers are busy. Jobs submitted
// after a failure are skipped.
func (wp *WorkerPool) Submit(job func(ctx context.Context) error) {
	wp.group.Go(func() error {
		if err := wp.ctx.Err(); err != nil {
			return err
		}
		if err := job(wp.ctx); err != nil {
			return err
		}
		wp.completed.Add(1)
		return nil
	})
}

// Wait blocks until all submitted jobs have finished and returns the first error.
func (wp *WorkerPool) Wait() error {
	return wp.group.Wait()
}

// Completed returns the number of jobs that finished without error.
func (wp *WorkerPool) Completed() int {
	return int(wp.completed.Load())
}
