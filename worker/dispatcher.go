package worker

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/semaphore"

	"auto_wordpress_article_publisher/model"
)

// JobRunner executes one job to completion.
type JobRunner interface {
	Run(ctx context.Context, id string, req model.GenerationRequest)
}

// Dispatcher starts every job in its own goroutine and returns immediately.
// With maxConcurrent == 0 nothing bounds the number of running jobs; otherwise
// extra jobs wait (still in their initial status) for a free slot.
type Dispatcher struct {
	runner JobRunner
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	logger *log.Logger
}

func NewDispatcher(runner JobRunner, maxConcurrent int, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	d := &Dispatcher{runner: runner, logger: logger}
	if maxConcurrent > 0 {
		d.sem = semaphore.NewWeighted(int64(maxConcurrent))
	}
	return d
}

// Dispatch schedules the job and does not wait for it. The job is not tied to
// any request context and cannot be cancelled.
func (d *Dispatcher) Dispatch(id string, req model.GenerationRequest) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx := context.Background()
		if d.sem != nil {
			if err := d.sem.Acquire(ctx, 1); err != nil {
				d.logger.Printf("[ERROR] job %s: acquire slot: %v", id, err)
				return
			}
			defer d.sem.Release(1)
		}
		d.runner.Run(ctx, id, req)
	}()
}

// Wait blocks until every dispatched job has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
