package parallel

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// RunTasks executes n indexed tasks on at most workers goroutines. When a
// task fails, the shared context is cancelled so sibling tasks can stop
// early, and after all tasks have settled the error with the lowest task
// index is returned. That rule keeps the surfaced error deterministic no
// matter how the scheduler interleaved the workers.
//
// workers <= 1 runs the tasks sequentially in index order, stopping at the
// first error.
func RunTasks(ctx context.Context, workers, n int, task func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := task(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if workers < n {
		g.SetLimit(workers)
	} else {
		g.SetLimit(n)
	}

	errs := make([]error, n)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			errs[i] = task(gctx, i)
			return errs[i]
		})
	}
	_ = g.Wait()

	// Prefer the lowest-index genuine failure over cancellation fallout.
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
