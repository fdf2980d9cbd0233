// Package taskgroup provides concurrency helpers that spawn each
// goroutine with its own independent *labeled.Task, the way the runtime's
// design notes describe a cooperative scheduler creating a fresh
// ambient-label cell per task. It is built on golang.org/x/sync/errgroup,
// the concurrency primitive the rest of the pack reaches for whenever it
// needs controlled fan-out with first-error propagation.
package taskgroup

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"diflabel/labeled"
)

// Func is work run under a freshly created *labeled.Task. Returning an
// error (including a *labeled.ViolationError) cancels sibling work
// through the group's context, mirroring errgroup's first-error-wins
// semantics; it does not and cannot affect any other task's current
// label, since each Task is private to the goroutine it was created for.
type Func func(ctx context.Context, task *labeled.Task) error

// Go runs n independent Funcs concurrently, each under its own Task, and
// waits for all of them. It returns the first non-nil error, if any.
// Passing a nil logger gives every task a no-op logger.
func Go(ctx context.Context, logger *zap.Logger, fns ...Func) error {
	eg, egCtx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		fn := fn
		eg.Go(func() error {
			task := labeled.NewTask(logger)
			return fn(egCtx, task)
		})
	}
	return eg.Wait()
}

// Pair is the two-argument convenience form of Go, grounded on the
// pack's frequent pairwise-fan-out shape (gather two independent views of
// something concurrently, bail on the first failure).
func Pair(ctx context.Context, logger *zap.Logger, first, second Func) error {
	return Go(ctx, logger, first, second)
}
