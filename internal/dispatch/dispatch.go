// Package dispatch runs one worker per partition range and joins them.
//
// Each worker owns the output slots of its range, so workers never write to
// the same index and need no locking. The caller blocks until every worker has
// returned; a failing worker stops the others at their next item.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/coregx/yurki/internal/partition"
)

// ErrWorkerFailed indicates a worker panicked while processing an item.
var ErrWorkerFailed = errors.New("worker failed")

// WorkerFailure describes a panic recovered from a worker.
type WorkerFailure struct {
	Range partition.Range // Range assigned to the failing worker
	Index int             // Item being processed when the panic occurred
	Cause any             // Recovered panic value
	Stack []byte
}

// Error implements the error interface
func (e *WorkerFailure) Error() string {
	return fmt.Sprintf("yurki: worker %v failed at item %d: %v", e.Range, e.Index, e.Cause)
}

// Unwrap returns ErrWorkerFailed, and the panic value when it is an error.
func (e *WorkerFailure) Unwrap() []error {
	if err, ok := e.Cause.(error); ok {
		return []error{ErrWorkerFailed, err}
	}
	return []error{ErrWorkerFailed}
}

// ItemFunc processes item i. It is only ever called by one goroutine.
type ItemFunc func(i int) error

// NewWorker builds the per-item function for one worker. It runs on the
// worker's goroutine, so it may allocate state that must not be shared.
type NewWorker func(r partition.Range) ItemFunc

// ForEach runs newWorker(r) over every index of every range in ranges.
//
// A single range runs on the calling goroutine. Errors returned by an ItemFunc
// are passed through unchanged; panics become *WorkerFailure. When several
// workers fail, the first error observed is returned, after all workers have
// stopped.
func ForEach(ranges []partition.Range, newWorker NewWorker) error {
	switch len(ranges) {
	case 0:
		return nil
	case 1:
		return runRange(context.Background(), ranges[0], newWorker)
	}

	g, ctx := errgroup.WithContext(context.Background())
	for _, r := range ranges {
		g.Go(func() error {
			return runRange(ctx, r, newWorker)
		})
	}
	return g.Wait()
}

func runRange(ctx context.Context, r partition.Range, newWorker NewWorker) (err error) {
	i := r.Start
	defer func() {
		if p := recover(); p != nil {
			err = &WorkerFailure{Range: r, Index: i, Cause: p, Stack: debug.Stack()}
		}
	}()

	fn := newWorker(r)
	for ; i < r.End; i++ {
		// Cheap check; lets other workers stop soon after a failure.
		if ctx.Err() != nil {
			return nil
		}
		if err := fn(i); err != nil {
			return err
		}
	}
	return nil
}
