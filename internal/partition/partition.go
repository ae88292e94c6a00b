// Package partition splits a batch of n items into disjoint, contiguous,
// order-preserving index ranges, one per worker.
package partition

import (
	"errors"
	"fmt"
)

// SequentialThreshold is the batch size below which a plan always collapses
// to a single range. The convenience layer's automatic job selection uses the
// same value, so leaving jobs unset and letting the engine decide agree.
const SequentialThreshold = 1000

// ErrInvalidJobs indicates a job count below one.
var ErrInvalidJobs = errors.New("job count must be at least 1")

// JobCountError reports a rejected job count.
type JobCountError struct {
	Jobs int
}

// Error implements the error interface
func (e *JobCountError) Error() string {
	return fmt.Sprintf("yurki: invalid job count %d: must be at least 1", e.Jobs)
}

// Unwrap returns ErrInvalidJobs so callers can use errors.Is.
func (e *JobCountError) Unwrap() error {
	return ErrInvalidJobs
}

// Range is the half-open index interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of items in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// String returns the range as "[start,end)".
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Validate checks a job count without computing a plan.
func Validate(jobs int) error {
	if jobs < 1 {
		return &JobCountError{Jobs: jobs}
	}
	return nil
}

// Plan divides n items among at most jobs workers.
//
// The returned ranges are ascending and cover [0, n) exactly once. An empty
// batch yields an empty plan. Batches below SequentialThreshold yield a single
// range regardless of jobs. Otherwise the plan has min(jobs, n) ranges whose
// sizes differ by at most one, the first n%w ranges holding the extra item.
//
// Example:
//
//	ranges, _ := partition.Plan(2003, 4)
//	// [0,501) [501,1002) [1002,1503) [1503,2003)
func Plan(n, jobs int) ([]Range, error) {
	if err := Validate(jobs); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	if n < SequentialThreshold || jobs == 1 {
		return []Range{{Start: 0, End: n}}, nil
	}

	w := min(jobs, n)
	size, extra := n/w, n%w

	ranges := make([]Range, w)
	start := 0
	for i := range ranges {
		end := start + size
		if i < extra {
			end++
		}
		ranges[i] = Range{Start: start, End: end}
		start = end
	}
	return ranges, nil
}
