package engine

import (
	"errors"
	"fmt"

	"github.com/coregx/yurki/internal/dispatch"
	"github.com/coregx/yurki/internal/partition"
	"github.com/coregx/yurki/pattern"
)

// Sentinel errors. Every error returned by this package matches exactly one of
// them with errors.Is, except tokenizer configuration errors.
var (
	// ErrInvalidPattern indicates the pattern failed to compile.
	ErrInvalidPattern = pattern.ErrInvalidPattern

	// ErrInvalidJobs indicates a job count below one.
	ErrInvalidJobs = partition.ErrInvalidJobs

	// ErrWorkerFailed indicates a worker panicked.
	ErrWorkerFailed = dispatch.ErrWorkerFailed

	// ErrEncoding indicates an input item is not valid UTF-8.
	ErrEncoding = errors.New("invalid UTF-8")

	// ErrInvalidCount indicates a negative replacement count.
	ErrInvalidCount = errors.New("invalid replacement count")
)

type (
	// CompileError carries the pattern and the syntax error behind it.
	CompileError = pattern.CompileError

	// JobCountError reports the rejected job count.
	JobCountError = partition.JobCountError

	// WorkerFailure identifies the worker range and item that failed.
	WorkerFailure = dispatch.WorkerFailure
)

// EncodingError identifies the first malformed item found.
type EncodingError struct {
	Index int
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("yurki: item %d is not valid UTF-8", e.Index)
}

// Unwrap returns ErrEncoding.
func (e *EncodingError) Unwrap() error {
	return ErrEncoding
}
