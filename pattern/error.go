package pattern

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern indicates the pattern is not valid in the supported syntax.
var ErrInvalidPattern = errors.New("invalid regex pattern")

// CompileError wraps a pattern compilation failure with the offending pattern.
// Err is usually a *syntax.Error describing the original pattern text.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("yurki: compiling pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error and ErrInvalidPattern.
func (e *CompileError) Unwrap() []error {
	return []error{e.Err, ErrInvalidPattern}
}
