package engine

import (
	"github.com/go-logr/logr"

	"github.com/coregx/yurki/internal/partition"
	"github.com/coregx/yurki/pattern"
)

// Options is the configuration surface shared by every operation.
type Options struct {
	// CaseInsensitive compiles the pattern with case folding.
	// Default: false
	CaseInsensitive bool

	// Jobs is the number of workers requested. Batches shorter than
	// partition.SequentialThreshold always run on one worker.
	// Default: 1
	Jobs int

	// InPlace consumes the input slice instead of allocating the output
	// from scratch. After an in-place call the input slice must not be used;
	// read the returned value instead.
	// Default: false
	InPlace bool

	// Logger receives plan and timing details at V(1).
	// Default: logr.Discard()
	Logger logr.Logger

	// Pattern tunes pattern compilation. Its CaseInsensitive field is
	// overridden by Options.CaseInsensitive. The zero value selects
	// pattern.DefaultConfig().
	Pattern pattern.Config
}

// DefaultOptions returns sequential, copy-mode, case-sensitive options.
func DefaultOptions() Options {
	return Options{
		Jobs:    1,
		Logger:  logr.Discard(),
		Pattern: pattern.DefaultConfig(),
	}
}

// Validate checks the options. It returns a *JobCountError when Jobs < 1.
func (o Options) Validate() error {
	return partition.Validate(o.Jobs)
}

func (o Options) patternConfig() pattern.Config {
	cfg := o.Pattern
	if cfg == (pattern.Config{}) {
		cfg = pattern.DefaultConfig()
	}
	cfg.CaseInsensitive = o.CaseInsensitive
	return cfg
}
