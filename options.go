package yurki

import (
	"github.com/go-logr/logr"

	"github.com/coregx/yurki/engine"
	"github.com/coregx/yurki/internal/cpus"
	"github.com/coregx/yurki/internal/partition"
	"github.com/coregx/yurki/tokenize"
)

// Option configures a call.
type Option func(*settings)

type settings struct {
	caseInsensitive bool
	jobs            int
	jobsSet         bool
	inPlace         bool
	count           int
	logger          logr.Logger
	tokenize        tokenize.Config
}

func newSettings(opts []Option) settings {
	s := settings{
		count:    1,
		logger:   logr.Discard(),
		tokenize: tokenize.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) engine(n int) engine.Options {
	o := engine.DefaultOptions()
	o.CaseInsensitive = s.caseInsensitive
	o.InPlace = s.inPlace
	o.Logger = s.logger
	o.Jobs = AutoJobs(n)
	if s.jobsSet {
		o.Jobs = s.jobs
	}
	return o
}

// WithCase makes pattern matching case-insensitive when ci is true.
func WithCase(ci bool) Option {
	return func(s *settings) { s.caseInsensitive = ci }
}

// WithJobs sets the number of workers explicitly. Values below one are
// rejected by the call.
func WithJobs(n int) Option {
	return func(s *settings) { s.jobs, s.jobsSet = n, true }
}

// WithInPlace consumes the input slice. See engine.Options.InPlace.
func WithInPlace(inPlace bool) Option {
	return func(s *settings) { s.inPlace = inPlace }
}

// WithCount bounds the number of replacements per item; 0 replaces all.
// Default: 1
func WithCount(n int) Option {
	return func(s *settings) { s.count = n }
}

// WithLogger routes engine diagnostics to l.
func WithLogger(l logr.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithNgramRange sets the inclusive n-gram size range for CountVectorize.
// Default: 1, 1
func WithNgramRange(minN, maxN int) Option {
	return func(s *settings) { s.tokenize.MinN, s.tokenize.MaxN = minN, maxN }
}

// WithUnit selects word or character n-grams for CountVectorize.
// Default: tokenize.Word
func WithUnit(u tokenize.Unit) Option {
	return func(s *settings) { s.tokenize.Unit = u }
}

// WithLowercase lowercases text before CountVectorize counts it.
func WithLowercase(lower bool) Option {
	return func(s *settings) { s.tokenize.Lowercase = lower }
}

// WithNormalize applies NFC normalization before CountVectorize counts.
func WithNormalize(normalize bool) Option {
	return func(s *settings) { s.tokenize.Normalize = normalize }
}

// AutoJobs returns the worker count used when WithJobs is not given: one
// below partition.SequentialThreshold items, the available parallelism
// otherwise.
func AutoJobs(n int) int {
	if n < partition.SequentialThreshold {
		return 1
	}
	return cpus.Available()
}
