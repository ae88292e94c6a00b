// Package engine runs text operations over batches of strings in parallel.
//
// Every operation takes the batch, its own parameters and an Options value.
// The pattern is compiled and the job count checked before any worker starts;
// a failure there returns an error without touching the batch. The batch is
// then split into contiguous ranges (see internal/partition), one worker per
// range, and each worker writes only the output slots of its own range.
// Output item i always corresponds to input item i, whatever the job count.
//
// No partial results are returned: when an error is returned the result is
// nil. In in-place mode the input slice is consumed even when the call fails.
package engine

import (
	"fmt"

	"github.com/coregx/yurki/ops"
	"github.com/coregx/yurki/pattern"
	"github.com/coregx/yurki/tokenize"
)

func compile(expr string, opts Options) (*pattern.Pattern, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return pattern.CompileWithConfig(expr, opts.patternConfig())
}

// Find returns the leftmost match of expr in each item, or "" when there is
// none. An empty match is indistinguishable from no match here; use ops.Find
// for a single string when it matters.
func Find(data []string, expr string, opts Options) ([]string, error) {
	p, err := compile(expr, opts)
	if err != nil {
		return nil, err
	}
	c, err := begin("find", data, opts)
	if err != nil {
		return nil, err
	}
	return mapStrings(c, data, func() func(string) string {
		return func(s string) string {
			m, _ := ops.Find(s, p)
			return m
		}
	})
}

// IsMatch reports whether expr matches anywhere in each item.
func IsMatch(data []string, expr string, opts Options) ([]bool, error) {
	p, err := compile(expr, opts)
	if err != nil {
		return nil, err
	}
	c, err := begin("is_match", data, opts)
	if err != nil {
		return nil, err
	}
	return mapItems(c, data, func() func(string) bool {
		return func(s string) bool {
			return ops.IsMatch(s, p)
		}
	})
}

// Capture returns the capture groups of the first match in each item, group
// 0 included. Items without a match yield an empty slice; groups that did not
// participate yield "".
func Capture(data []string, expr string, opts Options) ([][]string, error) {
	p, err := compile(expr, opts)
	if err != nil {
		return nil, err
	}
	c, err := begin("capture", data, opts)
	if err != nil {
		return nil, err
	}
	return mapItems(c, data, func() func(string) []string {
		return func(s string) []string {
			return c.ownAll(ops.Capture(s, p), s)
		}
	})
}

// Split splits each item around the matches of expr.
func Split(data []string, expr string, opts Options) ([][]string, error) {
	p, err := compile(expr, opts)
	if err != nil {
		return nil, err
	}
	c, err := begin("split", data, opts)
	if err != nil {
		return nil, err
	}
	return mapItems(c, data, func() func(string) []string {
		return func(s string) []string {
			return c.ownAll(ops.Split(s, p), s)
		}
	})
}

// Replace substitutes repl for the first count matches of expr in each item,
// or for every match when count is 0. repl may reference groups as $1, $name
// or ${name}; $$ is a literal dollar sign.
func Replace(data []string, expr, repl string, count int, opts Options) ([]string, error) {
	if count < 0 {
		return nil, fmt.Errorf("yurki: %w: %d", ErrInvalidCount, count)
	}
	p, err := compile(expr, opts)
	if err != nil {
		return nil, err
	}
	t := ops.ParseTemplate(repl)
	c, err := begin("replace", data, opts)
	if err != nil {
		return nil, err
	}
	return mapStrings(c, data, func() func(string) string {
		return func(s string) string {
			return ops.Replace(s, p, t, count)
		}
	})
}

// Copy duplicates the storage of each item.
func Copy(data []string, opts Options) ([]string, error) {
	c, err := begin("copy", data, opts)
	if err != nil {
		return nil, err
	}
	return mapStrings(c, data, func() func(string) string {
		return ops.Copy
	})
}

// Upper applies Unicode default uppercase mapping to each item.
func Upper(data []string, opts Options) ([]string, error) {
	c, err := begin("upper", data, opts)
	if err != nil {
		return nil, err
	}
	return mapStrings(c, data, func() func(string) string {
		return ops.NewUpper().Apply
	})
}

// Tokenize counts the n-grams of every item against a vocabulary shared by
// the whole batch. Vocabulary ids are assigned in first-seen batch order and
// do not depend on opts.Jobs.
func Tokenize(data []string, cfg tokenize.Config, opts Options) (*tokenize.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := begin("tokenize", data, opts)
	if err != nil {
		return nil, err
	}
	if !c.inPlace {
		if err := c.checkEncoding(data); err != nil {
			return nil, c.end(err)
		}
	}

	res, err := tokenize.Vectorize(data, cfg, c.plan, c.log)
	if err != nil {
		return nil, c.end(err)
	}
	if c.inPlace {
		clear(data)
	}
	return res, c.end(nil)
}
