// Package yurki processes large batches of strings in parallel: regex search,
// match testing, capture, splitting, replacement, case mapping and n-gram
// counting.
//
// The functions here pick a worker count from the batch size and forward to
// package engine, which takes every parameter explicitly.
//
// Example:
//
//	data := []string{"hello world", "test 123"}
//	nums, _ := yurki.Find(data, `\d+`)
//	// nums == []string{"", "123"}
//	out, _ := yurki.Replace(data, `hello`, "hi")
//	// out == []string{"hi world", "test 123"}
package yurki

import (
	"github.com/coregx/yurki/engine"
)

// Find returns the first match of pattern in each item, "" when none.
func Find(data []string, pattern string, opts ...Option) ([]string, error) {
	s := newSettings(opts)
	return engine.Find(data, pattern, s.engine(len(data)))
}

// IsMatch reports whether pattern matches each item.
func IsMatch(data []string, pattern string, opts ...Option) ([]bool, error) {
	s := newSettings(opts)
	return engine.IsMatch(data, pattern, s.engine(len(data)))
}

// Capture returns the groups of the first match in each item, the whole match
// first. Items without a match yield an empty slice.
func Capture(data []string, pattern string, opts ...Option) ([][]string, error) {
	s := newSettings(opts)
	return engine.Capture(data, pattern, s.engine(len(data)))
}

// Split splits each item around the matches of pattern.
func Split(data []string, pattern string, opts ...Option) ([][]string, error) {
	s := newSettings(opts)
	return engine.Split(data, pattern, s.engine(len(data)))
}

// Replace replaces matches of pattern with replacement, which may refer to
// groups as $1 or ${name}. Only the first match per item is replaced unless
// WithCount says otherwise.
func Replace(data []string, pattern, replacement string, opts ...Option) ([]string, error) {
	s := newSettings(opts)
	return engine.Replace(data, pattern, replacement, s.count, s.engine(len(data)))
}

// Copy duplicates every item.
func Copy(data []string, opts ...Option) ([]string, error) {
	s := newSettings(opts)
	return engine.Copy(data, s.engine(len(data)))
}

// Upper uppercases every item with Unicode default case mapping.
func Upper(data []string, opts ...Option) ([]string, error) {
	s := newSettings(opts)
	return engine.Upper(data, s.engine(len(data)))
}
