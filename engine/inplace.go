package engine

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-logr/logr"

	"github.com/coregx/yurki/internal/conv"
	"github.com/coregx/yurki/internal/dispatch"
	"github.com/coregx/yurki/internal/partition"
)

// call is the state of one batch operation: its plan and ownership mode.
type call struct {
	log     logr.Logger
	plan    []partition.Range
	inPlace bool
	start   time.Time
}

// begin validates opts and plans data. In in-place mode it also checks the
// encoding of the whole batch, so nothing is mutated when an item is bad.
func begin(op string, data []string, opts Options) (*call, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	plan, err := partition.Plan(len(data), opts.Jobs)
	if err != nil {
		return nil, err
	}

	c := &call{
		log:     opts.Logger.WithValues("op", op),
		plan:    plan,
		inPlace: opts.InPlace,
		start:   time.Now(),
	}
	c.log.V(1).Info("dispatching", "items", len(data), "jobs", opts.Jobs, "workers", len(plan), "inplace", opts.InPlace)

	if c.inPlace {
		if err := c.checkEncoding(data); err != nil {
			return nil, c.end(err)
		}
	}
	return c, nil
}

// end logs the outcome of the call and returns err.
func (c *call) end(err error) error {
	if err != nil {
		c.log.V(1).Info("failed", "error", err.Error(), "elapsed", time.Since(c.start))
		return err
	}
	c.log.V(1).Info("done", "elapsed", time.Since(c.start))
	return nil
}

func (c *call) checkEncoding(data []string) error {
	return dispatch.ForEach(c.plan, func(partition.Range) dispatch.ItemFunc {
		return func(i int) error {
			if !utf8.ValidString(data[i]) {
				return &EncodingError{Index: i}
			}
			return nil
		}
	})
}

// valid checks item i unless the batch was checked up front.
func (c *call) valid(data []string, i int) error {
	if !c.inPlace && !utf8.ValidString(data[i]) {
		return &EncodingError{Index: i}
	}
	return nil
}

// own detaches r from src in copy mode when r is a slice of src, so results
// never keep the caller's input alive. In-place results may alias.
func (c *call) own(r, src string) string {
	if r == "" {
		return ""
	}
	if !c.inPlace && conv.Within(r, src) {
		return strings.Clone(r)
	}
	return r
}

// ownAll applies own to each element of rs.
func (c *call) ownAll(rs []string, src string) []string {
	for k, r := range rs {
		rs[k] = c.own(r, src)
	}
	return rs
}

// mapStrings applies a string transform to every item. newItem is called once
// per worker. In-place mode writes each result back into data and returns
// data itself; copy mode fills a new slice and leaves data untouched.
func mapStrings(c *call, data []string, newItem func() func(string) string) ([]string, error) {
	out := data
	if !c.inPlace {
		out = make([]string, len(data))
	}

	err := dispatch.ForEach(c.plan, func(partition.Range) dispatch.ItemFunc {
		f := newItem()
		return func(i int) error {
			if err := c.valid(data, i); err != nil {
				return err
			}
			s := data[i]
			out[i] = c.own(f(s), s)
			return nil
		}
	})
	if err != nil {
		return nil, c.end(err)
	}
	return out, c.end(nil)
}

// mapItems applies a transform with a non-string result to every item. In
// in-place mode each input slot is cleared once its item has been consumed.
func mapItems[T any](c *call, data []string, newItem func() func(string) T) ([]T, error) {
	out := make([]T, len(data))

	err := dispatch.ForEach(c.plan, func(partition.Range) dispatch.ItemFunc {
		f := newItem()
		return func(i int) error {
			if err := c.valid(data, i); err != nil {
				return err
			}
			out[i] = f(data[i])
			if c.inPlace {
				data[i] = ""
			}
			return nil
		}
	})
	if err != nil {
		return nil, c.end(err)
	}
	return out, c.end(nil)
}
