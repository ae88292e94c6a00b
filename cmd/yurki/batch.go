package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/coregx/yurki"
	"github.com/coregx/yurki/internal/jobfile"
)

// batch is the parsed input. records holds the raw JSONL lines, parallel to
// items, and is nil for plain lines.
type batch struct {
	items   []string
	records []string
}

func readBatch(r io.Reader, in jobfile.Input) (*batch, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), scannerBufSize)

	b := &batch{}
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if in.Format != jobfile.FormatJSONL {
			b.items = append(b.items, text)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		if !gjson.Valid(text) {
			return nil, fmt.Errorf("line %d: invalid JSON", line)
		}
		v := gjson.Get(text, in.Field)
		if !v.Exists() {
			return nil, fmt.Errorf("line %d: no value at %q", line, in.Field)
		}
		b.records = append(b.records, text)
		b.items = append(b.items, v.String())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return b, nil
}

func collect[T any](out []T, err error) ([]any, error) {
	if err != nil {
		return nil, err
	}
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v
	}
	return results, nil
}

// apply runs the job over the batch and writes the results to w.
func apply(job jobfile.Job, b *batch, w io.Writer, log logr.Logger) error {
	opts := []yurki.Option{
		yurki.WithCase(job.CaseInsensitive),
		yurki.WithInPlace(job.InPlace),
		yurki.WithCount(job.Count),
		yurki.WithLogger(log),
	}
	if job.Jobs > 0 {
		opts = append(opts, yurki.WithJobs(job.Jobs))
	}

	var (
		results []any
		err     error
	)
	switch job.Op {
	case jobfile.OpFind:
		results, err = collect(yurki.Find(b.items, job.Pattern, opts...))
	case jobfile.OpIsMatch:
		results, err = collect(yurki.IsMatch(b.items, job.Pattern, opts...))
	case jobfile.OpCapture:
		results, err = collect(yurki.Capture(b.items, job.Pattern, opts...))
	case jobfile.OpSplit:
		results, err = collect(yurki.Split(b.items, job.Pattern, opts...))
	case jobfile.OpReplace:
		results, err = collect(yurki.Replace(b.items, job.Pattern, job.Replacement, opts...))
	case jobfile.OpCopy:
		results, err = collect(yurki.Copy(b.items, opts...))
	case jobfile.OpUpper:
		results, err = collect(yurki.Upper(b.items, opts...))
	case jobfile.OpTokenize:
		return writeMatrix(w, job, b, opts)
	default:
		return fmt.Errorf("unknown operation %q", job.Op)
	}
	if err != nil {
		return err
	}
	return writeResults(w, job.Input, b, results)
}

func writeResults(w io.Writer, in jobfile.Input, b *batch, results []any) error {
	for i, v := range results {
		var line string
		if b.records != nil {
			rec, err := sjson.Set(b.records[i], in.OutField, v)
			if err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}
			line = rec
		} else {
			var err error
			if line, err = formatLine(v); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func formatLine(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		data, err := json.Marshal(v)
		return string(data), err
	}
}

// writeMatrix counts n-grams and writes the matrix as one JSON document:
// {"shape":[rows,cols],"indptr":[...],"indices":[...],"data":[...],"vocabulary":{...}}
func writeMatrix(w io.Writer, job jobfile.Job, b *batch, opts []yurki.Option) error {
	cfg, err := job.TokenizeConfig()
	if err != nil {
		return err
	}
	opts = append(opts,
		yurki.WithUnit(cfg.Unit),
		yurki.WithNgramRange(cfg.MinN, cfg.MaxN),
		yurki.WithLowercase(cfg.Lowercase),
		yurki.WithNormalize(cfg.Normalize),
	)
	m, vocab, err := yurki.CountVectorize(b.items, opts...)
	if err != nil {
		return err
	}

	doc := "{}"
	fields := []struct {
		path  string
		value any
	}{
		{"shape", m.Shape},
		{"indptr", m.Indptr},
		{"indices", m.Indices},
		{"data", m.Data},
		{"vocabulary", vocab},
	}
	for _, f := range fields {
		if doc, err = sjson.Set(doc, f.path, f.value); err != nil {
			return fmt.Errorf("encoding %s: %w", f.path, err)
		}
	}
	_, err = io.WriteString(w, doc+"\n")
	return err
}
