// Package jobfile loads batch job descriptions from TOML.
//
// A job file names one operation and its parameters:
//
//	op = "replace"
//	pattern = '(\w+)@(\w+)'
//	replacement = "$2 at $1"
//	count = 0
//	jobs = 4
//
//	[input]
//	format = "jsonl"
//	field = "text"
//	out_field = "result"
//
//	[tokenize]
//	unit = "word"
//	ngram = [1, 2]
//	lowercase = true
//
// Keys left out keep the values of Default. Unknown keys are an error.
package jobfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/coregx/yurki/tokenize"
)

// Operation names.
const (
	OpFind     = "find"
	OpIsMatch  = "is_match"
	OpCapture  = "capture"
	OpSplit    = "split"
	OpReplace  = "replace"
	OpCopy     = "copy"
	OpUpper    = "upper"
	OpTokenize = "tokenize"
)

// Ops lists every operation name.
var Ops = []string{OpFind, OpIsMatch, OpCapture, OpSplit, OpReplace, OpCopy, OpUpper, OpTokenize}

// Input formats.
const (
	FormatLines = "lines"
	FormatJSONL = "jsonl"
)

// Job is one batch operation.
type Job struct {
	Op              string `toml:"op"`
	Pattern         string `toml:"pattern"`
	Replacement     string `toml:"replacement"`
	Count           int    `toml:"count"`
	CaseInsensitive bool   `toml:"case_insensitive"`
	Jobs            int    `toml:"jobs"` // 0 picks a count from the batch size
	InPlace         bool   `toml:"inplace"`

	Input    Input    `toml:"input"`
	Tokenize Tokenize `toml:"tokenize"`
}

// Input describes how items are read and results written.
type Input struct {
	Format   string `toml:"format"`
	Field    string `toml:"field"`     // gjson path of the text in a JSONL record
	OutField string `toml:"out_field"` // sjson path the result is written to
}

// Tokenize holds the tokenize parameters.
type Tokenize struct {
	Unit      string `toml:"unit"`
	Ngram     []int  `toml:"ngram"`
	Lowercase bool   `toml:"lowercase"`
	Normalize bool   `toml:"normalize"`
}

// Default returns a find job over plain lines.
func Default() Job {
	return Job{
		Op:    OpFind,
		Count: 1,
		Input: Input{
			Format:   FormatLines,
			Field:    "text",
			OutField: "result",
		},
		Tokenize: Tokenize{
			Unit:  tokenize.Word.String(),
			Ngram: []int{1, 1},
		},
	}
}

// Load reads and validates the job file at path.
func Load(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, &Error{Path: path, Message: "cannot read file", Err: err}
	}
	return Parse(path, data)
}

// Parse decodes and validates a job file. source names it in errors.
func Parse(source string, data []byte) (Job, error) {
	job := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&job); err != nil {
		e := &Error{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			e.Line, e.Column = derr.Position()
		}
		return Job{}, e
	}
	if err := job.Validate(); err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Path = source
		}
		return Job{}, err
	}
	return job, nil
}

// Validate checks field values. Pattern syntax is checked when the job runs.
func (j Job) Validate() error {
	if !slices.Contains(Ops, j.Op) {
		return &Error{Field: "op", Message: fmt.Sprintf("unknown operation %q", j.Op)}
	}
	if j.NeedsPattern() && j.Pattern == "" {
		return &Error{Field: "pattern", Message: "required for " + j.Op}
	}
	if j.Count < 0 {
		return &Error{Field: "count", Message: "must not be negative"}
	}
	if j.Jobs < 0 {
		return &Error{Field: "jobs", Message: "must not be negative"}
	}
	if j.Input.Format != FormatLines && j.Input.Format != FormatJSONL {
		return &Error{Field: "input.format", Message: fmt.Sprintf("unknown format %q", j.Input.Format)}
	}
	if j.Input.Format == FormatJSONL && (j.Input.Field == "" || j.Input.OutField == "") {
		return &Error{Field: "input.field", Message: "field and out_field are required for jsonl"}
	}
	if _, err := j.TokenizeConfig(); err != nil {
		return &Error{Field: "tokenize", Message: err.Error(), Err: err}
	}
	return nil
}

// NeedsPattern reports whether the operation takes a pattern.
func (j Job) NeedsPattern() bool {
	switch j.Op {
	case OpFind, OpIsMatch, OpCapture, OpSplit, OpReplace:
		return true
	}
	return false
}

// TokenizeConfig converts the [tokenize] table.
func (j Job) TokenizeConfig() (tokenize.Config, error) {
	unit, err := tokenize.ParseUnit(j.Tokenize.Unit)
	if err != nil {
		return tokenize.Config{}, err
	}
	if len(j.Tokenize.Ngram) != 2 {
		return tokenize.Config{}, &tokenize.ConfigError{Field: "Ngram", Message: "must be [min, max]"}
	}
	cfg := tokenize.Config{
		Unit:      unit,
		MinN:      j.Tokenize.Ngram[0],
		MaxN:      j.Tokenize.Ngram[1],
		Lowercase: j.Tokenize.Lowercase,
		Normalize: j.Tokenize.Normalize,
	}
	return cfg, cfg.Validate()
}

// Error reports a job file that cannot be read, decoded or validated.
type Error struct {
	Path    string
	Line    int
	Column  int
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	where := e.Path
	if where == "" {
		where = "job"
	}
	switch {
	case e.Line > 0:
		return fmt.Sprintf("yurki: %s:%d:%d: %s", where, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("yurki: %s: %s: %s", where, e.Field, e.Message)
	default:
		return fmt.Sprintf("yurki: %s: %s", where, e.Message)
	}
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}
