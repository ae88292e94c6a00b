// Command yurki applies one batch text operation to every line of its input.
//
// Usage:
//
//	yurki [-config job.toml] [-op name] [-pattern p] [flags] [file]
//
// Input is read from file, or standard input when no file is given. Each line
// is one item; with -format jsonl each line is a JSON record whose text is at
// the gjson path given by -field. Results are written one per line in input
// order. JSONL records are written back with the result stored at -out-field.
// The tokenize operation writes a single JSON document holding the sparse
// count matrix and the vocabulary.
//
// Flags override values from the -config job file.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/coregx/yurki/internal/jobfile"
)

const scannerBufSize = 16 << 20 // longest accepted line

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	job, input, verbosity, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	log := funcr.New(func(prefix, args string) {
		fmt.Fprintln(stderr, prefix, args)
	}, funcr.Options{Verbosity: verbosity}).WithName("yurki")

	if err := execute(job, input, stdin, stdout, log); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseArgs builds the job from the optional job file and the flags, and
// returns the input path ("" for stdin) and log verbosity.
func parseArgs(args []string, stderr io.Writer) (jobfile.Job, string, int, error) {
	fs := flag.NewFlagSet("yurki", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		flagJob   = jobfile.Default()
		config    string
		ngram     string
		verbosity int
	)
	fs.StringVar(&config, "config", "", "TOML job file")
	fs.StringVar(&flagJob.Op, "op", flagJob.Op, "operation: "+strings.Join(jobfile.Ops, ", "))
	fs.StringVar(&flagJob.Pattern, "pattern", "", "regular expression")
	fs.StringVar(&flagJob.Replacement, "replacement", "", "replacement template for replace ($1, ${name})")
	fs.IntVar(&flagJob.Count, "count", flagJob.Count, "replacements per item, 0 for all")
	fs.BoolVar(&flagJob.CaseInsensitive, "case", false, "case-insensitive matching")
	fs.IntVar(&flagJob.Jobs, "jobs", 0, "worker count, 0 to choose from the batch size")
	fs.BoolVar(&flagJob.InPlace, "inplace", false, "reuse input storage for results")
	fs.StringVar(&flagJob.Input.Format, "format", flagJob.Input.Format, "input format: lines or jsonl")
	fs.StringVar(&flagJob.Input.Field, "field", flagJob.Input.Field, "gjson path of the text in jsonl records")
	fs.StringVar(&flagJob.Input.OutField, "out-field", flagJob.Input.OutField, "sjson path the result is written to")
	fs.StringVar(&ngram, "ngram", "1,1", "n-gram range min,max for tokenize")
	fs.StringVar(&flagJob.Tokenize.Unit, "unit", flagJob.Tokenize.Unit, "tokenize unit: word or char")
	fs.BoolVar(&flagJob.Tokenize.Lowercase, "lowercase", false, "lowercase before tokenizing")
	fs.IntVar(&verbosity, "v", 0, "log verbosity")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: yurki [options] [file]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  yurki -op find -pattern '\\d+' data.txt\n")
		fmt.Fprintf(stderr, "  yurki -op replace -pattern '(\\w+)@' -replacement '$1 at ' -count 0 data.txt\n")
		fmt.Fprintf(stderr, "  yurki -op tokenize -ngram 1,2 -format jsonl -field body data.jsonl\n")
	}

	if err := fs.Parse(args); err != nil {
		return jobfile.Job{}, "", 0, err
	}
	if fs.NArg() > 1 {
		return jobfile.Job{}, "", 0, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}

	job := jobfile.Default()
	if config != "" {
		var err error
		if job, err = jobfile.Load(config); err != nil {
			return jobfile.Job{}, "", 0, err
		}
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "op":
			job.Op = flagJob.Op
		case "pattern":
			job.Pattern = flagJob.Pattern
		case "replacement":
			job.Replacement = flagJob.Replacement
		case "count":
			job.Count = flagJob.Count
		case "case":
			job.CaseInsensitive = flagJob.CaseInsensitive
		case "jobs":
			job.Jobs = flagJob.Jobs
		case "inplace":
			job.InPlace = flagJob.InPlace
		case "format":
			job.Input.Format = flagJob.Input.Format
		case "field":
			job.Input.Field = flagJob.Input.Field
		case "out-field":
			job.Input.OutField = flagJob.Input.OutField
		case "unit":
			job.Tokenize.Unit = flagJob.Tokenize.Unit
		case "lowercase":
			job.Tokenize.Lowercase = flagJob.Tokenize.Lowercase
		case "ngram":
			if job.Tokenize.Ngram, err = parseRange(ngram); err != nil {
				err = fmt.Errorf("-ngram: %w", err)
			}
		}
	})
	if err != nil {
		return jobfile.Job{}, "", 0, err
	}
	if err := job.Validate(); err != nil {
		return jobfile.Job{}, "", 0, err
	}
	return job, fs.Arg(0), verbosity, nil
}

// parseRange parses "min,max" or a single "n".
func parseRange(s string) ([]int, error) {
	lo, hi, found := strings.Cut(s, ",")
	if !found {
		hi = lo
	}
	minN, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return nil, fmt.Errorf("invalid range %q", s)
	}
	maxN, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return nil, fmt.Errorf("invalid range %q", s)
	}
	return []int{minN, maxN}, nil
}

func execute(job jobfile.Job, input string, stdin io.Reader, stdout io.Writer, log logr.Logger) error {
	r := stdin
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	b, err := readBatch(r, job.Input)
	if err != nil {
		return err
	}
	log.V(1).Info("read batch", "items", len(b.items), "format", job.Input.Format)

	w := bufio.NewWriter(stdout)
	if err := apply(job, b, w, log); err != nil {
		return err
	}
	return w.Flush()
}
