// Package tokenize counts n-grams over a batch of strings and produces a
// sparse document-term matrix with a dense vocabulary.
//
// Vectorize runs in three phases. Gram extraction and counting run one worker
// per partition range; vocabulary assignment runs once, in row order, between
// them. Token ids therefore depend only on the input, never on the number of
// workers.
package tokenize

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/coregx/yurki/internal/conv"
	"github.com/coregx/yurki/internal/dispatch"
	"github.com/coregx/yurki/internal/partition"
	"github.com/coregx/yurki/internal/sparse"
)

// Row holds the non-zero counts of one input string, sorted by token id.
type Row struct {
	Indices []int32
	Values  []int64
}

// Result is the output of Vectorize.
type Result struct {
	Rows       []Row
	Vocabulary *Vocabulary
}

// Vectorize tokenizes data according to cfg, splitting the work along plan.
// plan must cover [0, len(data)) exactly, as returned by partition.Plan.
func Vectorize(data []string, cfg Config, plan []partition.Range, log logr.Logger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	grams := make([][]string, len(data))
	err := dispatch.ForEach(plan, func(partition.Range) dispatch.ItemFunc {
		a := newAnalyzer(cfg)
		return func(i int) error {
			grams[i] = a.grams(data[i])
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	log.V(1).Info("extracted grams", "rows", len(data), "unit", cfg.Unit.String(), "elapsed", time.Since(start))

	start = time.Now()
	vocab := newVocabulary()
	for _, row := range grams {
		for _, g := range row {
			vocab.add(g)
		}
	}
	log.V(1).Info("built vocabulary", "tokens", vocab.Len(), "elapsed", time.Since(start))

	start = time.Now()
	rows := make([]Row, len(data))
	err = dispatch.ForEach(plan, func(partition.Range) dispatch.ItemFunc {
		counter := sparse.NewCounter(conv.IntToUint32(vocab.Len()))
		return func(i int) error {
			for _, g := range grams[i] {
				id := vocab.ids[g]
				counter.Add(uint32(id))
			}
			n := counter.Len()
			rows[i].Indices, rows[i].Values = counter.AppendSorted(
				make([]int32, 0, n), make([]int64, 0, n), conv.Uint32ToInt32)
			counter.Clear()
			grams[i] = nil
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	log.V(1).Info("counted grams", "rows", len(data), "elapsed", time.Since(start))

	return &Result{Rows: rows, Vocabulary: vocab}, nil
}

// CSR is a compressed sparse row matrix. Row i spans
// Indices[Indptr[i]:Indptr[i+1]] and the matching Values.
type CSR struct {
	Indptr  []int64
	Indices []int32
	Values  []int64
	Rows    int
	Cols    int
}

// NNZ returns the number of stored entries.
func (m CSR) NNZ() int {
	return len(m.Values)
}

// At returns the entry at row i, column j.
func (m CSR) At(i, j int) int64 {
	lo, hi := m.Indptr[i], m.Indptr[i+1]
	for k := lo; k < hi; k++ {
		if int(m.Indices[k]) == j {
			return m.Values[k]
		}
	}
	return 0
}

// CSR flattens the rows into one matrix of shape
// (len(r.Rows), r.Vocabulary.Len()).
func (r *Result) CSR() CSR {
	nnz := 0
	for _, row := range r.Rows {
		nnz += len(row.Indices)
	}
	m := CSR{
		Indptr:  make([]int64, 1, len(r.Rows)+1),
		Indices: make([]int32, 0, nnz),
		Values:  make([]int64, 0, nnz),
		Rows:    len(r.Rows),
		Cols:    r.Vocabulary.Len(),
	}
	for _, row := range r.Rows {
		m.Indices = append(m.Indices, row.Indices...)
		m.Values = append(m.Values, row.Values...)
		m.Indptr = append(m.Indptr, int64(len(m.Indices)))
	}
	return m
}
