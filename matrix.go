package yurki

import (
	"github.com/coregx/yurki/engine"
)

// Matrix is a document-term count matrix in compressed sparse row form.
// The columns of row i are Indices[Indptr[i]:Indptr[i+1]], with the counts at
// the same positions in Data.
type Matrix struct {
	Data    []int64
	Indices []int32
	Indptr  []int64
	Shape   [2]int
}

// NNZ returns the number of stored counts.
func (m *Matrix) NNZ() int {
	return len(m.Data)
}

// Row returns the column ids and counts of row i.
func (m *Matrix) Row(i int) ([]int32, []int64) {
	lo, hi := m.Indptr[i], m.Indptr[i+1]
	return m.Indices[lo:hi], m.Data[lo:hi]
}

// Dense expands the matrix. Intended for small matrices.
func (m *Matrix) Dense() [][]int64 {
	out := make([][]int64, m.Shape[0])
	for i := range out {
		out[i] = make([]int64, m.Shape[1])
		cols, vals := m.Row(i)
		for k, j := range cols {
			out[i][j] = vals[k]
		}
	}
	return out
}

// CountVectorize counts the n-grams of every item. It returns the counts as a
// sparse matrix with one row per item and one column per token, and the
// token to column mapping.
func CountVectorize(data []string, opts ...Option) (*Matrix, map[string]int, error) {
	s := newSettings(opts)
	res, err := engine.Tokenize(data, s.tokenize, s.engine(len(data)))
	if err != nil {
		return nil, nil, err
	}
	csr := res.CSR()
	m := &Matrix{
		Data:    csr.Values,
		Indices: csr.Indices,
		Indptr:  csr.Indptr,
		Shape:   [2]int{csr.Rows, csr.Cols},
	}
	return m, res.Vocabulary.Map(), nil
}
