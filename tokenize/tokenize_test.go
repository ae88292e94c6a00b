package tokenize

import (
	"fmt"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/yurki/internal/partition"
)

func vectorize(t *testing.T, data []string, cfg Config, jobs int) *Result {
	t.Helper()
	plan, err := partition.Plan(len(data), jobs)
	require.NoError(t, err)
	res, err := Vectorize(data, cfg, plan, logr.Discard())
	require.NoError(t, err)
	return res
}

// counts maps row tokens back to strings for readable assertions.
func counts(res *Result, row int) map[string]int64 {
	out := make(map[string]int64)
	r := res.Rows[row]
	for k, id := range r.Indices {
		out[res.Vocabulary.Token(id)] = r.Values[k]
	}
	return out
}

func TestVectorizeWords(t *testing.T) {
	res := vectorize(t, []string{"the cat sat on the mat", "Hello, world!", ""}, DefaultConfig(), 1)

	assert.Equal(t, []string{"the", "cat", "sat", "on", "mat", "Hello", "world"}, res.Vocabulary.Tokens())
	assert.Equal(t, map[string]int64{"the": 2, "cat": 1, "sat": 1, "on": 1, "mat": 1}, counts(res, 0))
	assert.Equal(t, map[string]int64{"Hello": 1, "world": 1}, counts(res, 1))
	assert.Empty(t, res.Rows[2].Indices)
	assert.Empty(t, res.Rows[2].Values)
}

func TestVectorizeWordNgrams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinN, cfg.MaxN = 1, 2
	res := vectorize(t, []string{"a b a b"}, cfg, 1)

	assert.Equal(t, []string{"a", "b", "a b", "b a"}, res.Vocabulary.Tokens())
	assert.Equal(t, map[string]int64{"a": 2, "b": 2, "a b": 2, "b a": 1}, counts(res, 0))
}

func TestVectorizeNgramLongerThanRow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinN, cfg.MaxN = 3, 3
	res := vectorize(t, []string{"one two", "one two three"}, cfg, 1)

	assert.Empty(t, res.Rows[0].Indices)
	assert.Equal(t, []string{"one two three"}, res.Vocabulary.Tokens())
}

func TestVectorizeChars(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Unit = Char
	cfg.MinN, cfg.MaxN = 1, 2
	res := vectorize(t, []string{"abab"}, cfg, 1)

	assert.Equal(t, []string{"a", "b", "ab", "ba"}, res.Vocabulary.Tokens())
	assert.Equal(t, map[string]int64{"a": 2, "b": 2, "ab": 2, "ba": 1}, counts(res, 0))
}

func TestVectorizeGraphemeClusters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Unit = Char
	res := vectorize(t, []string{"éx", "🇩🇪🇩🇪"}, cfg, 1)

	assert.Equal(t, []string{"é", "x", "🇩🇪"}, res.Vocabulary.Tokens())
	assert.Equal(t, map[string]int64{"🇩🇪": 2}, counts(res, 1))
}

func TestVectorizeLowercaseNormalize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lowercase = true
	cfg.Normalize = true
	// Decomposed and precomposed forms fold to the same token.
	res := vectorize(t, []string{"Cafe\u0301 CAF\u00c9 caf\u00e9"}, cfg, 1)

	assert.Equal(t, []string{"caf\u00e9"}, res.Vocabulary.Tokens())
	assert.Equal(t, map[string]int64{"caf\u00e9": 3}, counts(res, 0))
}

func TestVectorizeRowsSorted(t *testing.T) {
	res := vectorize(t, []string{"x y", "y z x"}, DefaultConfig(), 1)

	// ids: x=0 y=1 z=2; the second row is seen in y z x order.
	assert.Equal(t, []int32{0, 1, 2}, res.Rows[1].Indices)
	assert.Equal(t, []int64{1, 1, 1}, res.Rows[1].Values)
}

func TestVectorizeWorkerInvariance(t *testing.T) {
	data := make([]string, 5000)
	for i := range data {
		data[i] = fmt.Sprintf("w%d w%d shared w%d", i%97, i%13, i%7)
	}
	cfg := DefaultConfig()
	cfg.MaxN = 2

	want := vectorize(t, data, cfg, 1)
	for _, jobs := range []int{2, 4, 8} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			got := vectorize(t, data, cfg, jobs)
			assert.Equal(t, want.Vocabulary.Tokens(), got.Vocabulary.Tokens())
			assert.Equal(t, want.Rows, got.Rows)
		})
	}
}

func TestVectorizeVocabularyDense(t *testing.T) {
	res := vectorize(t, []string{"b a", "c a", "d"}, DefaultConfig(), 1)

	m := res.Vocabulary.Map()
	assert.Len(t, m, res.Vocabulary.Len())
	seen := make([]bool, len(m))
	for tok, id := range m {
		require.Less(t, id, len(seen))
		seen[id] = true
		got, ok := res.Vocabulary.ID(tok)
		assert.True(t, ok)
		assert.Equal(t, int32(id), got)
	}
	for id, ok := range seen {
		assert.True(t, ok, "id %d unused", id)
	}

	_, ok := res.Vocabulary.ID("missing")
	assert.False(t, ok)
}

func TestVectorizeEmptyBatch(t *testing.T) {
	res := vectorize(t, nil, DefaultConfig(), 4)
	assert.Empty(t, res.Rows)
	assert.Equal(t, 0, res.Vocabulary.Len())

	m := res.CSR()
	assert.Equal(t, []int64{0}, m.Indptr)
	assert.Equal(t, 0, m.Rows)
	assert.Equal(t, 0, m.Cols)
}

func TestVectorizeInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinN = 0
	_, err := Vectorize([]string{"a"}, cfg, []partition.Range{{Start: 0, End: 1}}, logr.Discard())

	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "MinN", cerr.Field)
}

func TestCSR(t *testing.T) {
	res := vectorize(t, []string{"a b a", "", "c"}, DefaultConfig(), 1)
	m := res.CSR()

	assert.Equal(t, 3, m.Rows)
	assert.Equal(t, 3, m.Cols)
	assert.Equal(t, []int64{0, 2, 2, 3}, m.Indptr)
	assert.Equal(t, []int32{0, 1, 2}, m.Indices)
	assert.Equal(t, []int64{2, 1, 1}, m.Values)
	assert.Equal(t, 3, m.NNZ())
	assert.Equal(t, int64(2), m.At(0, 0))
	assert.Equal(t, int64(0), m.At(1, 0))
	assert.Equal(t, int64(1), m.At(2, 2))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"default", DefaultConfig(), ""},
		{"bigrams", Config{Unit: Char, MinN: 2, MaxN: 2}, ""},
		{"zero min", Config{MinN: 0, MaxN: 1}, "MinN"},
		{"max below min", Config{MinN: 3, MaxN: 2}, "MaxN"},
		{"bad unit", Config{Unit: Unit(9), MinN: 1, MaxN: 1}, "Unit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestParseUnit(t *testing.T) {
	for in, want := range map[string]Unit{"": Word, "word": Word, "char": Char} {
		got, err := ParseUnit(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		if in != "" {
			assert.Equal(t, in, got.String())
		}
	}
	_, err := ParseUnit("sentence")
	assert.Error(t, err)
	assert.Equal(t, "Unit(7)", Unit(7).String())
}
