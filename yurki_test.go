package yurki

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/yurki/engine"
	"github.com/coregx/yurki/internal/cpus"
	"github.com/coregx/yurki/tokenize"
)

func TestAutoJobs(t *testing.T) {
	assert.Equal(t, 1, AutoJobs(0))
	assert.Equal(t, 1, AutoJobs(999))
	assert.Equal(t, cpus.Available(), AutoJobs(1000))
	assert.GreaterOrEqual(t, AutoJobs(1_000_000), 1)
}

func TestSettingsDefaults(t *testing.T) {
	s := newSettings(nil)
	assert.Equal(t, 1, s.count)
	assert.Equal(t, tokenize.DefaultConfig(), s.tokenize)

	o := s.engine(10)
	assert.Equal(t, 1, o.Jobs)
	assert.False(t, o.InPlace)
	assert.False(t, o.CaseInsensitive)

	o = newSettings([]Option{WithJobs(3), WithInPlace(true), WithCase(true)}).engine(10)
	assert.Equal(t, 3, o.Jobs)
	assert.True(t, o.InPlace)
	assert.True(t, o.CaseInsensitive)
}

func TestWithJobsZero(t *testing.T) {
	_, err := Find([]string{"a"}, `a`, WithJobs(0))
	require.ErrorIs(t, err, engine.ErrInvalidJobs)
	var jerr *engine.JobCountError
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, 0, jerr.Jobs)
}

func TestAutoJobsMatchesSequential(t *testing.T) {
	data := make([]string, 3000)
	for i := range data {
		data[i] = fmt.Sprintf("row %d: value=%d", i, i*i)
	}
	auto, err := Replace(data, `(\d+)`, "<$1>", WithCount(0))
	require.NoError(t, err)
	seq, err := Replace(data, `(\d+)`, "<$1>", WithCount(0), WithJobs(1))
	require.NoError(t, err)
	assert.Equal(t, seq, auto)
	assert.Equal(t, "row <7>: value=<49>", auto[7])
}

func TestForwarding(t *testing.T) {
	data := []string{"Alpha beta", "GAMMA"}

	found, err := Find(data, `alpha|gamma`, WithCase(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "GAMMA"}, found)

	matched, err := IsMatch(data, `beta`)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, matched)

	caps, err := Capture(data, `(\w+) (\w+)`)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Alpha beta", "Alpha", "beta"}, {}}, caps)

	parts, err := Split(data, ` `)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Alpha", "beta"}, {"GAMMA"}}, parts)

	copied, err := Copy(data)
	require.NoError(t, err)
	assert.Equal(t, data, copied)

	upper, err := Upper(data, WithInPlace(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"ALPHA BETA", "GAMMA"}, upper)
	assert.Same(t, &data[0], &upper[0])
}

func TestReplaceDefaultCount(t *testing.T) {
	out, err := Replace([]string{"a a a"}, `a`, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b a a"}, out)

	out, err = Replace([]string{"a a a"}, `a`, "b", WithCount(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"b b a"}, out)

	_, err = Replace([]string{"a"}, `a`, "b", WithCount(-1))
	assert.ErrorIs(t, err, engine.ErrInvalidCount)
}

func TestCountVectorize(t *testing.T) {
	m, vocab, err := CountVectorize([]string{"The cat", "the CAT sat", ""}, WithLowercase(true), WithNgramRange(1, 2))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"the": 0, "cat": 1, "the cat": 2, "sat": 3, "cat sat": 4}, vocab)
	assert.Equal(t, [2]int{3, 5}, m.Shape)
	assert.Equal(t, []int64{0, 3, 8, 8}, m.Indptr)
	assert.Equal(t, 8, m.NNZ())

	cols, vals := m.Row(1)
	assert.Equal(t, []int32{0, 1, 2, 3, 4}, cols)
	assert.Equal(t, []int64{1, 1, 1, 1, 1}, vals)

	cols, _ = m.Row(2)
	assert.Empty(t, cols)
	assert.Equal(t, [][]int64{{1, 1, 1, 0, 0}, {1, 1, 1, 1, 1}, {0, 0, 0, 0, 0}}, m.Dense())
}

func TestCountVectorizeErrors(t *testing.T) {
	_, _, err := CountVectorize([]string{"a"}, WithNgramRange(2, 1))
	var cerr *tokenize.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "MaxN", cerr.Field)

	_, _, err = CountVectorize([]string{"\xff"})
	assert.ErrorIs(t, err, engine.ErrEncoding)
}

func TestWithLogger(t *testing.T) {
	var sb strings.Builder
	l := funcr.New(func(prefix, args string) {
		sb.WriteString(args)
		sb.WriteByte('\n')
	}, funcr.Options{Verbosity: 1})

	_, err := Copy([]string{"x"}, WithLogger(l))
	require.NoError(t, err)
	assert.Contains(t, sb.String(), `"op"="copy"`)
}
