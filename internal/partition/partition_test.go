package partition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRejectsBadJobs(t *testing.T) {
	for _, jobs := range []int{0, -1, -100} {
		ranges, err := Plan(5000, jobs)
		require.Error(t, err)
		assert.Nil(t, ranges)
		assert.True(t, errors.Is(err, ErrInvalidJobs))

		var jce *JobCountError
		require.ErrorAs(t, err, &jce)
		assert.Equal(t, jobs, jce.Jobs)
	}

	// jobs is checked before the empty/sequential shortcuts
	_, err := Plan(0, 0)
	assert.ErrorIs(t, err, ErrInvalidJobs)
}

func TestPlanEmpty(t *testing.T) {
	ranges, err := Plan(0, 8)
	require.NoError(t, err)
	assert.Empty(t, ranges)
}

func TestPlanSequentialFastPath(t *testing.T) {
	tests := []struct {
		n    int
		jobs int
	}{
		{1, 1},
		{1, 16},
		{999, 4},
		{SequentialThreshold - 1, 64},
		{5000, 1},
	}

	for _, tt := range tests {
		ranges, err := Plan(tt.n, tt.jobs)
		require.NoError(t, err)
		assert.Equal(t, []Range{{0, tt.n}}, ranges, "Plan(%d, %d)", tt.n, tt.jobs)
	}
}

func TestPlanDistributesRemainder(t *testing.T) {
	ranges, err := Plan(2003, 4)
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 501}, {501, 1002}, {1002, 1503}, {1503, 2003}}, ranges)
}

func TestPlanCoverage(t *testing.T) {
	for _, n := range []int{1000, 1001, 1024, 4099, 10000} {
		for _, jobs := range []int{1, 2, 3, 7, 8, 64, 5000, 20000} {
			ranges, err := Plan(n, jobs)
			require.NoError(t, err)

			want := min(jobs, n)
			assert.Len(t, ranges, want, "Plan(%d, %d)", n, jobs)

			next := 0
			minLen, maxLen := n, 0
			for _, r := range ranges {
				assert.Equal(t, next, r.Start, "Plan(%d, %d) gap at %v", n, jobs, r)
				assert.Greater(t, r.Len(), 0)
				minLen = min(minLen, r.Len())
				maxLen = max(maxLen, r.Len())
				next = r.End
			}
			assert.Equal(t, n, next)
			assert.LessOrEqual(t, maxLen-minLen, 1, "Plan(%d, %d) unbalanced", n, jobs)
		}
	}
}

func TestRangeString(t *testing.T) {
	assert.Equal(t, "[3,9)", Range{Start: 3, End: 9}.String())
	assert.Equal(t, 6, Range{Start: 3, End: 9}.Len())
}
