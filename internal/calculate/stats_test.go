package calculate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{name: "empty is zero", values: nil, expected: 0},
		{name: "single element", values: []float64{42}, expected: 42},
		{name: "odd count", values: []float64{3, 1, 2}, expected: 2},
		{name: "even count averages middles", values: []float64{4, 1, 3, 2}, expected: 2.5},
		{name: "order invariant", values: []float64{9, 1, 5, 3, 7}, expected: 5},
		{name: "reversed order invariant", values: []float64{7, 3, 5, 1, 9}, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Median(tt.values))
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestWindowedZScore(t *testing.T) {
	series := []float64{1, 1, 1, 1, 10}

	// mean 2.8, population std 3.6 over the full window
	z := WindowedZScore(series, 4, 5)
	assert.InDelta(t, 2.0, z, 1e-9)
}

func TestWindowedZScoreNeutralCases(t *testing.T) {
	tests := []struct {
		name     string
		series   []float64
		index    int
		lookback int
	}{
		{name: "window of one point", series: []float64{5, 6}, index: 0, lookback: 10},
		{name: "flat series has zero variance", series: []float64{3, 3, 3, 3}, index: 3, lookback: 4},
		{name: "index out of range", series: []float64{1, 2}, index: 5, lookback: 2},
		{name: "negative index", series: []float64{1, 2}, index: -1, lookback: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, WindowedZScore(tt.series, tt.index, tt.lookback))
		})
	}
}

func TestRollingMeanStd(t *testing.T) {
	series := []float64{1, 2, 3, 4}
	stats := RollingMeanStd(series, 3)

	require.Len(t, stats, 4)
	assert.Nil(t, stats[0], "positions before warmup must be absent, not zero")
	assert.Nil(t, stats[1])

	require.NotNil(t, stats[2])
	assert.InDelta(t, 2.0, stats[2].Mean, 1e-9)

	require.NotNil(t, stats[3])
	assert.InDelta(t, 3.0, stats[3].Mean, 1e-9)
}

func TestRollingMedian(t *testing.T) {
	medians := RollingMedian([]float64{5, 1, 3}, 2)

	require.Len(t, medians, 3)
	assert.Nil(t, medians[0])
	require.NotNil(t, medians[1])
	assert.Equal(t, 3.0, *medians[1])
	require.NotNil(t, medians[2])
	assert.Equal(t, 2.0, *medians[2])
}
