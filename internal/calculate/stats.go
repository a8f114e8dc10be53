package calculate

import (
	"math"
	"sort"
)

// Median returns the median of values. An empty slice yields 0 so that
// callers can treat missing history as "no baseline" rather than an error.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// MeanStd calculates the mean and population standard deviation of values.
func MeanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += math.Pow(v-mean, 2)
	}
	std := math.Sqrt(variance / float64(len(values)))

	return mean, std
}

// WindowedZScore calculates the z-score of series[index] against the trailing
// window [max(0, index-lookback+1), index] inclusive. Windows with fewer than
// two points or zero variance yield 0 (flat series is neutral, not undefined).
func WindowedZScore(series []float64, index int, lookback int) float64 {
	if index < 0 || index >= len(series) {
		return 0
	}

	start := index - lookback + 1
	if start < 0 {
		start = 0
	}

	window := series[start : index+1]
	if len(window) < 2 {
		return 0
	}

	mean, std := MeanStd(window)
	if std == 0 {
		return 0
	}

	return (series[index] - mean) / std
}

// RollingStat holds the mean and standard deviation of one rolling window.
type RollingStat struct {
	Mean float64
	Std  float64
}

// RollingMeanStd produces a parallel slice of rolling mean/std over the
// trailing period samples. Positions before the window has filled are nil —
// callers must treat nil as insufficient history, not as a zero value.
func RollingMeanStd(series []float64, period int) []*RollingStat {
	stats := make([]*RollingStat, len(series))
	if period < 1 {
		return stats
	}

	for i := period - 1; i < len(series); i++ {
		mean, std := MeanStd(series[i-period+1 : i+1])
		stats[i] = &RollingStat{Mean: mean, Std: std}
	}

	return stats
}

// RollingMedian produces a parallel slice of medians over the trailing period
// samples, nil before the window has filled.
func RollingMedian(series []float64, period int) []*float64 {
	medians := make([]*float64, len(series))
	if period < 1 {
		return medians
	}

	for i := period - 1; i < len(series); i++ {
		m := Median(series[i-period+1 : i+1])
		medians[i] = &m
	}

	return medians
}
