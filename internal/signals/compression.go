package signals

import (
	"github.com/Alias1177/Screener/internal/calculate"
	"github.com/Alias1177/Screener/internal/model"
)

// CompressionConfig controls the compression-then-expansion detector.
type CompressionConfig struct {
	Enabled        bool
	Lookback       int
	Window         int
	RatioMax       float64
	VolumeZMin     float64
	VolumeLookback int
	NearHighPct    float64
	HighWindow     int
}

// DetectCompression fires when the recent true-range median has compressed
// against its baseline while volume spikes and the close sits near the
// trailing high.
func DetectCompression(cfg CompressionConfig, candles []model.Candle) *model.CompressionResult {
	if !cfg.Enabled || len(candles) < cfg.Lookback+cfg.Window {
		return nil
	}

	ranges := model.TrueRanges(candles)
	recent := ranges[len(ranges)-cfg.Window:]
	baseline := ranges[len(ranges)-cfg.Window-cfg.Lookback : len(ranges)-cfg.Window]

	baseMedian := calculate.Median(baseline)
	rangeRatio := 0.0
	if baseMedian > 0 {
		rangeRatio = calculate.Median(recent) / baseMedian
	}

	volumes := model.Volumes(candles)
	last := len(candles) - 1
	volumeZ := calculate.WindowedZScore(volumes, last, cfg.VolumeLookback)

	high := trailingHigh(candles, cfg.HighWindow)
	distance := 1.0
	if high > 0 {
		distance = (high - candles[last].Close) / high
	}

	pass := baseMedian > 0 &&
		rangeRatio <= cfg.RatioMax &&
		volumeZ >= cfg.VolumeZMin &&
		distance <= cfg.NearHighPct

	return &model.CompressionResult{
		Pass:           pass,
		RangeRatio:     rangeRatio,
		VolumeZ:        volumeZ,
		DistanceToHigh: distance,
	}
}

func trailingHigh(candles []model.Candle, window int) float64 {
	start := len(candles) - window
	if start < 0 {
		start = 0
	}

	var high float64
	for _, c := range candles[start:] {
		_, h := c.SpanBounds()
		if h > high {
			high = h
		}
	}
	return high
}
