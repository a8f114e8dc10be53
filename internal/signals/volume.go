package signals

import (
	"github.com/Alias1177/Screener/internal/calculate"
	"github.com/Alias1177/Screener/internal/model"
)

// VolumeSpikeConfig controls the day-over-day volume spike detector.
type VolumeSpikeConfig struct {
	Enabled        bool
	RatioThreshold float64
	MinHistoryDays int
}

// DetectVolumeSpike compares today's aligned volume against the maximum
// historical daily volume. Returns nil when disabled or when history is
// shorter than the configured minimum.
func DetectVolumeSpike(cfg VolumeSpikeConfig, todayVolume float64, history []model.DailyVolume) *model.VolumeSpikeResult {
	if !cfg.Enabled || len(history) < cfg.MinHistoryDays {
		return nil
	}

	var max float64
	for _, d := range history {
		if d.Volume > max {
			max = d.Volume
		}
	}
	if max == 0 {
		return nil
	}

	ratio := todayVolume / max
	return &model.VolumeSpikeResult{
		Pass:          ratio >= cfg.RatioThreshold,
		Ratio:         ratio,
		TodayVolume:   todayVolume,
		HistoricalMax: max,
	}
}

// TurnoverSpikeConfig controls the turnover spike detector.
type TurnoverSpikeConfig struct {
	Enabled           bool
	ZMin              float64
	Lookback          int
	PerVolumeRatioMin float64
	PerVolumeWindow   int
}

// DetectTurnoverSpike fires when the latest turnover stands out of its
// trailing distribution and turnover-per-volume is elevated against its
// trailing median.
func DetectTurnoverSpike(cfg TurnoverSpikeConfig, candles []model.Candle) *model.TurnoverSpikeResult {
	if !cfg.Enabled || len(candles) == 0 {
		return nil
	}

	turnovers := model.Turnovers(candles)
	last := len(candles) - 1
	z := calculate.WindowedZScore(turnovers, last, cfg.Lookback)

	perVolume := make([]float64, len(candles))
	for i, c := range candles {
		if c.Volume > 0 {
			perVolume[i] = c.Turnover / c.Volume
		}
	}

	start := len(perVolume) - cfg.PerVolumeWindow
	if start < 0 {
		start = 0
	}
	median := calculate.Median(perVolume[start:])

	ratio := 0.0
	if median > 0 {
		ratio = perVolume[last] / median
	}

	return &model.TurnoverSpikeResult{
		Pass:           z >= cfg.ZMin && ratio >= cfg.PerVolumeRatioMin,
		TurnoverZ:      z,
		PerVolumeRatio: ratio,
	}
}
