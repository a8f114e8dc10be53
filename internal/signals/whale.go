package signals

import (
	"github.com/Alias1177/Screener/internal/calculate"
	"github.com/Alias1177/Screener/internal/model"
)

// WhaleSweepConfig controls the minute-level sweep counter.
type WhaleSweepConfig struct {
	Enabled     bool
	ZMin        float64
	Lookback    int
	NearHighPct float64
	MinSweeps   int
}

// DetectWhaleSweep counts minute candles where volume spikes out of its
// trailing distribution while the close pins the candle high.
func DetectWhaleSweep(cfg WhaleSweepConfig, minutes []model.Candle) *model.WhaleSweepResult {
	if !cfg.Enabled || len(minutes) == 0 {
		return nil
	}

	volumes := model.Volumes(minutes)
	sweeps := 0
	for i := range minutes {
		z := calculate.WindowedZScore(volumes, i, cfg.Lookback)
		if z >= cfg.ZMin && minutes[i].ClosePosition() >= 1-cfg.NearHighPct {
			sweeps++
		}
	}

	return &model.WhaleSweepResult{
		Pass:   sweeps >= cfg.MinSweeps,
		Sweeps: sweeps,
	}
}
