package signals

import (
	"github.com/Alias1177/Screener/internal/calculate"
	"github.com/Alias1177/Screener/internal/model"
)

// VWAPDriftConfig controls the sustained-VWAP-deviation detector.
type VWAPDriftConfig struct {
	Enabled        bool
	DevMin         float64
	VolumeZMin     float64
	VolumeLookback int
	Window         int
	Streak         int
}

// DetectVWAPDrift fires when price has drifted above VWAP by at least DevMin
// with spiking volume, and the deviation has stayed positive and
// non-decreasing for Streak consecutive candles.
func DetectVWAPDrift(cfg VWAPDriftConfig, candles []model.Candle) *model.VWAPDriftResult {
	if !cfg.Enabled || len(candles) < cfg.Window+cfg.Streak {
		return nil
	}

	vwap := model.VWAPSeries(candles)
	deviations := make([]float64, len(candles))
	for i, c := range candles {
		if vwap[i] != 0 {
			deviations[i] = (c.Close - vwap[i]) / vwap[i]
		}
	}

	last := len(candles) - 1
	streak := deviationStreak(deviations)

	volumes := model.Volumes(candles)
	volumeZ := calculate.WindowedZScore(volumes, last, cfg.VolumeLookback)

	pass := deviations[last] >= cfg.DevMin &&
		volumeZ >= cfg.VolumeZMin &&
		streak >= cfg.Streak

	return &model.VWAPDriftResult{
		Pass:      pass,
		Deviation: deviations[last],
		VolumeZ:   volumeZ,
		Streak:    streak,
	}
}

// deviationStreak counts, ending at the latest candle, how many consecutive
// deviations were positive and non-decreasing.
func deviationStreak(deviations []float64) int {
	streak := 0
	for i := len(deviations) - 1; i >= 0; i-- {
		if deviations[i] <= 0 {
			break
		}
		if i < len(deviations)-1 && deviations[i] > deviations[i+1] {
			break
		}
		streak++
	}
	return streak
}
