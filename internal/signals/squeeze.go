package signals

import (
	"github.com/Alias1177/Screener/internal/calculate"
	"github.com/Alias1177/Screener/internal/model"
)

// SqueezeBreakoutConfig controls the squeeze-then-breakout detector.
type SqueezeBreakoutConfig struct {
	Enabled        bool
	BBPeriod       int
	BBStdDev       float64
	KCPeriod       int
	KCMultiplier   float64
	VolumeZMin     float64
	VolumeLookback int
	NearHighPct    float64
}

// DetectSqueezeBreakout fires when the Bollinger band was fully contained
// inside the Keltner-style channel on the prior candle and the latest close
// breaks above the upper band near the candle high on spiking volume.
func DetectSqueezeBreakout(cfg SqueezeBreakoutConfig, candles []model.Candle) *model.SqueezeBreakoutResult {
	need := cfg.BBPeriod
	if cfg.KCPeriod > need {
		need = cfg.KCPeriod
	}
	if !cfg.Enabled || len(candles) < need+2 {
		return nil
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	bb := calculate.RollingMeanStd(closes, cfg.BBPeriod)
	kcMean := calculate.RollingMeanStd(closes, cfg.KCPeriod)
	kcRange := calculate.RollingMedian(model.TrueRanges(candles), cfg.KCPeriod)

	last := len(candles) - 1
	prev := last - 1
	if bb[prev] == nil || bb[last] == nil || kcMean[prev] == nil || kcRange[prev] == nil {
		return nil
	}

	bbUpperPrev := bb[prev].Mean + cfg.BBStdDev*bb[prev].Std
	bbLowerPrev := bb[prev].Mean - cfg.BBStdDev*bb[prev].Std
	kcUpperPrev := kcMean[prev].Mean + cfg.KCMultiplier*(*kcRange[prev])
	kcLowerPrev := kcMean[prev].Mean - cfg.KCMultiplier*(*kcRange[prev])

	squeezed := bbUpperPrev <= kcUpperPrev && bbLowerPrev >= kcLowerPrev

	bbUpper := bb[last].Mean + cfg.BBStdDev*bb[last].Std
	volumeZ := calculate.WindowedZScore(model.Volumes(candles), last, cfg.VolumeLookback)

	pass := squeezed &&
		candles[last].Close > bbUpper &&
		candles[last].ClosePosition() >= 1-cfg.NearHighPct &&
		volumeZ >= cfg.VolumeZMin

	return &model.SqueezeBreakoutResult{
		Pass:     pass,
		Squeezed: squeezed,
		VolumeZ:  volumeZ,
	}
}
