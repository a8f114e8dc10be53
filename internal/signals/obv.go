package signals

import (
	"github.com/Alias1177/Screener/internal/calculate"
	"github.com/Alias1177/Screener/internal/model"
)

// OBVImpulseConfig controls the on-balance-volume impulse detector.
type OBVImpulseConfig struct {
	Enabled  bool
	ZMin     float64
	Lookback int
}

// DetectOBVImpulse fires when the latest OBV value stands out of its
// trailing distribution.
func DetectOBVImpulse(cfg OBVImpulseConfig, candles []model.Candle) *model.OBVImpulseResult {
	if !cfg.Enabled || len(candles) == 0 {
		return nil
	}

	obv := model.OBVSeries(candles)
	z := calculate.WindowedZScore(obv, len(obv)-1, cfg.Lookback)

	return &model.OBVImpulseResult{
		Pass: z >= cfg.ZMin,
		Z:    z,
	}
}
