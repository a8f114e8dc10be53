package signals

import (
	"math"

	"github.com/Alias1177/Screener/internal/model"
)

// FundingBiasConfig controls the funding-rate bias detector.
type FundingBiasConfig struct {
	Enabled   bool
	Threshold float64
}

// DetectFundingBias fires when the funding rate is extreme in either
// direction. A non-finite rate means the detector was not evaluated.
func DetectFundingBias(cfg FundingBiasConfig, rate float64) *model.FundingBiasResult {
	if !cfg.Enabled || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil
	}

	return &model.FundingBiasResult{
		Pass: math.Abs(rate) >= cfg.Threshold,
		Rate: rate,
	}
}
