package signals

import "github.com/Alias1177/Screener/internal/model"

// IntrabarJumpConfig controls the intrabar jump detector.
type IntrabarJumpConfig struct {
	Enabled       bool
	JumpThreshold float64
}

// DetectIntrabarJump collects every candle whose intrabar range relative to
// its low strictly exceeds the threshold. The strict comparison is
// deliberate and differs from the volume spike's >=.
func DetectIntrabarJump(cfg IntrabarJumpConfig, candles []model.Candle) *model.IntrabarJumpResult {
	if !cfg.Enabled {
		return nil
	}

	result := &model.IntrabarJumpResult{}
	for _, c := range candles {
		low, high := c.SpanBounds()
		if low <= 0 {
			continue
		}
		ratio := (high - low) / low
		if ratio > cfg.JumpThreshold {
			result.Jumps = append(result.Jumps, model.Jump{StartTime: c.StartTime, Ratio: ratio})
		}
	}

	return result
}
