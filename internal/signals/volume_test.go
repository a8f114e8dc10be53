package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/Screener/internal/model"
)

func dailyHistory(volumes ...float64) []model.DailyVolume {
	history := make([]model.DailyVolume, len(volumes))
	for i, v := range volumes {
		history[i].Volume = v
	}
	return history
}

func TestDetectVolumeSpike(t *testing.T) {
	cfg := VolumeSpikeConfig{Enabled: true, RatioThreshold: 1.1, MinHistoryDays: 3}

	tests := []struct {
		name        string
		todayVolume float64
		history     []model.DailyVolume
		wantNil     bool
		wantPass    bool
		wantRatio   float64
	}{
		{
			name:        "above threshold passes",
			todayVolume: 120,
			history:     dailyHistory(80, 100, 90),
			wantPass:    true,
			wantRatio:   1.2,
		},
		{
			name:        "exactly at threshold passes",
			todayVolume: 110,
			history:     dailyHistory(100, 50, 60),
			wantPass:    true,
			wantRatio:   1.1,
		},
		{
			name:        "below threshold fails but is evaluated",
			todayVolume: 100,
			history:     dailyHistory(100, 100, 100),
			wantPass:    false,
			wantRatio:   1.0,
		},
		{
			name:        "short history is not evaluated",
			todayVolume: 120,
			history:     dailyHistory(100, 90),
			wantNil:     true,
		},
		{
			name:        "zero historical volume is not evaluated",
			todayVolume: 120,
			history:     dailyHistory(0, 0, 0),
			wantNil:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectVolumeSpike(cfg, tt.todayVolume, tt.history)
			if tt.wantNil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Equal(t, tt.wantPass, result.Pass)
			assert.InDelta(t, tt.wantRatio, result.Ratio, 1e-9)
		})
	}
}

func TestDetectVolumeSpikeDisabled(t *testing.T) {
	cfg := VolumeSpikeConfig{Enabled: false, RatioThreshold: 1.1, MinHistoryDays: 1}
	assert.Nil(t, DetectVolumeSpike(cfg, 120, dailyHistory(100)))
}

func TestDetectTurnoverSpike(t *testing.T) {
	cfg := TurnoverSpikeConfig{
		Enabled:           true,
		ZMin:              2.0,
		Lookback:          96,
		PerVolumeRatioMin: 1.2,
		PerVolumeWindow:   64,
	}

	candles := make([]model.Candle, 10)
	for i := range candles {
		candles[i] = model.Candle{Volume: 10, Turnover: 100}
	}
	// one candle with ten times the turnover at the same volume
	candles[9].Turnover = 1000

	result := DetectTurnoverSpike(cfg, candles)
	require.NotNil(t, result)
	assert.True(t, result.Pass)
	assert.InDelta(t, 3.0, result.TurnoverZ, 1e-9)
	assert.InDelta(t, 10.0, result.PerVolumeRatio, 1e-9)
}

func TestDetectTurnoverSpikeEmptySeries(t *testing.T) {
	cfg := TurnoverSpikeConfig{Enabled: true, ZMin: 2, Lookback: 96, PerVolumeRatioMin: 1.2, PerVolumeWindow: 64}
	assert.Nil(t, DetectTurnoverSpike(cfg, nil))
}
