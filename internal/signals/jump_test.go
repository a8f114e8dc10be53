package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/Screener/internal/model"
)

func TestDetectIntrabarJump(t *testing.T) {
	cfg := IntrabarJumpConfig{Enabled: true, JumpThreshold: 0.1}

	tests := []struct {
		name      string
		candles   []model.Candle
		wantJumps int
	}{
		{
			name: "clear jump",
			candles: []model.Candle{
				{Open: 10, High: 11.5, Low: 10, Close: 11},
			},
			wantJumps: 1,
		},
		{
			name: "exactly at threshold does not count, strict comparison",
			candles: []model.Candle{
				{Open: 10, High: 11, Low: 10, Close: 10.5},
			},
			wantJumps: 0,
		},
		{
			name: "multiple jumps collected",
			candles: []model.Candle{
				{Open: 10, High: 11.2, Low: 10, Close: 11},
				{Open: 11, High: 11.5, Low: 11, Close: 11.2},
				{Open: 11, High: 12.5, Low: 11, Close: 12},
			},
			wantJumps: 2,
		},
		{
			name: "zero low is skipped",
			candles: []model.Candle{
				{Open: 0, High: 1, Low: 0, Close: 0.5},
			},
			wantJumps: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectIntrabarJump(cfg, tt.candles)
			require.NotNil(t, result)
			assert.Len(t, result.Jumps, tt.wantJumps)
			assert.Equal(t, tt.wantJumps > 0, result.Pass())
		})
	}
}

func TestDetectIntrabarJumpDisabled(t *testing.T) {
	cfg := IntrabarJumpConfig{Enabled: false, JumpThreshold: 0.1}
	assert.Nil(t, DetectIntrabarJump(cfg, []model.Candle{{Open: 10, High: 20, Low: 10, Close: 20}}))
}

func TestIntrabarJumpMaxRatio(t *testing.T) {
	cfg := IntrabarJumpConfig{Enabled: true, JumpThreshold: 0.1}
	candles := []model.Candle{
		{Open: 10, High: 11.2, Low: 10, Close: 11},
		{Open: 10, High: 12, Low: 10, Close: 11.5},
	}

	result := DetectIntrabarJump(cfg, candles)
	require.NotNil(t, result)
	assert.InDelta(t, 0.2, result.MaxRatio(), 1e-9)
}
