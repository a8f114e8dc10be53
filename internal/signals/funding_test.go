package signals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFundingBias(t *testing.T) {
	cfg := FundingBiasConfig{Enabled: true, Threshold: 0.0005}

	tests := []struct {
		name     string
		rate     float64
		wantNil  bool
		wantPass bool
	}{
		{name: "positive extreme passes", rate: 0.001, wantPass: true},
		{name: "negative extreme passes", rate: -0.0006, wantPass: true},
		{name: "exactly at threshold passes", rate: 0.0005, wantPass: true},
		{name: "neutral rate fails", rate: 0.0001, wantPass: false},
		{name: "NaN is not evaluated", rate: math.NaN(), wantNil: true},
		{name: "Inf is not evaluated", rate: math.Inf(1), wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectFundingBias(cfg, tt.rate)
			if tt.wantNil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Equal(t, tt.wantPass, result.Pass)
		})
	}
}

func TestDetectFundingBiasDisabled(t *testing.T) {
	assert.Nil(t, DetectFundingBias(FundingBiasConfig{Enabled: false, Threshold: 0.0005}, 0.01))
}
