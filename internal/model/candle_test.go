package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatCandle(price, volume float64) Candle {
	return Candle{Open: price, High: price, Low: price, Close: price, Volume: volume}
}

func TestSpanBoundsEnvelopesAllFourPrices(t *testing.T) {
	tests := []struct {
		name   string
		candle Candle
		low    float64
		high   float64
	}{
		{
			name:   "normal candle",
			candle: Candle{Open: 10, High: 11, Low: 9, Close: 10.5},
			low:    9,
			high:   11,
		},
		{
			name:   "open above nominal high",
			candle: Candle{Open: 12, High: 11, Low: 10, Close: 10.5},
			low:    10,
			high:   12,
		},
		{
			name:   "close below nominal low",
			candle: Candle{Open: 10.5, High: 11, Low: 10, Close: 9},
			low:    9,
			high:   11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high := tt.candle.SpanBounds()
			assert.Equal(t, tt.low, low)
			assert.Equal(t, tt.high, high)
			assert.GreaterOrEqual(t, high, low)
		})
	}
}

func TestClosePosition(t *testing.T) {
	assert.Equal(t, 1.0, Candle{Open: 10, High: 12, Low: 10, Close: 12}.ClosePosition())
	assert.Equal(t, 0.0, Candle{Open: 12, High: 12, Low: 10, Close: 10}.ClosePosition())
	assert.InDelta(t, 0.5, Candle{Open: 10, High: 12, Low: 10, Close: 11}.ClosePosition(), 1e-9)

	// flat candle is neither extreme
	assert.Equal(t, 0.0, flatCandle(10, 1).ClosePosition())
}

func TestVWAPStrictlyIncreasesWithRisingTypicalPrice(t *testing.T) {
	candles := make([]Candle, 10)
	for i := range candles {
		candles[i] = flatCandle(float64(10+i), 100)
	}

	vwap := VWAPSeries(candles)
	require.Len(t, vwap, 10)
	for i := 1; i < len(vwap); i++ {
		assert.Greater(t, vwap[i], vwap[i-1])
	}
}

func TestVWAPZeroVolumeFallsBackToTypicalPrice(t *testing.T) {
	candles := []Candle{flatCandle(10, 0), flatCandle(20, 0)}

	vwap := VWAPSeries(candles)
	assert.Equal(t, 10.0, vwap[0])
	assert.Equal(t, 20.0, vwap[1])
}

func TestOBVSeries(t *testing.T) {
	candles := []Candle{
		{Close: 10, Volume: 100},
		{Close: 11, Volume: 50},
		{Close: 11, Volume: 70},
		{Close: 12, Volume: 30},
		{Close: 11, Volume: 20},
	}

	obv := OBVSeries(candles)
	assert.Equal(t, []float64{0, 50, 50, 80, 60}, obv)
}

func TestOBVFirstElementAlwaysZero(t *testing.T) {
	obv := OBVSeries([]Candle{{Close: 99, Volume: 1e9}})
	require.Len(t, obv, 1)
	assert.Zero(t, obv[0])
}

func TestOBVMonotoneWhenClosesNonDecreasing(t *testing.T) {
	candles := []Candle{
		{Close: 10, Volume: 5},
		{Close: 10, Volume: 7},
		{Close: 11, Volume: 3},
		{Close: 12, Volume: 9},
	}

	obv := OBVSeries(candles)
	for i := 1; i < len(obv); i++ {
		assert.GreaterOrEqual(t, obv[i], obv[i-1])
	}
}

func TestTrueRangesUsesPriorClose(t *testing.T) {
	candles := []Candle{
		{Open: 10, High: 11, Low: 9, Close: 10},
		{Open: 14, High: 15, Low: 13, Close: 14},
	}

	ranges := TrueRanges(candles)
	assert.Equal(t, 2.0, ranges[0], "first candle uses its own range")
	assert.Equal(t, 5.0, ranges[1], "gap candle stretches to the prior close")
}
