package model

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// Candle represents a single price candle. High and Low are the candle's
// nominal bounds as reported by the exchange; SpanBounds gives the defensive
// bounds used for range math.
type Candle struct {
	StartTime time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Turnover  float64
}

// SpanBounds returns the candle's effective low and high as the min and max
// over all four price fields. Upstream feeds occasionally report open/close
// outside the nominal high/low; taking the envelope keeps high >= low unless
// every input is non-finite, in which case the anomaly is logged and the raw
// bounds are returned as-is.
func (c Candle) SpanBounds() (float64, float64) {
	prices := [4]float64{c.Open, c.High, c.Low, c.Close}

	low := math.Inf(1)
	high := math.Inf(-1)
	for _, p := range prices {
		if !isFinite(p) {
			continue
		}
		low = math.Min(low, p)
		high = math.Max(high, p)
	}

	if high < low {
		log.Warn().
			Time("start", c.StartTime).
			Float64("open", c.Open).
			Float64("high", c.High).
			Float64("low", c.Low).
			Float64("close", c.Close).
			Msg("Degenerate candle, no finite price field")
		return c.Low, c.High
	}

	return low, high
}

// TypicalPrice is the average of the effective high, low and close.
func (c Candle) TypicalPrice() float64 {
	low, high := c.SpanBounds()
	return (high + low + c.Close) / 3
}

// ClosePosition reports where the close sits within the candle's range as a
// fraction in [0, 1]. A flat candle (high == low) yields 0.
func (c Candle) ClosePosition() float64 {
	low, high := c.SpanBounds()
	if high == low {
		return 0
	}

	pos := (c.Close - low) / (high - low)
	return math.Max(0, math.Min(1, pos))
}

// TrueRanges derives the true range per candle: the largest of high-low,
// |high-prevClose| and |low-prevClose|. The first candle has no prior close
// and uses its own range.
func TrueRanges(candles []Candle) []float64 {
	ranges := make([]float64, len(candles))
	for i, c := range candles {
		low, high := c.SpanBounds()
		tr := high - low
		if i > 0 {
			prevClose := candles[i-1].Close
			tr = math.Max(tr, math.Abs(high-prevClose))
			tr = math.Max(tr, math.Abs(low-prevClose))
		}
		ranges[i] = tr
	}
	return ranges
}

// VWAPSeries derives the cumulative volume-weighted average price. While
// cumulative volume is still 0 the VWAP falls back to the typical price so a
// zero-volume prefix never divides by zero.
func VWAPSeries(candles []Candle) []float64 {
	vwap := make([]float64, len(candles))
	var sumPV, sumV float64
	for i, c := range candles {
		sumPV += c.TypicalPrice() * c.Volume
		sumV += c.Volume
		if sumV == 0 {
			vwap[i] = c.TypicalPrice()
			continue
		}
		vwap[i] = sumPV / sumV
	}
	return vwap
}

// OBVSeries derives the cumulative on-balance volume, seeded at 0: the first
// candle has no prior close to compare against and contributes nothing.
func OBVSeries(candles []Candle) []float64 {
	obv := make([]float64, len(candles))
	for i := 1; i < len(candles); i++ {
		obv[i] = obv[i-1]
		switch {
		case candles[i].Close > candles[i-1].Close:
			obv[i] += candles[i].Volume
		case candles[i].Close < candles[i-1].Close:
			obv[i] -= candles[i].Volume
		}
	}
	return obv
}

// Volumes extracts the volume series.
func Volumes(candles []Candle) []float64 {
	volumes := make([]float64, len(candles))
	for i, c := range candles {
		volumes[i] = c.Volume
	}
	return volumes
}

// Turnovers extracts the turnover series.
func Turnovers(candles []Candle) []float64 {
	turnovers := make([]float64, len(candles))
	for i, c := range candles {
		turnovers[i] = c.Turnover
	}
	return turnovers
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
