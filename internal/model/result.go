package model

import "time"

// Instrument is one tradable symbol of the scan universe with its current
// funding rate.
type Instrument struct {
	Symbol      string
	FundingRate float64
}

// DailyVolume is one day of historical traded volume.
type DailyVolume struct {
	Timestamp time.Time
	Volume    float64
}

// VolumeSpikeResult compares today's aligned volume against the historical
// daily maximum.
type VolumeSpikeResult struct {
	Pass          bool
	Ratio         float64
	TodayVolume   float64
	HistoricalMax float64
}

// Jump is one candle whose intrabar range exceeded the jump threshold.
type Jump struct {
	StartTime time.Time
	Ratio     float64
}

// IntrabarJumpResult lists every candle in the window that jumped.
type IntrabarJumpResult struct {
	Jumps []Jump
}

// Pass reports whether at least one jump candle was found.
func (r *IntrabarJumpResult) Pass() bool {
	return r != nil && len(r.Jumps) > 0
}

// MaxRatio returns the largest jump ratio, 0 when there were none.
func (r *IntrabarJumpResult) MaxRatio() float64 {
	var max float64
	if r == nil {
		return 0
	}
	for _, j := range r.Jumps {
		if j.Ratio > max {
			max = j.Ratio
		}
	}
	return max
}

// CompressionResult captures a range-compression state resolving near the
// window high on rising volume.
type CompressionResult struct {
	Pass           bool
	RangeRatio     float64
	VolumeZ        float64
	DistanceToHigh float64
}

// VWAPDriftResult captures a sustained positive deviation from VWAP.
type VWAPDriftResult struct {
	Pass      bool
	Deviation float64
	VolumeZ   float64
	Streak    int
}

// TurnoverSpikeResult captures unusual turnover relative to its own history.
type TurnoverSpikeResult struct {
	Pass           bool
	TurnoverZ      float64
	PerVolumeRatio float64
}

// OBVImpulseResult captures an on-balance-volume impulse.
type OBVImpulseResult struct {
	Pass bool
	Z    float64
}

// SqueezeBreakoutResult captures a Bollinger-inside-Keltner squeeze that
// resolved upward.
type SqueezeBreakoutResult struct {
	Pass     bool
	Squeezed bool
	VolumeZ  float64
}

// WhaleSweepResult counts minute candles swept at the high on spiking volume.
type WhaleSweepResult struct {
	Pass   bool
	Sweeps int
}

// FundingBiasResult captures an extreme funding rate in either direction.
type FundingBiasResult struct {
	Pass bool
	Rate float64
}

// SignalSet holds the outcome of every detector for one symbol. A nil field
// means the detector was not evaluated (disabled or precondition unmet),
// which is distinct from an evaluated-and-failed result and never scores.
type SignalSet struct {
	VolumeSpike   *VolumeSpikeResult
	IntrabarJump  *IntrabarJumpResult
	Compression   *CompressionResult
	VWAPDrift     *VWAPDriftResult
	TurnoverSpike *TurnoverSpikeResult
	OBVImpulse    *OBVImpulseResult
	Squeeze       *SqueezeBreakoutResult
	WhaleSweep    *WhaleSweepResult
	FundingBias   *FundingBiasResult
}

// SymbolEvaluation is the final outcome for one symbol in one run.
type SymbolEvaluation struct {
	Symbol   string
	MustPass bool
	Score    float64
	Signals  SignalSet
}

// VolumeRatio is the winners' primary ranking key.
func (e SymbolEvaluation) VolumeRatio() float64 {
	if e.Signals.VolumeSpike == nil {
		return 0
	}
	return e.Signals.VolumeSpike.Ratio
}

// MaxJumpRatio is the winners' secondary ranking key.
func (e SymbolEvaluation) MaxJumpRatio() float64 {
	return e.Signals.IntrabarJump.MaxRatio()
}
