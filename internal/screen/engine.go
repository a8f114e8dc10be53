package screen

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Screener/internal/model"
)

// GatePolicy selects how the two hard gates combine.
type GatePolicy string

const (
	// PolicyAny admits a symbol when either hard gate fires.
	PolicyAny GatePolicy = "any"
	// PolicyBoth requires both hard gates to fire.
	PolicyBoth GatePolicy = "both"
)

// Weights holds the per-signal score contribution. A signal contributes its
// weight only when it was evaluated and passed.
type Weights struct {
	VolumeSpike   float64
	IntrabarJump  float64
	Compression   float64
	VWAPDrift     float64
	TurnoverSpike float64
	OBVImpulse    float64
	Squeeze       float64
	WhaleSweep    float64
	FundingBias   float64
}

// Config holds the gating and scoring parameters.
type Config struct {
	Policy              GatePolicy
	Weights             Weights
	AltScoreThreshold   float64
	AlertScoreThreshold float64
	DailyPumpMaxGain    float64
}

// Engine combines per-symbol signal results into a gate decision and a
// confluence score.
type Engine struct {
	cfg    Config
	logger zerolog.Logger
}

// NewEngine creates a gating and scoring engine.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: log.With().Str("component", "screen_engine").Logger(),
	}
}

// ShouldSkip applies the daily-pump pre-filter: a symbol whose aligned daily
// candle already gained more than the configured ratio is excluded from the
// run entirely, before any signal is evaluated.
func (e *Engine) ShouldSkip(daily model.Candle) bool {
	if daily.Open <= 0 {
		return false
	}

	gain := (daily.Close - daily.Open) / daily.Open
	if gain > e.cfg.DailyPumpMaxGain {
		e.logger.Debug().Float64("gain", gain).Msg("Daily pump pre-filter hit")
		return true
	}
	return false
}

// Evaluate combines the signal set for one symbol into its final evaluation.
func (e *Engine) Evaluate(symbol string, signals model.SignalSet) model.SymbolEvaluation {
	score := e.score(signals)

	volumeGate := signals.VolumeSpike != nil && signals.VolumeSpike.Pass
	jumpGate := signals.IntrabarJump.Pass()

	var gate bool
	switch e.cfg.Policy {
	case PolicyBoth:
		gate = volumeGate && jumpGate
	default:
		gate = volumeGate || jumpGate
	}

	return model.SymbolEvaluation{
		Symbol:   symbol,
		MustPass: gate || score >= e.cfg.AltScoreThreshold,
		Score:    score,
		Signals:  signals,
	}
}

// IsNearMiss reports whether a rejected symbol still scored high enough for
// the secondary ranking.
func (e *Engine) IsNearMiss(eval model.SymbolEvaluation) bool {
	return !eval.MustPass && eval.Score >= e.cfg.AlertScoreThreshold
}

// score sums the weight of every present, passing signal. Absent signals
// contribute nothing, never a penalty.
func (e *Engine) score(signals model.SignalSet) float64 {
	w := e.cfg.Weights
	var score float64

	if signals.VolumeSpike != nil && signals.VolumeSpike.Pass {
		score += w.VolumeSpike
	}
	if signals.IntrabarJump.Pass() {
		score += w.IntrabarJump
	}
	if signals.Compression != nil && signals.Compression.Pass {
		score += w.Compression
	}
	if signals.VWAPDrift != nil && signals.VWAPDrift.Pass {
		score += w.VWAPDrift
	}
	if signals.TurnoverSpike != nil && signals.TurnoverSpike.Pass {
		score += w.TurnoverSpike
	}
	if signals.OBVImpulse != nil && signals.OBVImpulse.Pass {
		score += w.OBVImpulse
	}
	if signals.Squeeze != nil && signals.Squeeze.Pass {
		score += w.Squeeze
	}
	if signals.WhaleSweep != nil && signals.WhaleSweep.Pass {
		score += w.WhaleSweep
	}
	if signals.FundingBias != nil && signals.FundingBias.Pass {
		score += w.FundingBias
	}

	return score
}
