package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Screener/internal/fetch"
	"github.com/Alias1177/Screener/internal/model"
)

// BuildMessage renders one run's ranked results into a Telegram Markdown
// message.
func BuildMessage(window model.AnalysisWindow, winners, nearMisses []model.SymbolEvaluation, metrics fetch.MetricsSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Scan window:* %s\n\n", window.Describe())

	if len(winners) == 0 {
		b.WriteString("No symbols passed the gates.\n")
	} else {
		fmt.Fprintf(&b, "*Passed (%d):*\n", len(winners))
		for i, eval := range winners {
			fmt.Fprintf(&b, "%d. `%s`  vol x%.2f  jump %.1f%%  score %.1f  [%s]\n",
				i+1,
				eval.Symbol,
				eval.VolumeRatio(),
				eval.MaxJumpRatio()*100,
				eval.Score,
				strings.Join(firedSignals(eval.Signals), " "),
			)
		}
	}

	if len(nearMisses) > 0 {
		fmt.Fprintf(&b, "\n*Near misses (%d):*\n", len(nearMisses))
		for i, eval := range nearMisses {
			fmt.Fprintf(&b, "%d. `%s`  score %.1f  [%s]\n",
				i+1,
				eval.Symbol,
				eval.Score,
				strings.Join(firedSignals(eval.Signals), " "),
			)
		}
	}

	fmt.Fprintf(&b, "\n_requests %d, ok %d, throttled %d, errors %d, pauses %d, retries %d/%d ok_\n",
		metrics.Requests, metrics.Success, metrics.Throttled, metrics.Errors,
		metrics.Pauses, metrics.RetriesOK, metrics.Retries,
	)

	return b.String()
}

// firedSignals names every evaluated, passing signal for display.
func firedSignals(signals model.SignalSet) []string {
	var fired []string

	if signals.VolumeSpike != nil && signals.VolumeSpike.Pass {
		fired = append(fired, "VOL")
	}
	if signals.IntrabarJump.Pass() {
		fired = append(fired, "JUMP")
	}
	if signals.Compression != nil && signals.Compression.Pass {
		fired = append(fired, "COMP")
	}
	if signals.VWAPDrift != nil && signals.VWAPDrift.Pass {
		fired = append(fired, "VWAP")
	}
	if signals.TurnoverSpike != nil && signals.TurnoverSpike.Pass {
		fired = append(fired, "TURN")
	}
	if signals.OBVImpulse != nil && signals.OBVImpulse.Pass {
		fired = append(fired, "OBV")
	}
	if signals.Squeeze != nil && signals.Squeeze.Pass {
		fired = append(fired, "SQZ")
	}
	if signals.WhaleSweep != nil && signals.WhaleSweep.Pass {
		fired = append(fired, "WHALE")
	}
	if signals.FundingBias != nil && signals.FundingBias.Pass {
		fired = append(fired, "FUND")
	}

	return fired
}

// LogReporter writes the run summary to the log. Used when no Telegram bot
// token is configured.
type LogReporter struct {
	logger zerolog.Logger
}

// NewLogReporter creates a log-only reporter.
func NewLogReporter() *LogReporter {
	return &LogReporter{
		logger: log.With().Str("component", "log_reporter").Logger(),
	}
}

// Report logs the rendered message.
func (r *LogReporter) Report(_ context.Context, window model.AnalysisWindow, winners, nearMisses []model.SymbolEvaluation, metrics fetch.MetricsSnapshot) error {
	r.logger.Info().Msg(BuildMessage(window, winners, nearMisses, metrics))
	return nil
}
