package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Alias1177/Screener/internal/fetch"
	"github.com/Alias1177/Screener/internal/model"
)

func testWindow() model.AnalysisWindow {
	end := time.Date(2026, 8, 30, 17, 0, 0, 0, time.UTC)
	start := end.Add(-24 * time.Hour)
	return model.AnalysisWindow{
		StartLocal: start,
		EndLocal:   end,
		StartUTCms: start.UnixMilli(),
		EndUTCms:   end.UnixMilli(),
	}
}

func TestBuildMessage(t *testing.T) {
	winners := []model.SymbolEvaluation{
		{
			Symbol:   "AAAUSDT",
			MustPass: true,
			Score:    3.5,
			Signals: model.SignalSet{
				VolumeSpike:  &model.VolumeSpikeResult{Pass: true, Ratio: 1.42},
				IntrabarJump: &model.IntrabarJumpResult{Jumps: []model.Jump{{Ratio: 0.12}}},
			},
		},
		{
			Symbol:   "BBBUSDT",
			MustPass: true,
			Score:    2.0,
			Signals: model.SignalSet{
				VolumeSpike: &model.VolumeSpikeResult{Pass: true, Ratio: 1.2},
			},
		},
	}
	nearMisses := []model.SymbolEvaluation{
		{
			Symbol: "CCCUSDT",
			Score:  2.5,
			Signals: model.SignalSet{
				Compression: &model.CompressionResult{Pass: true},
				Squeeze:     &model.SqueezeBreakoutResult{Pass: true},
			},
		},
	}
	metrics := fetch.MetricsSnapshot{Requests: 42, Success: 40, Throttled: 2, Pauses: 1, Retries: 2, RetriesOK: 2}

	text := BuildMessage(testWindow(), winners, nearMisses, metrics)

	assert.Contains(t, text, "2026-08-29 17:00")
	assert.Contains(t, text, "Passed (2)")
	assert.Contains(t, text, "AAAUSDT")
	assert.Contains(t, text, "VOL JUMP")
	assert.Contains(t, text, "Near misses (1)")
	assert.Contains(t, text, "CCCUSDT")
	assert.Contains(t, text, "COMP SQZ")
	assert.Contains(t, text, "requests 42")

	assert.Less(t,
		strings.Index(text, "AAAUSDT"),
		strings.Index(text, "BBBUSDT"),
		"winners keep their rank order",
	)
}

func TestBuildMessageNoWinners(t *testing.T) {
	text := BuildMessage(testWindow(), nil, nil, fetch.MetricsSnapshot{})

	assert.Contains(t, text, "No symbols passed the gates")
	assert.NotContains(t, text, "Near misses")
}
