package scan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Screener/internal/config"
	"github.com/Alias1177/Screener/internal/fetch"
	"github.com/Alias1177/Screener/internal/model"
	"github.com/Alias1177/Screener/internal/screen"
	"github.com/Alias1177/Screener/internal/signals"
)

// MarketAPI is the upstream market-data capability the scanner consumes.
type MarketAPI interface {
	GetInstruments(ctx context.Context) ([]model.Instrument, error)
	GetKlines(ctx context.Context, symbol, interval string, startMs, endMs int64) ([]model.Candle, error)
	GetDailyVolumeHistory(ctx context.Context, symbol string) ([]model.DailyVolume, error)
}

// Reporter receives the ranked result set once a run has fully completed.
type Reporter interface {
	Report(ctx context.Context, window model.AnalysisWindow, winners, nearMisses []model.SymbolEvaluation, metrics fetch.MetricsSnapshot) error
}

// Scanner drives one full evaluation cycle across the symbol universe.
type Scanner struct {
	cfg      *config.Config
	api      MarketAPI
	reporter Reporter
	engine   *screen.Engine
	orch     *fetch.Orchestrator
	loc      *time.Location
	now      func() time.Time
	logger   zerolog.Logger
}

// New creates a scanner wired to the given upstream API and reporter.
func New(cfg *config.Config, api MarketAPI, reporter Reporter) (*Scanner, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolving timezone: %w", err)
	}

	return &Scanner{
		cfg:      cfg,
		api:      api,
		reporter: reporter,
		engine:   screen.NewEngine(cfg.Screen),
		orch: fetch.NewOrchestrator(fetch.Options{
			BatchSize:     cfg.BatchSize,
			Workers:       cfg.Workers,
			BatchPause:    cfg.BatchPause,
			ThrottlePause: cfg.ThrottlePause,
		}),
		loc:    loc,
		now:    time.Now,
		logger: log.With().Str("component", "scanner").Logger(),
	}, nil
}

// Run executes one full scan: resolve the universe, evaluate every symbol in
// batches, rank the outcomes and hand them to the reporter together with the
// frozen run metrics. Only a failure to list symbols is fatal; any single
// symbol's failure just excludes it from this run.
func (s *Scanner) Run(ctx context.Context) error {
	s.orch.Metrics().Reset()

	window := model.AlignedWindow(s.now(), s.cfg.AnchorHour, s.loc)
	s.logger.Info().Str("window", window.Describe()).Msg("Starting scan")

	instruments, err := s.api.GetInstruments(ctx)
	if err != nil {
		return fmt.Errorf("listing symbols: %w", err)
	}

	byFunding := make(map[string]float64, len(instruments))
	universe := make([]string, 0, len(instruments))
	for _, inst := range instruments {
		byFunding[inst.Symbol] = inst.FundingRate
		universe = append(universe, inst.Symbol)
	}

	var mu sync.Mutex
	var evaluations []model.SymbolEvaluation

	err = s.orch.RunBatches(ctx, universe, func(ctx context.Context, symbol string) {
		eval := s.evaluateSymbol(ctx, symbol, byFunding[symbol], window)
		if eval == nil {
			return
		}
		mu.Lock()
		evaluations = append(evaluations, *eval)
		mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("running batches: %w", err)
	}

	winners, nearMisses := s.partition(evaluations)
	metrics := s.orch.Metrics().Snapshot()

	s.logger.Info().
		Int("evaluated", len(evaluations)).
		Int("winners", len(winners)).
		Int("near_misses", len(nearMisses)).
		Int64("requests", metrics.Requests).
		Int64("throttled", metrics.Throttled).
		Msg("Scan complete")

	return s.reporter.Report(ctx, window, winners, nearMisses, metrics)
}

// evaluateSymbol runs the pre-filter and every detector for one symbol. A
// nil return means the symbol is excluded from this run: pre-filter hit, or
// not enough data survived fetching.
func (s *Scanner) evaluateSymbol(ctx context.Context, symbol string, fundingRate float64, window model.AnalysisWindow) *model.SymbolEvaluation {
	var candles []model.Candle
	err := s.orch.Fetch(ctx, func(ctx context.Context) error {
		var err error
		candles, err = s.api.GetKlines(ctx, symbol, s.cfg.KlineInterval, window.StartUTCms, window.EndUTCms)
		return err
	})
	if err != nil || len(candles) == 0 {
		s.logger.Debug().Err(err).Str("symbol", symbol).Msg("No window candles, excluding symbol")
		return nil
	}

	daily := alignedDaily(candles)
	if s.engine.ShouldSkip(daily) {
		s.logger.Debug().Str("symbol", symbol).Msg("Skipped by daily pump pre-filter")
		return nil
	}

	sigs := model.SignalSet{
		IntrabarJump:  signals.DetectIntrabarJump(s.cfg.IntrabarJump, candles),
		Compression:   signals.DetectCompression(s.cfg.Compression, candles),
		VWAPDrift:     signals.DetectVWAPDrift(s.cfg.VWAPDrift, candles),
		TurnoverSpike: signals.DetectTurnoverSpike(s.cfg.TurnoverSpike, candles),
		OBVImpulse:    signals.DetectOBVImpulse(s.cfg.OBVImpulse, candles),
		Squeeze:       signals.DetectSqueezeBreakout(s.cfg.Squeeze, candles),
		FundingBias:   signals.DetectFundingBias(s.cfg.FundingBias, fundingRate),
	}

	if s.cfg.VolumeSpike.Enabled {
		var history []model.DailyVolume
		err := s.orch.Fetch(ctx, func(ctx context.Context) error {
			var err error
			history, err = s.api.GetDailyVolumeHistory(ctx, symbol)
			return err
		})
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", symbol).Msg("No volume history, volume spike not evaluated")
		} else {
			sigs.VolumeSpike = signals.DetectVolumeSpike(s.cfg.VolumeSpike, daily.Volume, history)
		}
	}

	if s.cfg.WhaleSweep.Enabled {
		startMs := window.EndUTCms - int64(s.cfg.WhaleMinutes)*int64(time.Minute/time.Millisecond)
		var minutes []model.Candle
		err := s.orch.Fetch(ctx, func(ctx context.Context) error {
			var err error
			minutes, err = s.api.GetKlines(ctx, symbol, "1", startMs, window.EndUTCms)
			return err
		})
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", symbol).Msg("No minute candles, whale sweep not evaluated")
		} else {
			sigs.WhaleSweep = signals.DetectWhaleSweep(s.cfg.WhaleSweep, minutes)
		}
	}

	eval := s.engine.Evaluate(symbol, sigs)
	return &eval
}

// partition splits evaluations into ranked winners and near-misses.
func (s *Scanner) partition(evaluations []model.SymbolEvaluation) ([]model.SymbolEvaluation, []model.SymbolEvaluation) {
	var winners, nearMisses []model.SymbolEvaluation
	for _, eval := range evaluations {
		switch {
		case eval.MustPass:
			winners = append(winners, eval)
		case s.engine.IsNearMiss(eval):
			nearMisses = append(nearMisses, eval)
		}
	}

	sort.Slice(winners, func(i, j int) bool {
		if winners[i].VolumeRatio() != winners[j].VolumeRatio() {
			return winners[i].VolumeRatio() > winners[j].VolumeRatio()
		}
		return winners[i].MaxJumpRatio() > winners[j].MaxJumpRatio()
	})
	sort.Slice(nearMisses, func(i, j int) bool {
		return nearMisses[i].Score > nearMisses[j].Score
	})

	return winners, nearMisses
}

// alignedDaily collapses the window's candles into one aligned daily candle.
func alignedDaily(candles []model.Candle) model.Candle {
	daily := model.Candle{
		StartTime: candles[0].StartTime,
		Open:      candles[0].Open,
		Close:     candles[len(candles)-1].Close,
		High:      candles[0].High,
		Low:       candles[0].Low,
	}
	for _, c := range candles {
		if c.High > daily.High {
			daily.High = c.High
		}
		if c.Low < daily.Low {
			daily.Low = c.Low
		}
		daily.Volume += c.Volume
		daily.Turnover += c.Turnover
	}
	return daily
}
