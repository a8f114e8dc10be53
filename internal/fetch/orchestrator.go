package fetch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpclient "github.com/Alias1177/Screener/internal/platform/http"
)

// Options holds orchestrator tuning.
type Options struct {
	BatchSize     int
	Workers       int
	BatchPause    time.Duration
	ThrottlePause time.Duration
}

// Orchestrator wraps upstream calls with the shared pause gate and a
// single-retry-on-throttle policy, and schedules per-symbol work in
// fixed-size batches under bounded concurrency.
type Orchestrator struct {
	gate    *PauseGate
	metrics *RunMetrics
	opts    Options
	logger  zerolog.Logger
}

// NewOrchestrator creates an orchestrator. Zero option fields get defaults.
func NewOrchestrator(opts Options) *Orchestrator {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 10
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.ThrottlePause <= 0 {
		opts.ThrottlePause = 31 * time.Second
	}

	return &Orchestrator{
		gate:    NewPauseGate(opts.ThrottlePause),
		metrics: &RunMetrics{},
		opts:    opts,
		logger:  log.With().Str("component", "fetch_orchestrator").Logger(),
	}
}

// Metrics exposes the shared run counters.
func (o *Orchestrator) Metrics() *RunMetrics {
	return o.metrics
}

// Fetch runs fn under the pause gate. A throttled call triggers the shared
// pause and is retried exactly once after the pause elapses; a second
// failure of any kind is returned to the caller, which must degrade to
// "insufficient data". Non-throttle failures are never retried.
func (o *Orchestrator) Fetch(ctx context.Context, fn func(context.Context) error) error {
	if err := o.gate.Wait(ctx); err != nil {
		return err
	}

	o.metrics.Requests.Add(1)
	err := fn(ctx)
	if err == nil {
		o.metrics.Success.Add(1)
		return nil
	}

	if !errors.Is(err, httpclient.ErrThrottled) {
		o.metrics.Errors.Add(1)
		return err
	}

	o.metrics.Throttled.Add(1)
	if o.gate.Trigger() {
		o.metrics.Pauses.Add(1)
		o.logger.Warn().Dur("pause", o.opts.ThrottlePause).Msg("Upstream throttled, pausing all requests")
	}

	if err := o.gate.Wait(ctx); err != nil {
		return err
	}

	o.metrics.Retries.Add(1)
	o.metrics.Requests.Add(1)
	if err := fn(ctx); err != nil {
		o.metrics.RetriesFailed.Add(1)
		if errors.Is(err, httpclient.ErrThrottled) {
			o.metrics.Throttled.Add(1)
			if o.gate.Trigger() {
				o.metrics.Pauses.Add(1)
			}
		} else {
			o.metrics.Errors.Add(1)
		}
		return err
	}

	o.metrics.RetriesOK.Add(1)
	o.metrics.Success.Add(1)
	return nil
}

// RunBatches partitions symbols into fixed-size batches and runs task for
// each symbol under the worker limit. Batch N+1 never starts before batch
// N's tasks complete and the inter-batch pause elapses; results within a
// batch are unordered.
func (o *Orchestrator) RunBatches(ctx context.Context, symbols []string, task func(context.Context, string)) error {
	for start := 0; start < len(symbols); start += o.opts.BatchSize {
		end := start + o.opts.BatchSize
		if end > len(symbols) {
			end = len(symbols)
		}

		o.logger.Debug().Int("from", start).Int("to", end).Int("total", len(symbols)).Msg("Starting batch")

		sem := make(chan struct{}, o.opts.Workers)
		var wg sync.WaitGroup
		for _, symbol := range symbols[start:end] {
			if err := ctx.Err(); err != nil {
				wg.Wait()
				return err
			}
			wg.Add(1)
			sem <- struct{}{}
			go func(symbol string) {
				defer wg.Done()
				defer func() { <-sem }()
				task(ctx, symbol)
			}(symbol)
		}
		wg.Wait()

		if end < len(symbols) && o.opts.BatchPause > 0 {
			timer := time.NewTimer(o.opts.BatchPause)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}

	return nil
}
