package fetch

import (
	"context"
	"sync"
	"time"
)

// PauseGate is a process-wide gate that serializes throttle recovery. The
// first caller to trigger it starts a fixed-duration pause; every concurrent
// and subsequent caller waits on the same deadline before proceeding, so a
// throttle never fans out into a retry storm.
type PauseGate struct {
	duration time.Duration
	now      func() time.Time

	mu     sync.Mutex
	resume time.Time
}

// NewPauseGate creates a gate with the given pause duration.
func NewPauseGate(duration time.Duration) *PauseGate {
	return &PauseGate{
		duration: duration,
		now:      time.Now,
	}
}

// Trigger starts a pause unless one is already active. Returns true when
// this call started a new pause.
func (g *PauseGate) Trigger() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if now.Before(g.resume) {
		return false
	}
	g.resume = now.Add(g.duration)
	return true
}

// Wait blocks until any active pause has elapsed. Calls made while no pause
// is active return immediately.
func (g *PauseGate) Wait(ctx context.Context) error {
	g.mu.Lock()
	remaining := g.resume.Sub(g.now())
	g.mu.Unlock()

	if remaining <= 0 {
		return nil
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Active reports whether a pause is currently in effect.
func (g *PauseGate) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.now().Before(g.resume)
}
