// Package janitor periodically deletes confirmation and reset tokens that
// have outlived their TTL. Reads already treat such tokens as invalid, so the
// sweep only keeps the store from growing.
package janitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/uptask/internal/metrics"
	"github.com/robfig/cron/v3"
)

type TokenSweeper interface {
	DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type Janitor struct {
	tokens TokenSweeper
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func New(tokens TokenSweeper, ttl time.Duration, logger *slog.Logger) *Janitor {
	return &Janitor{
		tokens: tokens,
		ttl:    ttl,
		logger: logger.With("component", "janitor"),
		now:    time.Now,
	}
}

// Start sweeps once, then on every tick of the cron schedule until ctx is done.
// An unparsable schedule is returned before anything runs.
func (j *Janitor) Start(ctx context.Context, schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { j.sweep(ctx) }); err != nil {
		return fmt.Errorf("janitor schedule %q: %w", schedule, err)
	}

	j.logger.Info("janitor started", "schedule", schedule, "token_ttl", j.ttl)
	j.sweep(ctx)
	c.Start()

	<-ctx.Done()
	// Wait for a sweep in flight to return.
	<-c.Stop().Done()
	j.logger.Info("janitor shut down")
	return nil
}

// Sweep deletes every token issued more than ttl ago and reports how many went.
func (j *Janitor) Sweep(ctx context.Context) (int, error) {
	start := j.now()
	defer func() { metrics.JanitorCycleDuration.Observe(time.Since(start).Seconds()) }()

	n, err := j.tokens.DeleteIssuedBefore(ctx, start.Add(-j.ttl))
	if err != nil {
		return 0, fmt.Errorf("sweep tokens: %w", err)
	}
	metrics.TokensReapedTotal.Add(float64(n))
	return n, nil
}

func (j *Janitor) sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	n, err := j.Sweep(ctx)
	if err != nil {
		j.logger.Error("janitor sweep", "error", err)
		return
	}
	if n > 0 {
		j.logger.Info("janitor reaped tokens", "count", n)
	}
}
