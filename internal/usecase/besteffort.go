package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/uptask/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// write is one persistence call in a best-effort group. op names it in logs and metrics.
type write struct {
	op string
	fn func(ctx context.Context) error
}

// bestEffort runs primary and secondaries concurrently and waits for all of
// them. Only the primary's error is returned; a failed secondary is logged
// and counted. The writes run on a context that ignores the caller's
// cancellation, so an aborted request never leaves half of a pair unsent.
func bestEffort(ctx context.Context, logger *slog.Logger, primary write, secondaries ...write) error {
	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	for _, w := range secondaries {
		g.Go(func() error {
			if err := w.fn(ctx); err != nil {
				logger.ErrorContext(ctx, "best-effort write failed", "op", w.op, "error", err)
				metrics.BestEffortWriteFailuresTotal.WithLabelValues(w.op).Inc()
			}
			return nil
		})
	}
	g.Go(func() error {
		if err := primary.fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", primary.op, err)
		}
		return nil
	})
	return g.Wait()
}
