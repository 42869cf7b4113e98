package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/xmarks/internal/logger"
	"github.com/MrSnakeDoc/xmarks/internal/syncer"
)

// AutoSyncer periodically runs a full bookmark sync in the background.
// It is only wired when a sync interval is configured; the default is
// manual sync via the HTTP endpoint.
type AutoSyncer struct {
	syncer   *syncer.Syncer
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewAutoSyncer creates an auto-syncer. interval must be > 0.
func NewAutoSyncer(s *syncer.Syncer, log logger.Logger, interval time.Duration) *AutoSyncer {
	return &AutoSyncer{
		syncer:   s,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the periodic sync loop. The first pass runs right away;
// failures are logged and never stop the loop (the next tick retries).
func (a *AutoSyncer) Start(ctx context.Context) {
	go func() {
		a.runOnce(ctx)

		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.runOnce(ctx)
			case <-a.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the loop.
func (a *AutoSyncer) Stop() {
	close(a.stopCh)
}

func (a *AutoSyncer) runOnce(ctx context.Context) {
	res, err := a.syncer.Sync(ctx)
	if err != nil {
		a.logger.Error("scheduled sync failed",
			logger.Error(err))
		return
	}
	a.logger.Info("scheduled sync completed",
		logger.Int("added", res.Added),
		logger.Int("total", res.Total))
}
