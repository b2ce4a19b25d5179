package appointments

import (
	"context"
	"time"

	"github.com/dentalspace/clinic-admin-api/pkg/logging"
)

// Refresher polls the webhook backend on a fixed interval and keeps the
// cache current.
type Refresher struct {
	cache    *Cache
	interval time.Duration
	logger   *logging.Logger
}

// NewRefresher creates a refresher for the given cache.
func NewRefresher(cache *Cache, interval time.Duration, logger *logging.Logger) *Refresher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Refresher{
		cache:    cache,
		interval: interval,
		logger:   logger,
	}
}

// Run refreshes once immediately, then on every tick until ctx is cancelled.
// Refresh errors are logged and the loop keeps running.
func (r *Refresher) Run(ctx context.Context) {
	r.logger.Info("appointment poller started", "interval", r.interval.String())

	if err := r.cache.Refresh(ctx); err != nil {
		r.logger.Warn("initial appointment refresh failed", "error", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("appointment poller stopped")
			return
		case <-ticker.C:
			if err := r.cache.Refresh(ctx); err != nil {
				r.logger.Warn("appointment refresh failed", "error", err)
			}
		}
	}
}
