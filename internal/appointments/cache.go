package appointments

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dentalspace/clinic-admin-api/internal/observability/metrics"
	"github.com/dentalspace/clinic-admin-api/internal/webhook"
	"github.com/dentalspace/clinic-admin-api/pkg/logging"
)

// Lister fetches the appointment list from the webhook backend.
type Lister interface {
	GetAppointments(ctx context.Context) (*webhook.ListResponse, error)
}

// Cache holds the cached appointment snapshot. The backend is the single
// source of truth; the cache is replaced wholesale on every successful
// refresh and never patched in place.
//
// Every fetch is tagged with a monotonically increasing sequence number and a
// response is applied only if no newer response has landed first, so an
// overlapping timer refresh cannot overwrite fresher data with a stale body.
type Cache struct {
	client  Lister
	logger  *logging.Logger
	metrics *metrics.RefreshMetrics

	nextSeq atomic.Uint64

	mu          sync.RWMutex
	appliedSeq  uint64
	list        []webhook.Appointment
	botActive   bool
	lastErr     error
	refreshedAt time.Time
}

// NewCache creates an empty cache. The bot is assumed active until the first
// list response says otherwise.
func NewCache(client Lister, logger *logging.Logger, m *metrics.RefreshMetrics) *Cache {
	if logger == nil {
		logger = logging.Default()
	}
	return &Cache{
		client:    client,
		logger:    logger,
		metrics:   m,
		botActive: true,
	}
}

// Refresh fetches the list from the backend and replaces the snapshot. On
// failure the previous snapshot is kept and the error recorded; reads keep
// serving stale data.
func (c *Cache) Refresh(ctx context.Context) error {
	seq := c.nextSeq.Add(1)

	resp, err := c.client.GetAppointments(ctx)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		c.metrics.ObserveRefresh(metrics.RefreshError)
		c.logger.Error("appointment refresh failed", "error", err)
		return err
	}

	list := slices.Clone(resp.Data)
	SortByStartDesc(list)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.appliedSeq {
		// A newer response has already been applied; drop this one.
		c.metrics.ObserveRefresh(metrics.RefreshStaleDropped)
		c.logger.Debug("stale refresh response dropped", "seq", seq, "applied", c.appliedSeq)
		return nil
	}
	c.appliedSeq = seq
	c.list = list
	c.lastErr = nil
	c.refreshedAt = time.Now()
	if resp.BotActive != nil {
		c.botActive = *resp.BotActive
	}
	c.metrics.ObserveRefresh(metrics.RefreshApplied)
	return nil
}

// Snapshot returns the filtered appointment list, the last read error (nil
// when the most recent refresh succeeded), and when the snapshot was applied.
func (c *Cache) Snapshot(search, status string) ([]webhook.Appointment, error, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	filtered := make([]webhook.Appointment, 0, len(c.list))
	for _, apt := range c.list {
		if Matches(apt, search, status) {
			filtered = append(filtered, apt)
		}
	}
	return filtered, c.lastErr, c.refreshedAt
}

// Get returns the cached appointment with the given id.
func (c *Cache) Get(id string) (webhook.Appointment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, apt := range c.list {
		if apt.ID == id {
			return apt, true
		}
	}
	return webhook.Appointment{}, false
}

// BotActive returns the current bot state.
func (c *Cache) BotActive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.botActive
}

// SetBotActive flips the bot state and returns the previous value, so a
// failed backend write can revert precisely.
func (c *Cache) SetBotActive(active bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.botActive
	c.botActive = active
	return prev
}
