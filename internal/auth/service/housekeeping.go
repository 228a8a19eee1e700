package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/taskdeck/taskdeck/internal/auth/store"
)

// DefaultRefreshRetention is how long expired refresh token rows are
// kept before pruning. Redemption never deletes rows, so revoked and
// expired tokens stay auditable for this window.
const DefaultRefreshRetention = 90 * 24 * time.Hour

// HousekeepingService periodically prunes refresh token rows that are
// long past expiry, keeping the refresh_tokens table bounded.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service with the given
// interval and retention window. Non-positive values get defaults
// (1 hour interval, DefaultRefreshRetention).
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = DefaultRefreshRetention
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// Non-blocking; call after the database is ready. Call Stop() to
// gracefully shut the worker down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "retention", s.Retention)
}

// Stop gracefully shuts down the background worker.
// Blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-s.Retention)

	deleted, err := s.Store.RefreshTokens().DeleteRefreshTokensExpiredBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to prune expired refresh tokens", "error", err)
		return
	}

	s.Logger.Info("housekeeping cleanup completed", "deleted", deleted, "cutoff", cutoff)
}
