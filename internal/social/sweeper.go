// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package social

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelgraph/reelgraph/internal/logging"
	"github.com/reelgraph/reelgraph/internal/metrics"
	"github.com/reelgraph/reelgraph/internal/store"
)

// DefaultSweepInterval is how often the sweeper scans for stale rejections.
const DefaultSweepInterval = 5 * time.Minute

// Sweeper deletes rejected follow requests whose cooldown window has passed.
// It is the eager counterpart to the lazy deletion in the cooldown policy:
// the sweep bounds the store size even when nobody ever retries a follow,
// while the lazy path keeps the policy correct between sweeps.
//
// The sweeper holds no global state; the host process owns it, runs it under
// the supervisor, and cancels it on shutdown.
type Sweeper struct {
	requests *store.RequestStore
	cooldown time.Duration
	interval time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// NewSweeper creates an expiry sweeper over the given request store.
func NewSweeper(requests *store.RequestStore, cooldown, interval time.Duration) *Sweeper {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		requests: requests,
		cooldown: cooldown,
		interval: interval,
		now:      time.Now,
	}
}

// RunWithContext sweeps once immediately, then on every interval tick until
// the context is canceled. Sweep failures are logged and never abort the
// loop; the next scheduled sweep always proceeds.
func (s *Sweeper) RunWithContext(ctx context.Context) error {
	logger := logging.With().Str("component", "sweeper").Logger()
	logger.Info().
		Dur("interval", s.interval).
		Dur("cooldown", s.cooldown).
		Msg("expiry sweeper started")

	s.sweepAndLog(ctx, logger)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("expiry sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			s.sweepAndLog(ctx, logger)
		}
	}
}

// Sweep deletes every rejected request older than the cooldown window and
// returns the number of records removed. Safe to call repeatedly; a sweep
// over an already-clean store deletes nothing and returns no error.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.cooldown)
	deleted, err := s.requests.DeleteRejectedBefore(ctx, cutoff)
	if err != nil {
		return deleted, err
	}
	metrics.RecordSweep(deleted)
	return deleted, nil
}

// sweepAndLog runs one sweep and logs the outcome. Errors are reported but
// swallowed so the schedule survives a temporarily unavailable store.
func (s *Sweeper) sweepAndLog(ctx context.Context, logger zerolog.Logger) {
	deleted, err := s.Sweep(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("sweep failed, will retry on next tick")
		return
	}
	if deleted > 0 {
		logger.Info().Int("deleted", deleted).Msg("stale rejected requests removed")
	}
}
