// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package services

import (
	"context"

	"github.com/reelgraph/reelgraph/internal/social"
)

// SweeperService runs the rejected-request expiry sweeper under supervision.
// The sweeper's loop already honors context cancellation; this wrapper only
// gives it a suture identity so crashes restart it with backoff.
type SweeperService struct {
	sweeper *social.Sweeper
}

// NewSweeperService wraps the expiry sweeper as a supervised service.
func NewSweeperService(sweeper *social.Sweeper) *SweeperService {
	return &SweeperService{sweeper: sweeper}
}

// Serve implements suture.Service.
func (s *SweeperService) Serve(ctx context.Context) error {
	return s.sweeper.RunWithContext(ctx)
}

// String identifies the service in supervisor logs.
func (s *SweeperService) String() string {
	return "expiry-sweeper"
}
