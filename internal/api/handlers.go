// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"time"

	"github.com/reelgraph/reelgraph/internal/auth"
	"github.com/reelgraph/reelgraph/internal/config"
	"github.com/reelgraph/reelgraph/internal/engagement"
	"github.com/reelgraph/reelgraph/internal/media"
	"github.com/reelgraph/reelgraph/internal/social"
	"github.com/reelgraph/reelgraph/internal/store"
)

// Handlers bundles the services behind the HTTP surface.
type Handlers struct {
	cfg           *config.Config
	social        *social.Service
	auth          *auth.Service
	users         *store.UserStore
	notifications *store.NotificationStore
	engagement    *engagement.Service

	// media is nil when no metadata provider is configured.
	media media.Searcher

	startedAt time.Time
}

// NewHandlers creates the handler set.
func NewHandlers(
	cfg *config.Config,
	socialSvc *social.Service,
	authSvc *auth.Service,
	users *store.UserStore,
	notifications *store.NotificationStore,
	engagementSvc *engagement.Service,
	mediaClient media.Searcher,
) *Handlers {
	return &Handlers{
		cfg:           cfg,
		social:        socialSvc,
		auth:          authSvc,
		users:         users,
		notifications: notifications,
		engagement:    engagementSvc,
		media:         mediaClient,
		startedAt:     time.Now(),
	}
}
