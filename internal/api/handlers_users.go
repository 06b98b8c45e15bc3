// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reelgraph/reelgraph/internal/logging"
	"github.com/reelgraph/reelgraph/internal/models"
	"github.com/reelgraph/reelgraph/internal/store"
)

// GetProfile handles GET /api/v1/users/{userID}.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"profile":   user.Public(),
		"ghost":     user.Ghost,
		"tracking":  len(user.Tracking),
		"audience":  len(user.Audience),
		"joined_at": user.CreatedAt,
	})
}

// ListFollowers handles GET /api/v1/users/{userID}/followers, backed by the
// denormalized audience array.
func (h *Handlers) ListFollowers(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.resolveProfiles(r, user.Audience))
}

// ListFollowing handles GET /api/v1/users/{userID}/following, backed by the
// denormalized tracking array.
func (h *Handlers) ListFollowing(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.resolveProfiles(r, user.Tracking))
}

// resolveProfiles maps user IDs to public profiles, skipping deleted
// accounts.
func (h *Handlers) resolveProfiles(r *http.Request, ids []string) []models.PublicProfile {
	profiles := make([]models.PublicProfile, 0, len(ids))
	for _, id := range ids {
		user, err := h.users.Get(r.Context(), id)
		if err != nil {
			if !errors.Is(err, store.ErrUserNotFound) {
				logging.Ctx(r.Context()).Warn().Err(err).Str("user_id", id).Msg("profile lookup failed")
			}
			continue
		}
		profiles = append(profiles, user.Public())
	}
	return profiles
}
