// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"errors"
	"net/http"

	"github.com/reelgraph/reelgraph/internal/auth"
	"github.com/reelgraph/reelgraph/internal/logging"
	"github.com/reelgraph/reelgraph/internal/media"
	"github.com/reelgraph/reelgraph/internal/social"
	"github.com/reelgraph/reelgraph/internal/store"
)

// writeServiceError maps a service-layer error to an HTTP response. Policy
// rejections are 400s whose message is shown to the user verbatim; unknown
// errors become opaque 500s so store internals never leak.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var cooldown *social.CooldownError

	switch {
	case errors.As(err, &cooldown):
		respondError(w, http.StatusBadRequest, "COOLDOWN_ACTIVE", cooldown.Error())

	case errors.Is(err, social.ErrAlreadyFollowing):
		respondError(w, http.StatusBadRequest, "ALREADY_FOLLOWING", err.Error())

	case errors.Is(err, social.ErrRequestPending):
		respondError(w, http.StatusBadRequest, "REQUEST_PENDING", err.Error())

	case errors.Is(err, social.ErrSelfFollow):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())

	case errors.Is(err, social.ErrNotAuthorized):
		respondError(w, http.StatusUnauthorized, "AUTHORIZATION_ERROR", err.Error())

	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", err.Error())

	case errors.Is(err, auth.ErrNotClaimable):
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", err.Error())

	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrRequestNotFound),
		errors.Is(err, store.ErrPostNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())

	case errors.Is(err, media.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", err.Error())

	default:
		logging.Ctx(r.Context()).Error().Err(err).
			Str("path", r.URL.Path).
			Msg("request failed")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
	}
}
