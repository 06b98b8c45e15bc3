// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"net/http"
	"strings"
)

// SearchMedia handles GET /api/v1/media/search?q=. Returns 503 when no
// metadata provider is configured or its circuit breaker is open.
func (h *Handlers) SearchMedia(w http.ResponseWriter, r *http.Request) {
	if h.media == nil {
		respondError(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "no media metadata provider is configured")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "query parameter q is required")
		return
	}

	results, err := h.media.Search(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}
