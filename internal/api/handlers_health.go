// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"net/http"
	"time"
)

// Health handles GET /api/v1/health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}
