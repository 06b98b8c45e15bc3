// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"net/http"

	"github.com/reelgraph/reelgraph/internal/auth"
)

// ListNotifications handles GET /api/v1/notifications: the authenticated
// user's notifications, newest first.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	notifications, err := h.notifications.ListByRecipient(r.Context(), userID, h.parseLimit(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

// MarkNotificationsRead handles POST /api/v1/notifications/read, flagging
// every unread notification of the authenticated user.
func (h *Handlers) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	count, err := h.notifications.MarkAllRead(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"marked_read": count})
}
