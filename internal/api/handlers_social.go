// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reelgraph/reelgraph/internal/auth"
)

// SendFollowRequest handles POST /follow/{receiverID}. The sender is the
// authenticated user.
func (h *Handlers) SendFollowRequest(w http.ResponseWriter, r *http.Request) {
	senderID := auth.UserIDFromContext(r.Context())
	receiverID := chi.URLParam(r, "receiverID")
	if receiverID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "receiver id is required")
		return
	}

	req, err := h.social.SendRequest(r.Context(), senderID, receiverID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

// ListIncomingRequests handles GET /requests: the authenticated user's
// pending incoming requests, each joined with the sender's public profile.
func (h *Handlers) ListIncomingRequests(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	incoming, err := h.social.ListIncoming(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, incoming)
}

// AcceptRequest handles POST /accept/{requestID}.
func (h *Handlers) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	requestID := chi.URLParam(r, "requestID")

	if err := h.social.Accept(r.Context(), requestID, userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"result": "accepted"})
}

// RejectRequest handles POST /reject/{requestID}.
func (h *Handlers) RejectRequest(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	requestID := chi.URLParam(r, "requestID")

	if err := h.social.Reject(r.Context(), requestID, userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"result": "rejected"})
}
