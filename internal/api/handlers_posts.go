// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reelgraph/reelgraph/internal/auth"
	"github.com/reelgraph/reelgraph/internal/validation"
)

type createPostRequest struct {
	MediaID    string `json:"media_id" validate:"required,max=64"`
	MediaTitle string `json:"media_title" validate:"required,max=256"`
	MediaType  string `json:"media_type" validate:"required,oneof=movie show"`
	Body       string `json:"body" validate:"required,max=2000"`
}

// CreatePost handles POST /api/v1/posts.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	post, err := h.engagement.CreatePost(r.Context(), userID, req.MediaID, req.MediaTitle, req.MediaType, req.Body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// ListFeed handles GET /api/v1/posts: the authenticated user's feed, composed
// from tracked accounts plus their own posts.
func (h *Handlers) ListFeed(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	posts, err := h.engagement.Feed(r.Context(), userID, h.parseLimit(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

// LikePost handles POST /api/v1/posts/{postID}/like.
func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	postID := chi.URLParam(r, "postID")

	post, err := h.engagement.Like(r.Context(), userID, postID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}
