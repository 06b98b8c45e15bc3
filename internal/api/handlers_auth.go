// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"net/http"

	"github.com/reelgraph/reelgraph/internal/validation"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1,max=256"`
}

type claimRequest struct {
	Username   string `json:"username" validate:"required,min=1,max=64"`
	ClaimToken string `json:"claim_token" validate:"required,min=1,max=256"`
	Password   string `json:"password" validate:"required,min=10,max=256"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Login handles POST /api/v1/auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{Token: token, User: user.Public()})
}

// Claim handles POST /api/v1/auth/claim: activation of a ghost account via
// its single-use claim token.
func (h *Handlers) Claim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	token, user, err := h.auth.Claim(r.Context(), req.Username, req.ClaimToken, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{Token: token, User: user.Public()})
}
