// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

// Package api implements the HTTP surface: the chi router, the handlers for
// follow requests, auth, profiles, notifications, posts, and media search,
// and the translation of service errors to HTTP responses.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/reelgraph/reelgraph/internal/logging"
	"github.com/reelgraph/reelgraph/internal/models"
	"github.com/reelgraph/reelgraph/internal/validation"
)

// maxRequestBody caps request bodies at 64 KiB. No endpoint accepts more.
const maxRequestBody = 64 << 10

// respondJSON writes the standard success envelope.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	resp := models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}
	writeEnvelope(w, status, &resp)
}

// respondError writes the standard error envelope.
func respondError(w http.ResponseWriter, status int, code, message string) {
	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	}
	writeEnvelope(w, status, &resp)
}

// respondValidationError writes a 400 carrying the field-level details.
func respondValidationError(w http.ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
	}
	writeEnvelope(w, http.StatusBadRequest, &resp)
}

func writeEnvelope(w http.ResponseWriter, status int, resp *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Logger().Error().Err(err).Msg("failed to encode response")
	}
}

// decodeJSON parses a request body into v, enforcing the body size cap and
// rejecting unknown fields.
func decodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// parseLimit reads the "limit" query parameter, clamped to the configured
// page sizes.
func (h *Handlers) parseLimit(r *http.Request) int {
	limit := h.cfg.API.DefaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > h.cfg.API.MaxPageSize {
		limit = h.cfg.API.MaxPageSize
	}
	return limit
}
