// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. Status is "success" or "error"; Error is populated only for
// error responses and carries the user-facing message.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
}

// APIError carries a machine-readable code and a human-readable message.
//
// Common codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - ALREADY_FOLLOWING, REQUEST_PENDING, COOLDOWN_ACTIVE: follow policy
//   - AUTHENTICATION_ERROR: invalid/missing credentials
//   - AUTHORIZATION_ERROR: acting user may not perform the operation
//   - NOT_FOUND: resource doesn't exist
//   - STORE_ERROR: persistence failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
