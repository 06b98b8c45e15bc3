// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package models

import "time"

// RequestStatus enumerates the live states of a follow request.
//
// There is deliberately no "accepted" status: acceptance deletes the record,
// so the terminal accepted state is represented by the record's absence. A
// rejected record is retained so the cooldown policy can see it, and carries
// RejectedAt for the cooldown window calculation.
type RequestStatus string

const (
	// StatusPending is the initial state of every follow request.
	StatusPending RequestStatus = "pending"

	// StatusRejected is set when the receiver declines; the record persists
	// until the cooldown window elapses.
	StatusRejected RequestStatus = "rejected"
)

// FriendRequest records a pending or rejected follow attempt from Sender
// toward Receiver. At most one pending request exists per (sender, receiver)
// pair; the store enforces this transactionally on create.
type FriendRequest struct {
	ID       string        `json:"id"`
	Sender   string        `json:"sender"`
	Receiver string        `json:"receiver"`
	Status   RequestStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is refreshed whenever Status changes.
	UpdatedAt time.Time `json:"updated_at"`
	// RejectedAt is set when Status transitions to rejected.
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
}

// IsPending reports whether the request is awaiting a decision.
func (r *FriendRequest) IsPending() bool {
	return r.Status == StatusPending
}

// IsRejected reports whether the request was declined by the receiver.
func (r *FriendRequest) IsRejected() bool {
	return r.Status == StatusRejected
}

// RejectedSince returns the time the rejection took effect. Falls back to
// UpdatedAt for records persisted before RejectedAt existed.
func (r *FriendRequest) RejectedSince() time.Time {
	if r.RejectedAt != nil {
		return *r.RejectedAt
	}
	return r.UpdatedAt
}

// IncomingRequest is a pending request joined with the sender's public
// profile, as returned by the list-incoming operation.
type IncomingRequest struct {
	Request FriendRequest `json:"request"`
	Sender  PublicProfile `json:"sender"`
}
