// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

// Package social implements the follow-request lifecycle: cooldown policy,
// request creation and resolution, the social graph mutation on accept, and
// the background expiry sweeper.
package social

import (
	"errors"
	"fmt"
)

// Follow policy errors. Each maps to a distinct user-facing rejection reason;
// the HTTP layer translates them to status codes.
var (
	// ErrAlreadyFollowing is returned when the sender already tracks the
	// receiver.
	ErrAlreadyFollowing = errors.New("you are already following this user")

	// ErrRequestPending is returned when a pending request for the same
	// (sender, receiver) pair already exists.
	ErrRequestPending = errors.New("a follow request to this user is already pending")

	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("you cannot follow yourself")

	// ErrNotAuthorized is returned when a user other than the request's
	// receiver tries to accept or reject it.
	ErrNotAuthorized = errors.New("only the request's receiver may act on it")
)

// CooldownError is returned when a recent rejection blocks a new request.
// Remaining is the number of whole minutes left in the cooldown window,
// rounded up, so it is always at least 1.
type CooldownError struct {
	Remaining int
}

func (e *CooldownError) Error() string {
	unit := "minutes"
	if e.Remaining == 1 {
		unit = "minute"
	}
	return fmt.Sprintf("this user rejected your request recently, try again in %d %s", e.Remaining, unit)
}
