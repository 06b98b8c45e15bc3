// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package social

import (
	"math"
	"time"

	"github.com/reelgraph/reelgraph/internal/models"
)

// DefaultCooldown is how long a rejection blocks a re-request.
const DefaultCooldown = 15 * time.Minute

// CooldownPolicy decides whether a sender may create a new follow request
// toward a receiver right now. It is a pure function of its inputs, which
// keeps the time-based branches directly testable.
type CooldownPolicy struct {
	Cooldown time.Duration
}

// Evaluate applies the policy checks in order. Each check short-circuits
// with its own error so the caller can surface a distinct reason:
//
//  1. sender already tracks the receiver -> ErrAlreadyFollowing
//  2. a pending request exists           -> ErrRequestPending
//  3. a rejection within the window      -> CooldownError with minutes left
//  4. a rejection past the window        -> allowed; the stale record must
//     be deleted first (deleteStale is true)
//  5. no prior request                   -> allowed
//
// existing is the current request for the pair, or nil when none exists.
func (p CooldownPolicy) Evaluate(sender *models.User, receiverID string, existing *models.FriendRequest, now time.Time) (deleteStale bool, err error) {
	if sender.Follows(receiverID) {
		return false, ErrAlreadyFollowing
	}

	if existing == nil {
		return false, nil
	}

	if existing.IsPending() {
		return false, ErrRequestPending
	}

	if existing.IsRejected() {
		elapsed := now.Sub(existing.RejectedSince())
		if elapsed < p.Cooldown {
			return false, &CooldownError{Remaining: remainingMinutes(p.Cooldown - elapsed)}
		}
		// Rejection has aged out; clear it on the way through.
		return true, nil
	}

	return false, nil
}

// remainingMinutes converts a remaining duration to whole minutes, rounded
// up, never less than 1.
func remainingMinutes(remaining time.Duration) int {
	minutes := int(math.Ceil(remaining.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
