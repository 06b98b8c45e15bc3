// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package social

import (
	"context"
	"fmt"

	"github.com/reelgraph/reelgraph/internal/logging"
	"github.com/reelgraph/reelgraph/internal/store"
)

// GraphMutator applies the accepted-follow side effect: the follower's
// tracking list gains the followed user, and the followed user's audience
// list gains the follower. It is the single write path for both lists, which
// is what keeps the tracking/audience inverse invariant enforceable.
//
// The relation is one-directional. Accepting a follow from A to B does not
// make B follow A; "mutual" relationships only arise from two independent
// accepted requests.
type GraphMutator struct {
	users *store.UserStore
}

// NewGraphMutator creates a graph mutator over the given user store.
func NewGraphMutator(users *store.UserStore) *GraphMutator {
	return &GraphMutator{users: users}
}

// Follow records that followerID now tracks followedID. Idempotent: both
// lists are treated as logical sets and deduplicated on write, so replays
// cannot produce duplicate entries.
func (g *GraphMutator) Follow(ctx context.Context, followerID, followedID string) error {
	if err := g.users.AddFollowEdge(ctx, followerID, followedID); err != nil {
		return fmt.Errorf("apply follow edge: %w", err)
	}

	logging.Ctx(ctx).Debug().
		Str("follower", followerID).
		Str("followed", followedID).
		Msg("follow edge applied")
	return nil
}
