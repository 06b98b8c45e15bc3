// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package models

import "time"

// Post is a user post tied to external media metadata. MediaID references the
// external metadata provider's identifier; title and type are denormalized at
// creation time so the feed renders without a metadata round trip.
type Post struct {
	ID         string    `json:"id"`
	Author     string    `json:"author"`
	MediaID    string    `json:"media_id"`
	MediaTitle string    `json:"media_title"`
	MediaType  string    `json:"media_type"` // "movie" or "show"
	Body       string    `json:"body"`
	Likes      []string  `json:"likes"` // user IDs, deduplicated on write
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LikedBy reports whether the given user already liked the post.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
