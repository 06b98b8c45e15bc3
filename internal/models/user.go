// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

// Package models defines the persistent record kinds shared across the
// application: users, follow requests, notifications, and posts.
package models

import (
	"time"
)

// User is an account record. Regular accounts are created through signup;
// "ghost" accounts represent production houses that exist before anyone has
// claimed them, and become regular accounts through the claim flow.
//
// Tracking and Audience are denormalized inverses of one another:
// B ∈ A.Tracking must imply A ∈ B.Audience. Both arrays are written only by
// the social graph mutator so the invariant is enforced in exactly one place.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Email       string `json:"email,omitempty"`

	// PasswordHash is a bcrypt hash. Handlers never serialize User directly;
	// clients only ever see PublicProfile or explicit response structs.
	PasswordHash string `json:"password_hash,omitempty"`

	// Ghost marks an unclaimed production-house account.
	// ClaimTokenHash holds the SHA-256 of the single-use claim token.
	Ghost          bool   `json:"ghost,omitempty"`
	ClaimTokenHash string `json:"claim_token_hash,omitempty"`

	// Tracking lists user IDs this user follows.
	// Audience lists user IDs following this user.
	Tracking []string `json:"tracking"`
	Audience []string `json:"audience"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicProfile is the subset of User exposed to other users.
type PublicProfile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Public returns the user's public profile fields.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

// Follows reports whether the user already tracks the given user ID.
func (u *User) Follows(userID string) bool {
	for _, id := range u.Tracking {
		if id == userID {
			return true
		}
	}
	return false
}
