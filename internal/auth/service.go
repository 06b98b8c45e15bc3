// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reelgraph/reelgraph/internal/logging"
	"github.com/reelgraph/reelgraph/internal/models"
	"github.com/reelgraph/reelgraph/internal/store"
)

var (
	// ErrInvalidCredentials is returned for any username/password mismatch.
	// Deliberately indistinguishable from an unknown username.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotClaimable is returned when a claim targets a regular account or
	// presents a wrong token.
	ErrNotClaimable = errors.New("account is not claimable")
)

// Service implements login and the ghost-account claim flow.
type Service struct {
	users *store.UserStore
	jwt   *JWTManager
	now   func() time.Time
}

// NewService creates the authentication service.
func NewService(users *store.UserStore, jwt *JWTManager) *Service {
	return &Service{users: users, jwt: jwt, now: time.Now}
}

// Login verifies credentials and returns a session token with the account.
// Ghost accounts have no password and can never log in directly.
func (s *Service) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	if user.Ghost || user.PasswordHash == "" || !VerifyPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	logging.Ctx(ctx).Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("user logged in")

	return token, user, nil
}

// Claim activates a ghost account: the presented claim token must match the
// stored hash, after which the password is set, the ghost flag cleared, and
// the claim token invalidated. Returns a session token for the claimed
// account.
func (s *Service) Claim(ctx context.Context, username, claimToken, password string) (string, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", nil, ErrNotClaimable
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	if !user.Ghost || !VerifyClaimToken(user.ClaimTokenHash, claimToken) {
		return "", nil, ErrNotClaimable
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	user.PasswordHash = hash
	user.Ghost = false
	user.ClaimTokenHash = ""
	user.UpdatedAt = s.now()

	if err := s.users.Update(ctx, user); err != nil {
		return "", nil, fmt.Errorf("update user: %w", err)
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	logging.Ctx(ctx).Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("ghost account claimed")

	return token, user, nil
}
