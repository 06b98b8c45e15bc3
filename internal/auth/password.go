// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the bcrypt hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateClaimToken produces a random token for a claimable ghost account,
// returning the token (handed to the production house out of band) and its
// SHA-256 hash (the only form stored).
func GenerateClaimToken() (token, tokenHash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate claim token: %w", err)
	}
	token = hex.EncodeToString(buf)
	return token, HashClaimToken(token), nil
}

// HashClaimToken returns the hex SHA-256 of a claim token.
func HashClaimToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// VerifyClaimToken compares a presented token against the stored hash in
// constant time.
func VerifyClaimToken(storedHash, token string) bool {
	if storedHash == "" {
		return false
	}
	presented := HashClaimToken(token)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(presented)) == 1
}
