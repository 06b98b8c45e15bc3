// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/reelgraph/reelgraph/internal/models"
)

// UserStore persists User documents in BadgerDB.
type UserStore struct {
	db *badger.DB
}

// NewUserStore creates a BadgerDB-backed user store.
func NewUserStore(db *badger.DB) *UserStore {
	return &UserStore{db: db}
}

// Create stores a new user, enforcing username uniqueness via the
// user_name index inside the same transaction.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		nameKey := []byte(usernameKeyPrefix + user.Username)
		if _, err := txn.Get(nameKey); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check username: %w", err)
		}

		if err := txn.Set([]byte(userKeyPrefix+user.ID), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		if err := txn.Set(nameKey, []byte(user.ID)); err != nil {
			return fmt.Errorf("set username index: %w", err)
		}
		return nil
	})
}

// Get retrieves a user by ID.
func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User

	err := s.db.View(func(txn *badger.Txn) error {
		return getUserTxn(txn, id, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user via the username index.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(usernameKeyPrefix + username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get username index: %w", err)
		}

		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}
		return getUserTxn(txn, id, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update overwrites an existing user document.
func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(userKeyPrefix + user.ID)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUserNotFound
		} else if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return txn.Set(key, data)
	})
}

// AddFollowEdge appends followedID to the follower's tracking list and
// followerID to the followed user's audience list, deduplicating both, in a
// single transaction. This is the only write path for either list.
func (s *UserStore) AddFollowEdge(ctx context.Context, followerID, followedID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var follower, followed models.User
		if err := getUserTxn(txn, followerID, &follower); err != nil {
			return fmt.Errorf("load follower: %w", err)
		}
		if err := getUserTxn(txn, followedID, &followed); err != nil {
			return fmt.Errorf("load followed: %w", err)
		}

		follower.Tracking = appendUnique(follower.Tracking, followedID)
		followed.Audience = appendUnique(followed.Audience, followerID)

		if err := setUserTxn(txn, &follower); err != nil {
			return fmt.Errorf("store follower: %w", err)
		}
		if err := setUserTxn(txn, &followed); err != nil {
			return fmt.Errorf("store followed: %w", err)
		}
		return nil
	})
}

// getUserTxn loads a user document within a transaction.
func getUserTxn(txn *badger.Txn, id string, out *models.User) error {
	item, err := txn.Get([]byte(userKeyPrefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

// setUserTxn writes a user document within a transaction.
func setUserTxn(txn *badger.Txn, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return txn.Set([]byte(userKeyPrefix+user.ID), data)
}

// appendUnique appends id to ids if not already present.
func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
