// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/reelgraph/reelgraph/internal/models"
)

// NotificationStore persists Notification documents in BadgerDB, keyed by
// recipient for efficient per-user listings.
type NotificationStore struct {
	db *badger.DB
}

// NewNotificationStore creates a BadgerDB-backed notification store.
func NewNotificationStore(db *badger.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func notifKey(recipient, id string) []byte {
	return []byte(notifKeyPrefix + recipient + ":" + id)
}

// Create stores a new notification.
func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(notifKey(n.Recipient, n.ID), data)
	})
}

// ListByRecipient returns the recipient's notifications, newest first,
// capped at limit (0 means no cap).
func (s *NotificationStore) ListByRecipient(ctx context.Context, recipient string, limit int) ([]*models.Notification, error) {
	var notifications []*models.Notification

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(notifKeyPrefix + recipient + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var n models.Notification
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &n)
			}); err != nil {
				return err
			}
			notifications = append(notifications, &n)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

// MarkAllRead flags every unread notification for the recipient as read.
// Returns the number of notifications updated.
func (s *NotificationStore) MarkAllRead(ctx context.Context, recipient string) (int, error) {
	count := 0

	err := s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(notifKeyPrefix + recipient + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var n models.Notification
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &n)
			}); err != nil {
				return err
			}
			if n.Read {
				continue
			}

			n.Read = true
			data, err := json.Marshal(&n)
			if err != nil {
				return fmt.Errorf("marshal notification: %w", err)
			}
			if err := txn.Set(notifKey(recipient, n.ID), data); err != nil {
				return fmt.Errorf("set notification: %w", err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return count, nil
}
