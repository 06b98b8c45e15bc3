// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/reelgraph/reelgraph/internal/models"
)

// RequestStore persists FriendRequest documents in BadgerDB.
//
// Alongside the primary freq:<id> document it maintains two indexes:
// freq_pair:<sender>:<receiver> for the one-request-per-pair invariant and
// cooldown lookups, and freq_recv:<receiver>:<id> for incoming listings.
type RequestStore struct {
	db *badger.DB
}

// NewRequestStore creates a BadgerDB-backed follow request store.
func NewRequestStore(db *badger.DB) *RequestStore {
	return &RequestStore{db: db}
}

// pairKey builds the pair index key for an ordered (sender, receiver) pair.
func pairKey(sender, receiver string) []byte {
	return []byte(pairKeyPrefix + sender + ":" + receiver)
}

// Create stores a new request. The pair index is checked and written in the
// same transaction, so two concurrent creates for the same (sender, receiver)
// pair cannot both succeed; the loser gets ErrPairExists.
func (s *RequestStore) Create(ctx context.Context, req *models.FriendRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		pk := pairKey(req.Sender, req.Receiver)
		if _, err := txn.Get(pk); err == nil {
			return ErrPairExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check pair index: %w", err)
		}

		if err := txn.Set([]byte(requestKeyPrefix+req.ID), data); err != nil {
			return fmt.Errorf("set request: %w", err)
		}
		if err := txn.Set(pk, []byte(req.ID)); err != nil {
			return fmt.Errorf("set pair index: %w", err)
		}
		recvKey := []byte(receiverKeyPrefix + req.Receiver + ":" + req.ID)
		if err := txn.Set(recvKey, []byte(req.ID)); err != nil {
			return fmt.Errorf("set receiver index: %w", err)
		}
		return nil
	})
}

// Get retrieves a request by ID.
func (s *RequestStore) Get(ctx context.Context, id string) (*models.FriendRequest, error) {
	var req models.FriendRequest

	err := s.db.View(func(txn *badger.Txn) error {
		return getRequestTxn(txn, id, &req)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByPair retrieves the current request for an ordered (sender, receiver)
// pair, whatever its status. Returns ErrRequestNotFound when none exists.
func (s *RequestStore) GetByPair(ctx context.Context, sender, receiver string) (*models.FriendRequest, error) {
	var req models.FriendRequest

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(pairKey(sender, receiver))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRequestNotFound
		}
		if err != nil {
			return fmt.Errorf("get pair index: %w", err)
		}

		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}
		return getRequestTxn(txn, id, &req)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Update overwrites an existing request document. Used for the reject
// transition; indexes are keyed by ID and pair, which never change.
func (s *RequestStore) Update(ctx context.Context, req *models.FriendRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(requestKeyPrefix + req.ID)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRequestNotFound
		} else if err != nil {
			return fmt.Errorf("get request: %w", err)
		}
		return txn.Set(key, data)
	})
}

// Delete removes a request and its index entries in one transaction.
// Returns ErrRequestNotFound if the record is already gone, which lets the
// accept path detect a concurrent accept and back off.
func (s *RequestStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var req models.FriendRequest
		if err := getRequestTxn(txn, id, &req); err != nil {
			return err
		}

		if err := txn.Delete([]byte(requestKeyPrefix + id)); err != nil {
			return fmt.Errorf("delete request: %w", err)
		}
		if err := txn.Delete(pairKey(req.Sender, req.Receiver)); err != nil {
			return fmt.Errorf("delete pair index: %w", err)
		}
		recvKey := []byte(receiverKeyPrefix + req.Receiver + ":" + id)
		if err := txn.Delete(recvKey); err != nil {
			return fmt.Errorf("delete receiver index: %w", err)
		}
		return nil
	})
}

// ListPendingByReceiver returns all pending requests addressed to the given
// user, sorted by creation time ascending for deterministic output.
func (s *RequestStore) ListPendingByReceiver(ctx context.Context, receiverID string) ([]*models.FriendRequest, error) {
	var requests []*models.FriendRequest

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(receiverKeyPrefix + receiverID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var id string
			if err := it.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}

			var req models.FriendRequest
			if err := getRequestTxn(txn, id, &req); err != nil {
				// Index entry may outlive a concurrently deleted record.
				if errors.Is(err, ErrRequestNotFound) {
					continue
				}
				return err
			}
			if req.IsPending() {
				requests = append(requests, &req)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list incoming requests: %w", err)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
	return requests, nil
}

// DeleteRejectedBefore removes every rejected request whose rejection is
// older than the cutoff. Returns the number of records deleted. Used by the
// expiry sweeper; the scan and the deletes are separate transactions, which
// is safe because Delete tolerates records removed in between.
func (s *RequestStore) DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	var staleIDs []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(requestKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var req models.FriendRequest
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &req)
			}); err != nil {
				continue
			}
			if req.IsRejected() && req.RejectedSince().Before(cutoff) {
				staleIDs = append(staleIDs, req.ID)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan rejected requests: %w", err)
	}

	count := 0
	for _, id := range staleIDs {
		if err := s.Delete(ctx, id); err != nil {
			if errors.Is(err, ErrRequestNotFound) {
				continue
			}
			return count, fmt.Errorf("delete stale request %s: %w", id, err)
		}
		count++
	}
	return count, nil
}

// getRequestTxn loads a request document within a transaction.
func getRequestTxn(txn *badger.Txn, id string, out *models.FriendRequest) error {
	item, err := txn.Get([]byte(requestKeyPrefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("get request: %w", err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}
