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

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/reelgraph/reelgraph/internal/models"
)

// PostStore persists Post documents in BadgerDB with an author index for
// feed composition.
type PostStore struct {
	db *badger.DB
}

// NewPostStore creates a BadgerDB-backed post store.
func NewPostStore(db *badger.DB) *PostStore {
	return &PostStore{db: db}
}

// Create stores a new post and its author index entry.
func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(postKeyPrefix+post.ID), data); err != nil {
			return fmt.Errorf("set post: %w", err)
		}
		authorKey := []byte(postAuthorKeyPrefix + post.Author + ":" + post.ID)
		if err := txn.Set(authorKey, []byte(post.ID)); err != nil {
			return fmt.Errorf("set author index: %w", err)
		}
		return nil
	})
}

// Get retrieves a post by ID.
func (s *PostStore) Get(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(postKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrPostNotFound
		}
		if err != nil {
			return fmt.Errorf("get post: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &post)
		})
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update overwrites an existing post document.
func (s *PostStore) Update(ctx context.Context, post *models.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(postKeyPrefix + post.ID)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrPostNotFound
		} else if err != nil {
			return fmt.Errorf("get post: %w", err)
		}
		return txn.Set(key, data)
	})
}

// ListByAuthors returns posts whose author is in authorIDs, newest first,
// capped at limit (0 means no cap). This backs the feed union: a user's feed
// is the posts of everyone they track plus their own.
func (s *PostStore) ListByAuthors(ctx context.Context, authorIDs []string, limit int) ([]*models.Post, error) {
	var posts []*models.Post

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		for _, author := range authorIDs {
			prefix := []byte(postAuthorKeyPrefix + author + ":")
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				var id string
				if err := it.Item().Value(func(val []byte) error {
					id = string(val)
					return nil
				}); err != nil {
					return err
				}

				item, err := txn.Get([]byte(postKeyPrefix + id))
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				if err != nil {
					return fmt.Errorf("get post: %w", err)
				}

				var post models.Post
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &post)
				}); err != nil {
					return err
				}
				posts = append(posts, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}
