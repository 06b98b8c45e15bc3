// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

// Package store implements the persistent document store on BadgerDB.
//
// Records are JSON documents under typed key prefixes:
//
//	user:<id>                        User document
//	user_name:<username>             username -> user id index
//	freq:<id>                        FriendRequest document
//	freq_pair:<sender>:<receiver>    (sender, receiver) -> request id index
//	freq_recv:<receiver>:<id>        receiver -> request id index
//	notif:<recipient>:<id>           Notification document
//	post:<id>                        Post document
//	post_author:<author>:<id>        author -> post id index
//
// Multi-key operations (index maintenance, check-then-create) run inside a
// single Badger transaction, so the at-most-one-request-per-pair invariant
// holds under concurrent writers.
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/reelgraph/reelgraph/internal/config"
)

// Sentinel errors surfaced by the stores.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrRequestNotFound      = errors.New("follow request not found")
	ErrPairExists           = errors.New("a request already exists for this pair")
	ErrPostNotFound         = errors.New("post not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Key prefixes for BadgerDB storage.
const (
	userKeyPrefix       = "user:"
	usernameKeyPrefix   = "user_name:"
	requestKeyPrefix    = "freq:"
	pairKeyPrefix       = "freq_pair:"
	receiverKeyPrefix   = "freq_recv:"
	notifKeyPrefix      = "notif:"
	postKeyPrefix       = "post:"
	postAuthorKeyPrefix = "post_author:"
)

// Open opens the BadgerDB document store described by cfg.
// The caller owns the returned handle and must Close it on shutdown.
func Open(cfg config.StoreConfig) (*badger.DB, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	// Badger's own logger is too chatty for our structured output.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return db, nil
}

// OpenInMemory opens a throwaway in-memory store. Test helper.
func OpenInMemory() (*badger.DB, error) {
	return Open(config.StoreConfig{InMemory: true})
}
