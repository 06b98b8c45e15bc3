// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

// Package engagement implements posts and likes: users post about a movie or
// show, and the feed is composed from the accounts a user tracks.
package engagement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reelgraph/reelgraph/internal/logging"
	"github.com/reelgraph/reelgraph/internal/models"
	"github.com/reelgraph/reelgraph/internal/store"
)

// Service coordinates post creation, feed reads, and likes.
type Service struct {
	posts         *store.PostStore
	users         *store.UserStore
	notifications *store.NotificationStore
	now           func() time.Time
}

// NewService creates the engagement service.
func NewService(posts *store.PostStore, users *store.UserStore, notifications *store.NotificationStore) *Service {
	return &Service{
		posts:         posts,
		users:         users,
		notifications: notifications,
		now:           time.Now,
	}
}

// CreatePost stores a new post by the author about the given media title.
// Media title and type are denormalized from the metadata lookup the client
// performed, so feeds render without further provider round trips.
func (s *Service) CreatePost(ctx context.Context, authorID, mediaID, mediaTitle, mediaType, body string) (*models.Post, error) {
	if _, err := s.users.Get(ctx, authorID); err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}

	now := s.now()
	post := &models.Post{
		ID:         uuid.New().String(),
		Author:     authorID,
		MediaID:    mediaID,
		MediaTitle: mediaTitle,
		MediaType:  mediaType,
		Body:       body,
		Likes:      []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	logging.Ctx(ctx).Debug().
		Str("post_id", post.ID).
		Str("author", authorID).
		Str("media_id", mediaID).
		Msg("post created")

	return post, nil
}

// Feed returns the newest posts from the accounts the user tracks plus the
// user's own, capped at limit.
func (s *Service) Feed(ctx context.Context, userID string, limit int) ([]*models.Post, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	authors := make([]string, 0, len(user.Tracking)+1)
	authors = append(authors, user.Tracking...)
	authors = append(authors, userID)

	posts, err := s.posts.ListByAuthors(ctx, authors, limit)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// Like records that the user liked the post. Liking twice is a no-op, and a
// like notification goes to the author unless they liked their own post.
func (s *Service) Like(ctx context.Context, userID, postID string) (*models.Post, error) {
	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.LikedBy(userID) {
		return post, nil
	}

	post.Likes = append(post.Likes, userID)
	post.UpdatedAt = s.now()
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	if post.Author != userID {
		notification := &models.Notification{
			ID:        uuid.New().String(),
			Recipient: post.Author,
			Sender:    userID,
			Type:      models.NotificationLike,
			PostID:    post.ID,
			CreatedAt: s.now(),
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			// A lost notification is not worth failing the like.
			logging.Ctx(ctx).Error().Err(err).
				Str("post_id", post.ID).
				Msg("failed to create like notification")
		}
	}

	return post, nil
}
