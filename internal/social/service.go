// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package social

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reelgraph/reelgraph/internal/logging"
	"github.com/reelgraph/reelgraph/internal/metrics"
	"github.com/reelgraph/reelgraph/internal/models"
	"github.com/reelgraph/reelgraph/internal/store"
)

// Service orchestrates the follow-request lifecycle. All validation happens
// before any write; notifications are created as the final step of each
// successful mutation.
type Service struct {
	users         *store.UserStore
	requests      *store.RequestStore
	notifications *store.NotificationStore
	graph         *GraphMutator
	policy        CooldownPolicy

	// now is replaceable in tests to simulate clock movement.
	now func() time.Time
}

// NewService creates the follow-request lifecycle service.
func NewService(users *store.UserStore, requests *store.RequestStore, notifications *store.NotificationStore, cooldown time.Duration) *Service {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Service{
		users:         users,
		requests:      requests,
		notifications: notifications,
		graph:         NewGraphMutator(users),
		policy:        CooldownPolicy{Cooldown: cooldown},
		now:           time.Now,
	}
}

// Cooldown returns the configured rejection cooldown window.
func (s *Service) Cooldown() time.Duration {
	return s.policy.Cooldown
}

// SendRequest creates a pending follow request from sender to receiver after
// the cooldown policy allows it, and notifies the receiver. On success
// exactly one new request record and one new notification record exist.
func (s *Service) SendRequest(ctx context.Context, senderID, receiverID string) (*models.FriendRequest, error) {
	if senderID == receiverID {
		return nil, ErrSelfFollow
	}

	sender, err := s.users.Get(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("load sender: %w", err)
	}
	if _, err := s.users.Get(ctx, receiverID); err != nil {
		return nil, fmt.Errorf("load receiver: %w", err)
	}

	now := s.now()

	existing, err := s.requests.GetByPair(ctx, senderID, receiverID)
	if err != nil && !errors.Is(err, store.ErrRequestNotFound) {
		return nil, fmt.Errorf("look up prior request: %w", err)
	}

	deleteStale, err := s.policy.Evaluate(sender, receiverID, existing, now)
	if err != nil {
		metrics.RecordFollowRequest("denied")
		return nil, err
	}
	if deleteStale {
		if err := s.requests.Delete(ctx, existing.ID); err != nil && !errors.Is(err, store.ErrRequestNotFound) {
			return nil, fmt.Errorf("delete stale rejection: %w", err)
		}
	}

	req := &models.FriendRequest{
		ID:        uuid.New().String(),
		Sender:    senderID,
		Receiver:  receiverID,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		if errors.Is(err, store.ErrPairExists) {
			// Lost a create race; surface it as the duplicate it is.
			metrics.RecordFollowRequest("denied")
			return nil, ErrRequestPending
		}
		return nil, fmt.Errorf("create request: %w", err)
	}

	if err := s.notify(ctx, receiverID, senderID, models.NotificationFollowRequest); err != nil {
		return nil, err
	}

	metrics.RecordFollowRequest("created")
	logging.Ctx(ctx).Info().
		Str("sender", senderID).
		Str("receiver", receiverID).
		Str("follow_request_id", req.ID).
		Msg("follow request created")
	return req, nil
}

// ListIncoming returns the pending requests addressed to userID, each joined
// with the sender's public profile, oldest first.
func (s *Service) ListIncoming(ctx context.Context, userID string) ([]models.IncomingRequest, error) {
	pending, err := s.requests.ListPendingByReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}

	incoming := make([]models.IncomingRequest, 0, len(pending))
	for _, req := range pending {
		sender, err := s.users.Get(ctx, req.Sender)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				// Sender account deleted since the request was created.
				logging.Ctx(ctx).Warn().
					Str("follow_request_id", req.ID).
					Str("sender", req.Sender).
					Msg("incoming request from missing user skipped")
				continue
			}
			return nil, fmt.Errorf("load sender profile: %w", err)
		}
		incoming = append(incoming, models.IncomingRequest{
			Request: *req,
			Sender:  sender.Public(),
		})
	}
	return incoming, nil
}

// Accept resolves a request in the sender's favor: the follow edge is
// applied, the record is deleted, and the sender is notified. Only the
// request's receiver may accept it.
//
// The record is deleted before the graph mutation; the delete doubles as a
// conditional claim on the request, so two concurrent accepts cannot both
// apply the edge.
func (s *Service) Accept(ctx context.Context, requestID, actingUserID string) error {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Receiver != actingUserID {
		return ErrNotAuthorized
	}

	if err := s.requests.Delete(ctx, requestID); err != nil {
		return err
	}

	if err := s.graph.Follow(ctx, req.Sender, req.Receiver); err != nil {
		return err
	}

	if err := s.notify(ctx, req.Sender, req.Receiver, models.NotificationFollowAccepted); err != nil {
		return err
	}

	metrics.RecordFollowResolution("accepted")
	logging.Ctx(ctx).Info().
		Str("follow_request_id", requestID).
		Str("sender", req.Sender).
		Str("receiver", req.Receiver).
		Msg("follow request accepted")
	return nil
}

// Reject flips the request to rejected in place and notifies the sender.
// The record is retained so the cooldown policy can see the rejection; the
// expiry sweeper removes it once the cooldown window has passed.
func (s *Service) Reject(ctx context.Context, requestID, actingUserID string) error {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Receiver != actingUserID {
		return ErrNotAuthorized
	}

	now := s.now()
	req.Status = models.StatusRejected
	req.UpdatedAt = now
	req.RejectedAt = &now
	if err := s.requests.Update(ctx, req); err != nil {
		return err
	}

	if err := s.notify(ctx, req.Sender, req.Receiver, models.NotificationFollowRejected); err != nil {
		return err
	}

	metrics.RecordFollowResolution("rejected")
	logging.Ctx(ctx).Info().
		Str("follow_request_id", requestID).
		Str("sender", req.Sender).
		Str("receiver", req.Receiver).
		Msg("follow request rejected")
	return nil
}

// notify creates a notification record for the recipient.
func (s *Service) notify(ctx context.Context, recipient, sender string, kind models.NotificationType) error {
	n := &models.Notification{
		ID:        uuid.New().String(),
		Recipient: recipient,
		Sender:    sender,
		Type:      kind,
		CreatedAt: s.now(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("create %s notification: %w", kind, err)
	}
	return nil
}
