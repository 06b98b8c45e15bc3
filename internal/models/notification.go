// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package models

import "time"

// NotificationType tags the event that produced a notification.
type NotificationType string

const (
	NotificationFollowRequest  NotificationType = "follow_request"
	NotificationFollowAccepted NotificationType = "follow_accepted"
	NotificationFollowRejected NotificationType = "follow_rejected"
	NotificationLike           NotificationType = "like"
	NotificationComment        NotificationType = "comment"
)

// Notification is delivered to Recipient about an action taken by Sender.
// PostID is set only for like and comment notifications.
type Notification struct {
	ID        string           `json:"id"`
	Recipient string           `json:"recipient"`
	Sender    string           `json:"sender"`
	Type      NotificationType `json:"type"`
	PostID    string           `json:"post_id,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
