// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package social

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/reelgraph/reelgraph/internal/logging"
	"github.com/reelgraph/reelgraph/internal/models"
	"github.com/reelgraph/reelgraph/internal/store"
)

// clock is a settable fake time source shared across a test.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *clock {
	return &clock{now: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)}
}

type socialFixture struct {
	svc           *Service
	users         *store.UserStore
	requests      *store.RequestStore
	notifications *store.NotificationStore
	clock         *clock
}

func newSocialFixture(t *testing.T) *socialFixture {
	t.Helper()

	db, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := store.NewUserStore(db)
	requests := store.NewRequestStore(db)
	notifications := store.NewNotificationStore(db)

	c := newClock()
	svc := NewService(users, requests, notifications, 15*time.Minute)
	svc.now = c.Now

	return &socialFixture{
		svc:           svc,
		users:         users,
		requests:      requests,
		notifications: notifications,
		clock:         c,
	}
}

func (f *socialFixture) addUser(t *testing.T, id string) {
	t.Helper()
	err := f.users.Create(context.Background(), &models.User{
		ID:          id,
		Username:    id,
		DisplayName: id,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
}

func (f *socialFixture) mustSend(t *testing.T, sender, receiver string) *models.FriendRequest {
	t.Helper()
	req, err := f.svc.SendRequest(context.Background(), sender, receiver)
	if err != nil {
		t.Fatalf("SendRequest(%s -> %s) error = %v", sender, receiver, err)
	}
	return req
}

func TestSendRequestLogsDistinctIDFields(t *testing.T) {
	f := newSocialFixture(t)
	f.addUser(t, "alice")
	f.addUser(t, "bob")

	var buf bytes.Buffer
	orig := logging.Logger()
	defer logging.SetLogger(*orig)
	logging.SetLogger(logging.NewTestLogger(&buf))

	ctx := logging.ContextWithRequestID(context.Background(), "http-req-1")
	if _, err := f.svc.SendRequest(ctx, "alice", "bob"); err != nil {
		t.Fatalf("SendRequest() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"follow_request_id"`) {
		t.Errorf("log output missing follow_request_id: %q", out)
	}
	if got := strings.Count(out, `"request_id"`); got != 1 {
		t.Errorf("request_id appears %d times, want 1: %q", got, out)
	}
}

func TestSendRequestCreatesPendingAndNotifies(t *testing.T) {
	f := newSocialFixture(t)
	f.addUser(t, "alice")
	f.addUser(t, "bob")
	ctx := context.Background()

	req := f.mustSend(t, "alice", "bob")
	if req.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", req.Status)
	}
	if req.Sender != "alice" || req.Receiver != "bob" {
		t.Errorf("pair = (%s, %s), want (alice, bob)", req.Sender, req.Receiver)
	}

	notifications, err := f.notifications.ListByRecipient(ctx, "bob", 0)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Type != models.NotificationFollowRequest {
		t.Fatalf("notifications = %+v, want one follow_request", notifications)
	}
	if notifications[0].Sender != "alice" {
		t.Errorf("notification sender = %q, want alice", notifications[0].Sender)
	}
}

func TestSendRequestGuards(t *testing.T) {
	f := newSocialFixture(t)
	f.addUser(t, "alice")
	f.addUser(t, "bob")
	ctx := context.Background()

	if _, err := f.svc.SendRequest(ctx, "alice", "alice"); !errors.Is(err, ErrSelfFollow) {
		t.Errorf("self follow error = %v, want ErrSelfFollow", err)
	}
	if _, err := f.svc.SendRequest(ctx, "alice", "nobody"); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("unknown receiver error = %v, want ErrUserNotFound", err)
	}
	if _, err := f.svc.SendRequest(ctx, "nobody", "bob"); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("unknown sender error = %v, want ErrUserNotFound", err)
	}

	f.mustSend(t, "alice", "bob")
	if _, err := f.svc.SendRequest(ctx, "alice", "bob"); !errors.Is(err, ErrRequestPending) {
		t.Errorf("duplicate error = %v, want ErrRequestPending", err)
	}
}

func TestAcceptAppliesOneDirectionalFollow(t *testing.T) {
	f := newSocialFixture(t)
	f.addUser(t, "alice")
	f.addUser(t, "bob")
	ctx := context.Background()

	req := f.mustSend(t, "alice", "bob")

	if err := f.svc.Accept(ctx, req.ID, "bob"); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	alice, err := f.users.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get alice: %v", err)
	}
	bob, err := f.users.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("get bob: %v", err)
	}

	if !alice.Follows("bob") {
		t.Error("alice.Tracking missing bob")
	}
	if len(bob.Audience) != 1 || bob.Audience[0] != "alice" {
		t.Errorf("bob.Audience = %v, want [alice]", bob.Audience)
	}
	// One-directional: the reverse relation must not appear.
	if bob.Follows("alice") {
		t.Error("bob.Tracking contains alice; follow must be one-directional")
	}
	if len(alice.Audience) != 0 {
		t.Errorf("alice.Audience = %v, want empty", alice.Audience)
	}

	// The record is gone: accept is terminal by absence.
	if _, err := f.requests.Get(ctx, req.ID); !errors.Is(err, store.ErrRequestNotFound) {
		t.Errorf("request lookup error = %v, want ErrRequestNotFound", err)
	}

	// Alice was notified of the acceptance.
	notifications, err := f.notifications.ListByRecipient(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Type != models.NotificationFollowAccepted {
		t.Fatalf("notifications = %+v, want one follow_accepted", notifications)
	}
}

func TestAcceptAuthorization(t *testing.T) {
	f := newSocialFixture(t)
	f.addUser(t, "alice")
	f.addUser(t, "bob")
	f.addUser(t, "carol")
	ctx := context.Background()

	req := f.mustSend(t, "alice", "bob")

	if err := f.svc.Accept(ctx, req.ID, "carol"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("foreign accept error = %v, want ErrNotAuthorized", err)
	}
	if err := f.svc.Accept(ctx, req.ID, "alice"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("sender accept error = %v, want ErrNotAuthorized", err)
	}
	if err := f.svc.Accept(ctx, "missing", "bob"); !errors.Is(err, store.ErrRequestNotFound) {
		t.Errorf("missing accept error = %v, want ErrRequestNotFound", err)
	}

	// A second accept finds the record gone.
	if err := f.svc.Accept(ctx, req.ID, "bob"); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if err := f.svc.Accept(ctx, req.ID, "bob"); !errors.Is(err, store.ErrRequestNotFound) {
		t.Errorf("double accept error = %v, want ErrRequestNotFound", err)
	}
}

func TestRejectKeepsRecordAndStartsCooldown(t *testing.T) {
	f := newSocialFixture(t)
	f.addUser(t, "alice")
	f.addUser(t, "bob")
	ctx := context.Background()

	req := f.mustSend(t, "alice", "bob")

	if err := f.svc.Reject(ctx, req.ID, "alice"); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("sender reject error = %v, want ErrNotAuthorized", err)
	}
	if err := f.svc.Reject(ctx, req.ID, "bob"); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}

	stored, err := f.requests.Get(ctx, req.ID)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if !stored.IsRejected() {
		t.Errorf("status = %q, want rejected", stored.Status)
	}
	if stored.RejectedAt == nil || !stored.RejectedAt.Equal(f.clock.Now()) {
		t.Errorf("RejectedAt = %v, want %v", stored.RejectedAt, f.clock.Now())
	}

	// No graph mutation happened.
	alice, err := f.users.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get alice: %v", err)
	}
	if alice.Follows("bob") {
		t.Error("reject must not create a follow edge")
	}

	// Alice was notified of the rejection.
	notifications, err := f.notifications.ListByRecipient(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Type != models.NotificationFollowRejected {
		t.Fatalf("notifications = %+v, want one follow_rejected", notifications)
	}
}

func TestCooldownBlocksThenExpires(t *testing.T) {
	f := newSocialFixture(t)
	f.addUser(t, "alice")
	f.addUser(t, "bob")
	ctx := context.Background()

	req := f.mustSend(t, "alice", "bob")
	if err := f.svc.Reject(ctx, req.ID, "bob"); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}

	// Immediately after rejection: 15 minutes remaining.
	_, err := f.svc.SendRequest(ctx, "alice", "bob")
	var cerr *CooldownError
	if !errors.As(err, &cerr) {
		t.Fatalf("retry error = %v, want CooldownError", err)
	}
	if cerr.Remaining != 15 {
		t.Errorf("Remaining = %d, want 15", cerr.Remaining)
	}

	// Ten minutes in: 5 remaining.
	f.clock.Advance(10 * time.Minute)
	_, err = f.svc.SendRequest(ctx, "alice", "bob")
	if !errors.As(err, &cerr) {
		t.Fatalf("retry error = %v, want CooldownError", err)
	}
	if cerr.Remaining != 5 {
		t.Errorf("Remaining = %d, want 5", cerr.Remaining)
	}

	// Past the window: allowed again, stale record lazily replaced.
	f.clock.Advance(5*time.Minute + time.Second)
	fresh := f.mustSend(t, "alice", "bob")
	if fresh.ID == req.ID {
		t.Error("new request reused the stale record's ID")
	}
	if fresh.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", fresh.Status)
	}

	// Only the fresh request exists for the pair.
	current, err := f.requests.GetByPair(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("GetByPair() error = %v", err)
	}
	if current.ID != fresh.ID {
		t.Errorf("pair points at %s, want %s", current.ID, fresh.ID)
	}
	if _, err := f.requests.Get(ctx, req.ID); !errors.Is(err, store.ErrRequestNotFound) {
		t.Errorf("stale record lookup error = %v, want ErrRequestNotFound", err)
	}
}

func TestSendRequestAfterAcceptIsAlreadyFollowing(t *testing.T) {
	f := newSocialFixture(t)
	f.addUser(t, "alice")
	f.addUser(t, "bob")
	ctx := context.Background()

	req := f.mustSend(t, "alice", "bob")
	if err := f.svc.Accept(ctx, req.ID, "bob"); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	if _, err := f.svc.SendRequest(ctx, "alice", "bob"); !errors.Is(err, ErrAlreadyFollowing) {
		t.Errorf("re-request error = %v, want ErrAlreadyFollowing", err)
	}

	// The reverse direction is unaffected.
	if _, err := f.svc.SendRequest(ctx, "bob", "alice"); err != nil {
		t.Errorf("reverse request error = %v, want nil", err)
	}
}

func TestAcceptIsIdempotentOnGraph(t *testing.T) {
	f := newSocialFixture(t)
	f.addUser(t, "alice")
	f.addUser(t, "bob")
	ctx := context.Background()

	req := f.mustSend(t, "alice", "bob")
	if err := f.svc.Accept(ctx, req.ID, "bob"); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	// Applying the same edge again through the mutator stays deduplicated.
	if err := f.svc.graph.Follow(ctx, "alice", "bob"); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	alice, err := f.users.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get alice: %v", err)
	}
	bob, err := f.users.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("get bob: %v", err)
	}
	if len(alice.Tracking) != 1 {
		t.Errorf("alice.Tracking = %v, want single entry", alice.Tracking)
	}
	if len(bob.Audience) != 1 {
		t.Errorf("bob.Audience = %v, want single entry", bob.Audience)
	}
}

func TestListIncoming(t *testing.T) {
	f := newSocialFixture(t)
	f.addUser(t, "alice")
	f.addUser(t, "bob")
	f.addUser(t, "carol")
	ctx := context.Background()

	f.mustSend(t, "alice", "carol")
	f.clock.Advance(time.Minute)
	f.mustSend(t, "bob", "carol")

	incoming, err := f.svc.ListIncoming(ctx, "carol")
	if err != nil {
		t.Fatalf("ListIncoming() error = %v", err)
	}
	if len(incoming) != 2 {
		t.Fatalf("got %d incoming, want 2", len(incoming))
	}
	// Oldest first, joined with sender profiles.
	if incoming[0].Sender.Username != "alice" || incoming[1].Sender.Username != "bob" {
		t.Errorf("order = [%s, %s], want [alice, bob]",
			incoming[0].Sender.Username, incoming[1].Sender.Username)
	}

	// Rejected requests never show up.
	if err := f.svc.Reject(ctx, incoming[0].Request.ID, "carol"); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	incoming, err = f.svc.ListIncoming(ctx, "carol")
	if err != nil {
		t.Fatalf("ListIncoming() error = %v", err)
	}
	if len(incoming) != 1 || incoming[0].Sender.Username != "bob" {
		t.Errorf("incoming after reject = %+v, want only bob", incoming)
	}

	// A user with nothing pending gets an empty list.
	incoming, err = f.svc.ListIncoming(ctx, "alice")
	if err != nil {
		t.Fatalf("ListIncoming() error = %v", err)
	}
	if len(incoming) != 0 {
		t.Errorf("incoming for alice = %+v, want empty", incoming)
	}
}
