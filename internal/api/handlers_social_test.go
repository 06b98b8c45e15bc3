// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"net/http"
	"testing"

	"github.com/goccy/go-json"

	"github.com/reelgraph/reelgraph/internal/models"
)

func TestFollowRequestLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.addUser(t, "alice")
	bobToken := ts.addUser(t, "bob")

	// Alice requests to follow Bob.
	status, resp := ts.do(t, http.MethodPost, "/follow/bob", aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("follow status = %d, want 200 (error: %+v)", status, resp.Error)
	}

	// A duplicate request is refused with the pending message.
	status, resp = ts.do(t, http.MethodPost, "/follow/bob", aliceToken, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("duplicate follow status = %d, want 400", status)
	}
	if resp.Error == nil || resp.Error.Code != "REQUEST_PENDING" {
		t.Fatalf("duplicate follow error = %+v, want REQUEST_PENDING", resp.Error)
	}

	// Bob sees the request joined with Alice's public profile.
	status, resp = ts.do(t, http.MethodGet, "/requests", bobToken, nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d, want 200", status)
	}
	var incoming []models.IncomingRequest
	mustDecodeData(t, resp, &incoming)
	if len(incoming) != 1 {
		t.Fatalf("got %d incoming requests, want 1", len(incoming))
	}
	if incoming[0].Sender.Username != "alice" {
		t.Errorf("sender = %q, want alice", incoming[0].Sender.Username)
	}
	requestID := incoming[0].Request.ID

	// Alice cannot accept a request addressed to Bob.
	status, resp = ts.do(t, http.MethodPost, "/accept/"+requestID, aliceToken, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("foreign accept status = %d, want 401 (error: %+v)", status, resp.Error)
	}

	// Bob accepts.
	status, _ = ts.do(t, http.MethodPost, "/accept/"+requestID, bobToken, nil)
	if status != http.StatusOK {
		t.Fatalf("accept status = %d, want 200", status)
	}

	// The graph now shows the one-directional follow.
	status, resp = ts.do(t, http.MethodGet, "/api/v1/users/bob/followers", aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("followers status = %d, want 200", status)
	}
	var followers []models.PublicProfile
	mustDecodeData(t, resp, &followers)
	if len(followers) != 1 || followers[0].ID != "alice" {
		t.Errorf("bob's followers = %+v, want [alice]", followers)
	}

	status, resp = ts.do(t, http.MethodGet, "/api/v1/users/alice/followers", aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("followers status = %d, want 200", status)
	}
	var aliceFollowers []models.PublicProfile
	mustDecodeData(t, resp, &aliceFollowers)
	if len(aliceFollowers) != 0 {
		t.Errorf("alice's followers = %+v, want none", aliceFollowers)
	}

	// Following again is refused as already-following.
	status, resp = ts.do(t, http.MethodPost, "/follow/bob", aliceToken, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("re-follow status = %d, want 400", status)
	}
	if resp.Error == nil || resp.Error.Code != "ALREADY_FOLLOWING" {
		t.Errorf("re-follow error = %+v, want ALREADY_FOLLOWING", resp.Error)
	}
}

func TestRejectProducesCooldownOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.addUser(t, "alice")
	bobToken := ts.addUser(t, "bob")

	if status, resp := ts.do(t, http.MethodPost, "/follow/bob", aliceToken, nil); status != http.StatusOK {
		t.Fatalf("follow status = %d (error: %+v)", status, resp.Error)
	}

	_, resp := ts.do(t, http.MethodGet, "/requests", bobToken, nil)
	var incoming []models.IncomingRequest
	mustDecodeData(t, resp, &incoming)
	if len(incoming) != 1 {
		t.Fatalf("got %d incoming requests, want 1", len(incoming))
	}

	if status, _ := ts.do(t, http.MethodPost, "/reject/"+incoming[0].Request.ID, bobToken, nil); status != http.StatusOK {
		t.Fatalf("reject status = %d, want 200", status)
	}

	// An immediate retry hits the cooldown with the remaining minutes.
	status, resp := ts.do(t, http.MethodPost, "/follow/bob", aliceToken, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("retry status = %d, want 400", status)
	}
	if resp.Error == nil || resp.Error.Code != "COOLDOWN_ACTIVE" {
		t.Fatalf("retry error = %+v, want COOLDOWN_ACTIVE", resp.Error)
	}
	if want := "try again in 15 minutes"; resp.Error.Message == "" || !containsSuffix(resp.Error.Message, want) {
		t.Errorf("cooldown message = %q, want suffix %q", resp.Error.Message, want)
	}
}

func TestSocialErrorsOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.addUser(t, "alice")

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"self follow", http.MethodPost, "/follow/alice", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown receiver", http.MethodPost, "/follow/nobody", http.StatusNotFound, "NOT_FOUND"},
		{"unknown request accept", http.MethodPost, "/accept/missing", http.StatusNotFound, "NOT_FOUND"},
		{"unknown request reject", http.MethodPost, "/reject/missing", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := ts.do(t, tt.method, tt.path, aliceToken, nil)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestMirroredSocialRoutes(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.addUser(t, "alice")
	ts.addUser(t, "bob")

	status, resp := ts.do(t, http.MethodPost, "/api/v1/social/follow/bob", aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("mirrored follow status = %d, want 200 (error: %+v)", status, resp.Error)
	}

	status, resp = ts.do(t, http.MethodGet, "/api/v1/social/requests", aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("mirrored list status = %d, want 200 (error: %+v)", status, resp.Error)
	}
}

// mustDecodeData re-marshals the envelope's data field into out.
func mustDecodeData(t *testing.T, resp *models.APIResponse, out interface{}) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func containsSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
