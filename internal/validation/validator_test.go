// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Username  string `validate:"required,min=3,max=20"`
	Email     string `validate:"omitempty,email"`
	MediaType string `validate:"required,oneof=movie show"`
}

func TestValidateStructValid(t *testing.T) {
	req := sampleRequest{Username: "alice", MediaType: "movie"}
	if verr := ValidateStruct(&req); verr != nil {
		t.Errorf("ValidateStruct() = %v, want nil", verr)
	}
}

func TestValidateStructFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		req       sampleRequest
		wantField string
		wantTag   string
	}{
		{"missing username", sampleRequest{MediaType: "movie"}, "Username", "required"},
		{"username too short", sampleRequest{Username: "ab", MediaType: "movie"}, "Username", "min"},
		{"bad email", sampleRequest{Username: "alice", Email: "nope", MediaType: "movie"}, "Email", "email"},
		{"bad media type", sampleRequest{Username: "alice", MediaType: "album"}, "MediaType", "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	verr := ValidateStruct(&sampleRequest{})
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if len(verr.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(verr.Errors()), verr)
	}
	if !strings.Contains(verr.Error(), ";") {
		t.Errorf("combined message = %q, want joined messages", verr.Error())
	}
}

func TestToAPIError(t *testing.T) {
	verr := ValidateStruct(&sampleRequest{MediaType: "movie"})
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "Username is required" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Username is required")
	}
	if apiErr.Details["field"] != "Username" {
		t.Errorf("Details[field] = %v, want Username", apiErr.Details["field"])
	}
}

func TestToAPIErrorAggregatesFields(t *testing.T) {
	verr := ValidateStruct(&sampleRequest{})
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	apiErr := verr.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details[fields] = %T, want []map[string]interface{}", apiErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("got %d field entries, want 2", len(fields))
	}
}
