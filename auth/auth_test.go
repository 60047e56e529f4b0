// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

var testKeys = NewKeyring("admin-salt", "slug-salt")

func TestNewSurveyID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := NewSurveyID()
		if err != nil {
			t.Fatalf("NewSurveyID() error = %v", err)
		}
		if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(id) {
			t.Fatalf("NewSurveyID() = %q, want 32 hex characters", id)
		}
		if seen[id] {
			t.Fatalf("NewSurveyID() repeated %q", id)
		}
		seen[id] = true
	}
}

func TestAuthorize(t *testing.T) {
	surveyID := "survey-123"
	other := NewKeyring("another-salt", "slug-salt")

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"owner key", testKeys.AdminKey(surveyID), nil},
		{"no header", "", ErrMissingAdminKey},
		{"key of another survey", testKeys.AdminKey("survey-456"), ErrInvalidAdminKey},
		{"key from another server", other.AdminKey(surveyID), ErrInvalidAdminKey},
		{"truncated key", testKeys.AdminKey(surveyID)[:10], ErrInvalidAdminKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/surveys/"+surveyID+"/paths", nil)
			if tt.header != "" {
				r.Header.Set(AdminKeyHeader, tt.header)
			}
			if err := testKeys.Authorize(r, surveyID); err != tt.want {
				t.Errorf("Authorize() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAdminKey(t *testing.T) {
	key := testKeys.AdminKey("survey-123")

	if key != testKeys.AdminKey("survey-123") {
		t.Error("AdminKey() is not stable for the same survey")
	}
	if key == testKeys.AdminKey("survey-124") {
		t.Error("AdminKey() repeats across surveys")
	}
	// 32 bytes of HMAC in unpadded URL-safe base64
	if !regexp.MustCompile(`^[A-Za-z0-9_-]{43}$`).MatchString(key) {
		t.Errorf("AdminKey() = %q, want 43 URL-safe characters", key)
	}
}

func TestShareSlug(t *testing.T) {
	slug := testKeys.ShareSlug("survey-123")

	if slug != testKeys.ShareSlug("survey-123") {
		t.Error("ShareSlug() is not stable for the same survey")
	}
	if slug == testKeys.ShareSlug("survey-124") {
		t.Error("ShareSlug() repeats across surveys")
	}
	if !regexp.MustCompile(`^[0-9a-zA-Z]{1,11}$`).MatchString(slug) {
		t.Errorf("ShareSlug() = %q, want up to 11 alphanumeric characters", slug)
	}
	if slug == testKeys.AdminKey("survey-123") {
		t.Error("ShareSlug() leaks the admin key")
	}
}

func TestBase62(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte{0}, "0"},
		{[]byte{61}, "Z"},
		{[]byte{62}, "10"},
		{[]byte{1, 0}, "48"},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, "lYGhA16ahyf"},
	}

	for _, tt := range tests {
		if got := base62(tt.in); got != tt.want {
			t.Errorf("base62(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRespondentHash(t *testing.T) {
	h := testKeys.RespondentHash("203.0.113.7")

	if !regexp.MustCompile(`^[0-9a-f]{16}$`).MatchString(h) {
		t.Errorf("RespondentHash() = %q, want 16 hex characters", h)
	}
	if h != testKeys.RespondentHash("203.0.113.7") {
		t.Error("RespondentHash() is not stable")
	}
	if h == testKeys.RespondentHash("203.0.113.8") {
		t.Error("RespondentHash() repeats across addresses")
	}
	if h == NewKeyring("admin-salt-2", "slug-salt").RespondentHash("203.0.113.7") {
		t.Error("RespondentHash() ignores the salt")
	}
}
