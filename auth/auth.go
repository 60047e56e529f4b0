// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"net/http"
)

// AdminKeyHeader carries the admin key on owner-only requests.
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrMissingAdminKey = errors.New("missing admin key")
)

// Keyring derives everything a survey owner and its respondents are
// handed from the survey id. Nothing it produces is stored.
type Keyring struct {
	adminSalt []byte
	slugSalt  []byte
}

func NewKeyring(adminSalt, slugSalt string) Keyring {
	return Keyring{adminSalt: []byte(adminSalt), slugSalt: []byte(slugSalt)}
}

func sign(salt []byte, msg string) []byte {
	h := hmac.New(sha256.New, salt)
	h.Write([]byte(msg))
	return h.Sum(nil)
}

// NewSurveyID returns 16 random bytes as hex.
func NewSurveyID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate survey ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// AdminKey is the owner's key for surveyID, URL-safe base64 without padding.
func (k Keyring) AdminKey(surveyID string) string {
	return base64.RawURLEncoding.EncodeToString(sign(k.adminSalt, surveyID))
}

// ShareSlug is the public, alphanumeric handle a survey is published under.
func (k Keyring) ShareSlug(surveyID string) string {
	return base62(sign(k.slugSalt, surveyID)[:8])
}

// Authorize checks the admin key sent with r against surveyID.
func (k Keyring) Authorize(r *http.Request, surveyID string) error {
	key := r.Header.Get(AdminKeyHeader)
	if key == "" {
		return ErrMissingAdminKey
	}
	if !hmac.Equal([]byte(key), []byte(k.AdminKey(surveyID))) {
		return ErrInvalidAdminKey
	}
	return nil
}

// RespondentHash is a 16 hex char fingerprint of a respondent address,
// salted with the admin salt so it cannot be reversed from a table.
func (k Keyring) RespondentHash(ip string) string {
	return hex.EncodeToString(sign(k.adminSalt, ip)[:8])
}

// base62 renders b as a big-endian number over 0-9a-zA-Z.
func base62(b []byte) string {
	return new(big.Int).SetBytes(b).Text(62)
}
