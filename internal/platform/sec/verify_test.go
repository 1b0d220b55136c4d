// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

// White-box tests: the injectable clock on [Verifier] is unexported.

package sec

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("verify-test-secret")

// frozenNow anchors every expiration assertion in this file.
var frozenNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// newTestVerifier returns a verifier with a frozen clock.
func newTestVerifier(domains ...string) *Verifier {
	verifier := NewVerifier(testSecret, domains)
	verifier.now = func() time.Time { return frozenNow }
	return verifier
}

// buildToken signs an arbitrary claims map into wire form.
func buildToken(t *testing.T, payload map[string]any) string {
	t.Helper()

	headerJSON, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	require.NoError(t, err)
	payloadJSON, err := json.Marshal(payload)
	require.NoError(t, err)

	body := Encode(headerJSON) + "." + Encode(payloadJSON)
	return body + "." + Sign(body, testSecret)
}

// validPayload is a baseline claims map that verifies cleanly.
func validPayload() map[string]any {
	return map[string]any{
		"sub":    "u1",
		"email":  "a@rpotential.ai",
		"name":   "Test User",
		"domain": "rpotential.ai",
		"iat":    frozenNow.Add(-time.Hour).Unix(),
		"exp":    frozenNow.Add(time.Hour).Unix(),
	}
}

/*
TestVerify_ValidToken covers the full happy path including claim mapping.
*/
func TestVerify_ValidToken(t *testing.T) {
	verifier := newTestVerifier("rpotential.ai", "globant.com")

	claims, err := verifier.Verify(buildToken(t, validPayload()))
	require.NoError(t, err)

	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "a@rpotential.ai", claims.Email)
	assert.Equal(t, "Test User", claims.Name)
	assert.Equal(t, "rpotential.ai", claims.Domain)
	assert.Equal(t, RoleUser, claims.Role, "missing role claim defaults to USER")
}

/*
TestVerify_Malformed covers structural rejections: segment counts, empty
segments, and undecodable or unparseable payloads.
*/
func TestVerify_Malformed(t *testing.T) {
	verifier := newTestVerifier("rpotential.ai")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one_segment", "abc"},
		{"two_segments", "abc.def"},
		{"four_segments", "a.b.c.d"},
		{"empty_header", ".def.ghi"},
		{"empty_payload", "abc..ghi"},
		{"empty_signature", "abc.def."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

/*
TestVerify_Malformed_BadPayload checks that a correctly-signed token whose
payload is not base64url / not JSON is still rejected as malformed. The
signature passes, so these reach the decode step.
*/
func TestVerify_Malformed_BadPayload(t *testing.T) {
	verifier := newTestVerifier("rpotential.ai")

	for _, payload := range []string{"!!!not-base64!!!", Encode([]byte("not json"))} {
		body := Encode([]byte(`{"alg":"HS256"}`)) + "." + payload
		token := body + "." + Sign(body, testSecret)

		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, ErrMalformed)
	}
}

/*
TestVerify_TamperDetection flips single characters in the header and payload
segments of a valid token and requires a signature error every time.
*/
func TestVerify_TamperDetection(t *testing.T) {
	verifier := newTestVerifier("rpotential.ai")
	token := buildToken(t, validPayload())

	flip := func(s string, i int) string {
		replacement := byte('A')
		if s[i] == 'A' {
			replacement = 'B'
		}
		return s[:i] + string(replacement) + s[i+1:]
	}

	// Flip every character of the header and payload segments; the signature
	// segment stays untouched so the mismatch is always against real content.
	signedEnd := strings.LastIndex(token, ".")
	for i := 0; i < signedEnd; i++ {
		if token[i] == '.' {
			continue
		}

		_, err := verifier.Verify(flip(token, i))
		assert.ErrorIs(t, err, ErrBadSignature, "flip at index %d", i)
	}
}

/*
TestVerify_WrongSecret checks a token signed with a different key fails the
signature comparison.
*/
func TestVerify_WrongSecret(t *testing.T) {
	verifier := newTestVerifier("rpotential.ai")

	headerJSON, _ := json.Marshal(map[string]string{"alg": "HS256"})
	payloadJSON, _ := json.Marshal(validPayload())
	body := Encode(headerJSON) + "." + Encode(payloadJSON)
	token := body + "." + Sign(body, []byte("attacker-key"))

	_, err := verifier.Verify(token)
	assert.ErrorIs(t, err, ErrBadSignature)
}

/*
TestVerify_ExpirationBoundary pins the exact boundary: exp equal to now is
already expired, one second later is still valid, and an absent exp never
expires.
*/
func TestVerify_ExpirationBoundary(t *testing.T) {
	verifier := newTestVerifier("rpotential.ai")

	tests := []struct {
		name    string
		exp     any
		expired bool
	}{
		{"one_second_past", frozenNow.Add(-time.Second).Unix(), true},
		{"exactly_now", frozenNow.Unix(), true},
		{"one_second_left", frozenNow.Add(time.Second).Unix(), false},
		{"far_future", frozenNow.Add(24 * time.Hour).Unix(), false},
		{"absent_never_expires", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			if tt.exp == nil {
				delete(payload, "exp")
			} else {
				payload["exp"] = tt.exp
			}

			_, err := verifier.Verify(buildToken(t, payload))
			if tt.expired {
				assert.ErrorIs(t, err, ErrExpired)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestVerify_DomainAllowList checks a correctly-signed, unexpired token from a
foreign organization is rejected with the domain named in the error.
*/
func TestVerify_DomainAllowList(t *testing.T) {
	verifier := newTestVerifier("rpotential.ai", "globant.com")

	payload := validPayload()
	payload["domain"] = "evil.com"

	_, err := verifier.Verify(buildToken(t, payload))
	require.Error(t, err)

	var domainErr *DomainNotAllowedError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "evil.com", domainErr.Domain)

	// Second allow-listed domain still verifies.
	payload["domain"] = "globant.com"
	_, err = verifier.Verify(buildToken(t, payload))
	assert.NoError(t, err)
}

/*
TestVerify_CheckOrder documents the linear pipeline: an expired token from a
disallowed domain reports expiration, because the expiry check runs first.
*/
func TestVerify_CheckOrder(t *testing.T) {
	verifier := newTestVerifier("rpotential.ai")

	payload := validPayload()
	payload["domain"] = "evil.com"
	payload["exp"] = frozenNow.Add(-time.Minute).Unix()

	_, err := verifier.Verify(buildToken(t, payload))
	assert.ErrorIs(t, err, ErrExpired)
}

/*
TestClaims_ExtraFields checks unknown payload fields survive into Extra and
known fields never leak there.
*/
func TestClaims_ExtraFields(t *testing.T) {
	verifier := newTestVerifier("rpotential.ai")

	payload := validPayload()
	payload["picture"] = "https://cdn.rpotential.ai/u1.png"
	payload["tenant"] = "acme"

	claims, err := verifier.Verify(buildToken(t, payload))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.rpotential.ai/u1.png", claims.Extra["picture"])
	assert.Equal(t, "acme", claims.Extra["tenant"])
	assert.NotContains(t, claims.Extra, "sub")
	assert.NotContains(t, claims.Extra, "exp")
}

/*
TestVerify_RoleClaim checks explicit role parsing and the USER fallback for
unknown role strings.
*/
func TestVerify_RoleClaim(t *testing.T) {
	verifier := newTestVerifier("rpotential.ai")

	tests := []struct {
		raw      string
		expected Role
	}{
		{"ADMIN", RoleAdmin},
		{"USER", RoleUser},
		{"", RoleUser},
		{"superuser", RoleUser},
	}

	for _, tt := range tests {
		payload := validPayload()
		if tt.raw != "" {
			payload["role"] = tt.raw
		}

		claims, err := verifier.Verify(buildToken(t, payload))
		require.NoError(t, err)
		assert.Equal(t, tt.expected, claims.Role, "role %q", tt.raw)
	}
}
