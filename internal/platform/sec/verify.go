// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package sec

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// # Verification Outcomes
//
// Verification failures are explicit sentinel values rather than exceptions,
// so every failure path is statically visible at the call site.

var (
	// ErrMalformed covers wrong segment counts, undecodable base64, and
	// unparseable payload JSON.
	ErrMalformed = errors.New("sec: malformed token")

	// ErrBadSignature means the recomputed HMAC does not match the token's
	// signature segment.
	ErrBadSignature = errors.New("sec: token signature mismatch")

	// ErrExpired means the token carried an exp claim at or before now.
	ErrExpired = errors.New("sec: token expired")
)

// DomainNotAllowedError is returned for a correctly-signed token whose domain
// claim is not in the configured allow-list.
//
// The rejected domain is carried for operator-facing error details. This is
// not a forgery oracle: the domain is already disclosed in the payload.
type DomainNotAllowedError struct {
	Domain string
}

func (e *DomainNotAllowedError) Error() string {
	return fmt.Sprintf("sec: domain %q is not allowed", e.Domain)
}

// # Claims

// Claims is the payload of a verified access token.
//
// Known fields are typed; everything else the issuer put in the payload lands
// in Extra. Downstream code must never treat an Extra field as authoritative.
type Claims struct {
	Subject   string
	Email     string
	Name      string
	Domain    string
	Role      Role
	IssuedAt  int64
	ExpiresAt int64 // 0 means the token never expires

	// Extra holds unrecognized payload fields verbatim.
	Extra map[string]any
}

// claimsWire is the JSON shape of the known payload fields.
type claimsWire struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Domain    string `json:"domain"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// knownClaimKeys are the payload fields lifted into typed [Claims] fields.
var knownClaimKeys = map[string]struct{}{
	"sub": {}, "email": {}, "name": {}, "domain": {},
	"role": {}, "iat": {}, "exp": {},
}

// UnmarshalJSON decodes the known claim fields and collects the rest into Extra.
func (c *Claims) UnmarshalJSON(data []byte) error {
	var wire claimsWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	c.Subject = wire.Subject
	c.Email = wire.Email
	c.Name = wire.Name
	c.Domain = wire.Domain
	c.Role = ParseRole(wire.Role)
	c.IssuedAt = wire.IssuedAt
	c.ExpiresAt = wire.ExpiresAt

	for key := range all {
		if _, known := knownClaimKeys[key]; known {
			delete(all, key)
		}
	}
	if len(all) > 0 {
		c.Extra = all
	}

	return nil
}

// # Token Verifier

// Verifier decides whether a raw token string represents a currently-valid,
// correctly-signed credential.
//
// # Concurrency
//
// Verifier is immutable after construction and safe for concurrent use.
// Each verification depends solely on its own input and the configuration
// loaded at process start.
type Verifier struct {
	secret         []byte
	allowedDomains map[string]struct{}

	// now is injectable for deterministic expiration tests.
	now func() time.Time
}

// NewVerifier constructs a [Verifier] with the given HMAC secret and
// organization domain allow-list.
func NewVerifier(secret []byte, allowedDomains []string) *Verifier {
	domains := make(map[string]struct{}, len(allowedDomains))
	for _, d := range allowedDomains {
		d = strings.TrimSpace(d)
		if d != "" {
			domains[d] = struct{}{}
		}
	}

	return &Verifier{
		secret:         secret,
		allowedDomains: domains,
		now:            time.Now,
	}
}

// Verify runs the token through a linear sequence of checks and returns the
// decoded [*Claims] on success.
//
// # Flow
//  1. Structural split: exactly three non-empty dot-separated segments.
//  2. Signature recomputation and constant-time comparison.
//  3. Payload decode and JSON parse.
//  4. Expiration check (absent exp means never expires).
//  5. Domain allow-list membership.
//
// The signature is checked BEFORE the payload is parsed so that a
// corrupted-but-unsigned payload can never be trusted enough to reach the
// expiration or domain logic.
func (v *Verifier) Verify(token string) (*Claims, error) {
	// ── 1. Structural Split ───────────────────────────────────────────────
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, ErrMalformed
	}
	header, payload, signature := parts[0], parts[1], parts[2]

	// ── 2. Signature Check ────────────────────────────────────────────────
	expected := Sign(header+"."+payload, v.secret)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		return nil, ErrBadSignature
	}

	// ── 3. Payload Decode ─────────────────────────────────────────────────
	payloadRaw, err := Decode(payload)
	if err != nil {
		return nil, ErrMalformed
	}

	claims := &Claims{}
	if err := json.Unmarshal(payloadRaw, claims); err != nil {
		return nil, ErrMalformed
	}

	// ── 4. Expiration Check ───────────────────────────────────────────────
	if claims.ExpiresAt != 0 && claims.ExpiresAt <= v.now().Unix() {
		return nil, ErrExpired
	}

	// ── 5. Domain Check ───────────────────────────────────────────────────
	if _, ok := v.allowedDomains[claims.Domain]; !ok {
		return nil, &DomainNotAllowedError{Domain: claims.Domain}
	}

	return claims, nil
}
