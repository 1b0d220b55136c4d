// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (token encoding, signing,
// verification, password hashing) from the domain logic. It acts as an
// Infrastructure service injected into the middleware and application layers.
package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// # Token Codec
//
// Access tokens travel as three unpadded base64url segments joined by dots:
//
//	base64url(header_json) "." base64url(payload_json) "." base64url(hmac_sha256)
//
// The functions below are pure; they hold no state and perform no I/O.

// Encode returns the unpadded, URL-safe base64 encoding of raw.
func Encode(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode reverses [Encode].
//
// It fails on characters outside the base64url alphabet or corrupt padding.
func Decode(segment string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid base64url segment: %w", err)
	}
	return raw, nil
}

// Sign computes HMAC-SHA256 over the UTF-8 bytes of message using secret as
// the key, and returns the signature in [Encode] form.
//
// Sign is deterministic: identical (message, secret) pairs always yield an
// identical signature string.
func Sign(message string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(message))
	return Encode(mac.Sum(nil))
}
