// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints HS256 access tokens for locally-authenticated users.
//
// # Wire Compatibility
//
// The issued tokens are standard three-segment HMAC-SHA256 tokens, so they
// verify through [Verifier] exactly like tokens minted by the external
// authentication service.
type TokenIssuer struct {
	secret []byte
	issuer string
}

// NewTokenIssuer constructs a [TokenIssuer] sharing the verifier's secret.
func NewTokenIssuer(secret []byte, issuer string) *TokenIssuer {
	return &TokenIssuer{secret: secret, issuer: issuer}
}

// IssueAccessToken creates a signed access token for the given user.
//
// # Parameters
//   - userID: Subject of the token ('sub' claim).
//   - email, name, domain: Identity claims mirrored into the payload.
//   - role: Authorization role ('role' claim).
//   - timeToLive: Duration before the token expires.
func (i *TokenIssuer) IssueAccessToken(userID, email, name, domain string, role Role, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()

	claims := jwt.MapClaims{
		"sub":    userID,
		"email":  email,
		"name":   name,
		"domain": domain,
		"role":   string(role),
		"iss":    i.issuer,
		"iat":    currentTime.Unix(),
		"exp":    currentTime.Add(timeToLive).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}
