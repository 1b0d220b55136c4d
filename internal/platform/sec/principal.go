// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package sec

// Principal is the authenticated identity derived from a verified token.
//
// # Lifecycle
//
// A Principal is constructed fresh on every request from verified [Claims]
// and discarded when the response is produced. It is never persisted.
type Principal struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Domain    string `json:"domain"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// NewPrincipal builds a [Principal] from verified claims.
//
// The avatar reference comes from the optional "picture" extension claim,
// which is informational only and never used for authorization decisions.
func NewPrincipal(claims *Claims) *Principal {
	principal := &Principal{
		ID:     claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Domain: claims.Domain,
		Role:   claims.Role,
	}

	if picture, ok := claims.Extra["picture"].(string); ok {
		principal.AvatarURL = picture
	}

	return principal
}
