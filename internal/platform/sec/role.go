// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package sec

// # User Roles

// Role represents the authorization level carried in a verified token.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "ADMIN"

	// Default role for standard workspace members
	RoleUser Role = "USER"
)

// ParseRole maps a raw role claim to a known [Role].
//
// An empty or unrecognized value defaults to [RoleUser]: tokens never grant
// elevated access through an unknown role string.
func ParseRole(raw string) Role {
	if raw == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// In reports whether the role is a member of the allowed set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
