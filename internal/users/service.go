// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package users

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpotential/workspace/internal/platform/apperr"
	"github.com/rpotential/workspace/internal/platform/constants"
	"github.com/rpotential/workspace/internal/platform/sec"
	"github.com/rpotential/workspace/internal/platform/validate"
	"github.com/rpotential/workspace/pkg/pointer"
	"github.com/rpotential/workspace/pkg/uuidv7"
)

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// IssueAccessToken creates a signed token string for the given user.
	IssueAccessToken(userID, email, name, domain string, role sec.Role, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	resetTokens       ResetTokenRepository
	tokenProvider     TokenProvider
	allowedDomains    map[string]struct{}
}

// NewService constructs a new [Service] with the necessary dependencies.
//
// allowedDomains mirrors the verifier's organization allow-list so accounts
// whose tokens could never verify are rejected at registration time.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	resetTokens ResetTokenRepository,
	tokenProv TokenProvider,
	allowedDomains []string,
) *Service {
	domains := make(map[string]struct{}, len(allowedDomains))
	for _, d := range allowedDomains {
		domains[strings.TrimSpace(d)] = struct{}{}
	}

	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		resetTokens:       resetTokens,
		tokenProvider:     tokenProv,
		allowedDomains:    domains,
	}
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Register validates, hashes, and persists a brand new user account.
//
// # Business Rules
//   - Emails must be unique.
//   - The email's domain must be in the workspace allow-list.
//   - Default role is always USER.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	// ── 1. Validation ─────────────────────────────────────────────────────

	v := &validate.Validator{}
	if err := v.
		Required("email", input.Email).
		Email("email", input.Email).
		MinLen("password", input.Password, 8).
		MaxLen("display_name", input.DisplayName, 120).
		Err(); err != nil {
		return nil, err
	}

	domain := emailDomain(input.Email)
	if _, allowed := service.allowedDomains[domain]; !allowed {
		return nil, apperr.Unprocessable("Email domain " + domain + " is not allowed for this workspace")
	}

	// ── 2. Uniqueness Check ───────────────────────────────────────────────

	// Verify email uniqueness. Return a client-safe Conflict error.
	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("users_service_hash_failed: %w", err)
	}

	// ── 4. Entity Construction & Persistence ──────────────────────────────

	user := &User{
		ID:           uuidv7.New(), // Time-sortable ID to prevent PG index fragmentation.
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Domain:       domain,
		Role:         sec.RoleUser, // Rule: Default role is always USER
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("users_service_register_failed: %w", err)
	}

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// Login validates user credentials and issues security tokens.
//
// # Flow
//  1. Lookup user by email.
//  2. Verify password hash using bcrypt.
//  3. Issue a short-lived access token and a tracked refresh session.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	// ── 1. Fetch User Profile ─────────────────────────────────────────────

	// Return generic unauthorized error to prevent account enumeration attacks.
	user, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 2. Security Verification ──────────────────────────────────────────

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.establishSession(ctx, user, input.UserAgent, input.IPAddress)
}

// RefreshSession implements the Refresh Token Rotation mechanism.
// It verifies the existing refresh token, revokes it to prevent reuse, and
// issues a fresh pair of access and refresh tokens.
func (service *Service) RefreshSession(ctx context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	// ── 1. Find Existing Session ──────────────────────────────────────────

	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		// The token is either expired, already revoked, or completely invalid.
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// ── 2. Rotation (Revoke Old Session) ──────────────────────────────────

	if err := service.sessionRepository.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("users_service_refresh_revoke_failed: %w", err)
	}

	// ── 3. Find User & Re-issue ───────────────────────────────────────────

	user, err := service.userRepository.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.establishSession(ctx, user, userAgent, ipAddress)
}

// Logout permanently revokes the user's active session.
// This ensures that the tracked refresh token can never be used again.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		// If the session is already gone or invalid, logout is considered
		// successful (idempotent operation).
		return nil
	}

	if err := service.sessionRepository.Revoke(ctx, session.ID); err != nil {
		return fmt.Errorf("users_service_logout_failed: %w", err)
	}

	return nil
}

// GetProfile returns the account behind the authenticated principal.
func (service *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(ctx, userID)
}

// UpdateProfileInput holds the mutable profile fields. Nil pointers mean "unchanged".
type UpdateProfileInput struct {
	DisplayName *string
	AvatarURL   *string
}

// UpdateProfile persists changes to the principal's own profile fields.
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*User, error) {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = pointer.Fallback(input.DisplayName, user.DisplayName)
	user.AvatarURL = pointer.Fallback(input.AvatarURL, user.AvatarURL)

	v := &validate.Validator{}
	if err := v.MaxLen("display_name", user.DisplayName, 120).Err(); err != nil {
		return nil, err
	}

	if err := service.userRepository.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("users_service_update_profile_failed: %w", err)
	}

	return user, nil
}

// # Password Reset

// resetTokenTTL bounds the window in which a reset token stays usable.
const resetTokenTTL = 30 * time.Minute

// RequestPasswordReset generates a volatile reset token for the account.
//
// It intentionally does not reveal whether the email exists: unknown emails
// silently succeed with an empty token.
func (service *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := service.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("users_service_reset_token_failed: %w", err)
	}

	if err := service.resetTokens.Set(ctx, token, user.ID, resetTokenTTL); err != nil {
		return "", fmt.Errorf("users_service_reset_store_failed: %w", err)
	}

	return token, nil
}

// ResetPassword consumes a reset token and replaces the account password.
// All active sessions are revoked so stolen refresh tokens die with the
// old password.
func (service *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	v := &validate.Validator{}
	if err := v.MinLen("password", newPassword, 8).Err(); err != nil {
		return err
	}

	userID, err := service.resetTokens.Get(ctx, token)
	if err != nil {
		return apperr.Unauthorized("Invalid or expired reset token")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("users_service_reset_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("users_service_reset_update_failed: %w", err)
	}

	if err := service.sessionRepository.RevokeAll(ctx, userID); err != nil {
		return fmt.Errorf("users_service_reset_revoke_failed: %w", err)
	}

	_ = service.resetTokens.Delete(ctx, token)
	return nil
}

// # Administration

// ListUsers returns a page of accounts. Admin-gated at the HTTP layer.
func (service *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return service.userRepository.List(ctx, limit, offset)
}

// ChangeRole replaces a user's role. Admin-gated at the HTTP layer.
func (service *Service) ChangeRole(ctx context.Context, userID string, role sec.Role) (*User, error) {
	if !role.In(sec.RoleAdmin, sec.RoleUser) {
		return nil, validate.RequiredError("role", "must be ADMIN or USER")
	}

	if err := service.userRepository.UpdateRole(ctx, userID, string(role)); err != nil {
		return nil, err
	}

	return service.userRepository.FindByID(ctx, userID)
}

// StartSessionCleanup launches a background routine that deletes expired
// refresh sessions every interval. It stops when ctx is cancelled.
func (service *Service) StartSessionCleanup(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				removed, err := service.sessionRepository.DeleteExpired(ctx)
				if err != nil {
					logger.Error("session cleanup failed", "error", err)
					continue
				}
				if removed > 0 {
					logger.Info("expired sessions removed", "count", removed)
				}
			case <-ctx.Done():
				// Stop the goroutine when the application shuts down
				return
			}
		}
	}()
}

// establishSession issues the access token plus a tracked refresh session.
func (service *Service) establishSession(ctx context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	// ── 1. Access Token ───────────────────────────────────────────────────

	// Short lifetime reduces the impact window if the token leaks.
	accessToken, err := service.tokenProvider.IssueAccessToken(
		user.ID, user.Email, user.DisplayName, user.Domain, user.Role, constants.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("users_service_token_issue_failed: %w", err)
	}

	// ── 2. Refresh Token ──────────────────────────────────────────────────

	refreshToken, err := sec.GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("users_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(constants.RefreshTokenTTL)
	session := &Session{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessionRepository.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("users_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// emailDomain returns the part of an email address after the final '@'.
func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
