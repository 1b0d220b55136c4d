// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

/*
Package apperr defines the centralized error handling framework for the Workspace API.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct carrying an RFC 7807-flavored problem description
    (type, title, status, detail) plus optional field-level details.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

// AppError is the canonical error type for the Workspace API.
//
// It carries a problem type, a short title, an HTTP status code, a
// client-safe detail message, and an optional slice of field-level
// validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Type is a machine-readable problem identifier (e.g. "not_found").
	Type string `json:"type"`
	// Title is a short human-readable summary of the problem class.
	Title string `json:"title"`
	// Status is the HTTP response status code.
	Status int `json:"status"`
	// Detail is a human-readable description safe to return to the client.
	Detail string `json:"detail"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for validation_error responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe detail.
func (e *AppError) Error() string { return e.Detail }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Thread") // Returns "Thread not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Type:   "not_found",
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: resource + " not found",
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(detail string) *AppError {
	return &AppError{
		Type:   "unauthorized",
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: detail,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(detail string) *AppError {
	return &AppError{
		Type:   "forbidden",
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: detail,
	}
}

// ForbiddenRoles creates a 403 [AppError] whose detail lists the roles
// permitted to perform the rejected operation.
func ForbiddenRoles(permitted []string) *AppError {
	return &AppError{
		Type:   "insufficient_role",
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: "Requires one of the following roles: " + strings.Join(permitted, ", "),
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(detail string) *AppError {
	return &AppError{
		Type:   "conflict",
		Title:  "Conflict",
		Status: http.StatusConflict,
		Detail: detail,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(detail string, details ...FieldError) *AppError {
	return &AppError{
		Type:    "validation_error",
		Title:   "Bad Request",
		Status:  http.StatusBadRequest,
		Detail:  detail,
		Details: details,
	}
}

// Unprocessable creates a 422 [AppError] for semantically invalid input.
func Unprocessable(detail string) *AppError {
	return &AppError{
		Type:   "unprocessable",
		Title:  "Unprocessable Entity",
		Status: http.StatusUnprocessableEntity,
		Detail: detail,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Type:   "internal_error",
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: "An unexpected error occurred",
		Cause:  cause,
	}
}

// BadGateway creates a 502 [AppError] for upstream service failures.
func BadGateway(detail string, cause error) *AppError {
	return &AppError{
		Type:   "bad_gateway",
		Title:  "Bad Gateway",
		Status: http.StatusBadGateway,
		Detail: detail,
		Cause:  cause,
	}
}

// ServiceUnavailable creates a 503 [AppError] for maintenance mode.
func ServiceUnavailable(detail string) *AppError {
	return &AppError{
		Type:   "service_unavailable",
		Title:  "Service Unavailable",
		Status: http.StatusServiceUnavailable,
		Detail: detail,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
