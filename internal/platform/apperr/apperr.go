// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

/*
Package apperr defines the centralized error taxonomy for the Books API.

It provides a rich error type that bridges the gap between low-level storage
errors and the boundary layer that talks HTTP.

Architecture:

  - AppError: A struct carrying a taxonomy [Kind], a machine-readable Code and a
    client-safe Message.
  - Kind: What went wrong (validation, not found, conflict, ...). The core never
    decides status codes; the respond package maps a Kind to one.
  - Cause: The wrapped underlying error, for server-side logs only.

Every expected failure that leaves a validator or a service is an [AppError].
Anything else is treated as [KindUnexpected] at the boundary.
*/
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an [AppError] into the error taxonomy.
type Kind int

const (
	// KindUnexpected is anything the core did not anticipate. It is logged and
	// never exposes internals to the caller.
	KindUnexpected Kind = iota

	// KindValidation means the client sent structurally or semantically bad input.
	KindValidation

	// KindNotFound means a referenced entity is absent.
	KindNotFound

	// KindConflict means a uniqueness invariant would be violated.
	KindConflict

	// KindForbidden means the caller is authenticated but not allowed.
	KindForbidden

	// KindAuth covers missing, expired or invalid tokens and wrong credentials.
	KindAuth

	// KindRateLimited means the caller exceeded its request budget.
	KindRateLimited
)

// String returns the lowercase taxonomy name.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindAuth:
		return "auth"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "unexpected"
	}
}

// AppError is the canonical error type of the Books API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Kind is the taxonomy member.
	Kind Kind `json:"-"`
	// Code is a machine-readable signal (e.g. "book-not-found").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another *AppError with the same Kind and Code, so sentinel
// values can be compared with [errors.Is].
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// New creates an [AppError] of the given kind.
func New(kind Kind, code, msg string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: msg}
}

// # Client Errors

// Validation creates a [KindValidation] error with the first violated rule as message.
func Validation(msg string) *AppError {
	return New(KindValidation, "validation-error", msg)
}

// NotFound creates a [KindNotFound] error.
//
// Example:
//
//	apperr.NotFound("book-not-found", "Book not found")
func NotFound(code, msg string) *AppError {
	return New(KindNotFound, code, msg)
}

// Conflict creates a [KindConflict] error for duplicate or unique-constraint violations.
func Conflict(code, msg string) *AppError {
	return New(KindConflict, code, msg)
}

// Forbidden creates a [KindForbidden] error.
func Forbidden(code, msg string) *AppError {
	return New(KindForbidden, code, msg)
}

// Unauthorized creates a [KindAuth] error.
func Unauthorized(code, msg string) *AppError {
	return New(KindAuth, code, msg)
}

// RateLimited creates a [KindRateLimited] error.
func RateLimited(retryAfterSeconds int) *AppError {
	return New(KindRateLimited, "rate-limited", fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// # Server Errors

// Internal creates a [KindUnexpected] error wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Kind:    KindUnexpected,
		Code:    "internal-error",
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// KindOf reports the taxonomy member of err. Errors that are not an
// [*AppError] are [KindUnexpected].
func KindOf(err error) Kind {
	if ae := As(err); ae != nil {
		return ae.Kind
	}
	return KindUnexpected
}
