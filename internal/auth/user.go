// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

// Package auth owns user accounts and the credential lifecycle: registration,
// login, token issuance and token verification.
//
// # Architecture
//
// Entities and validators here have no dependency on HTTP or SQL. The
// [Service] orchestrates the [UserRepository], the password hasher and the
// token provider inside one transaction scope per operation.
package auth

import (
	"time"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
)

// User represents a registered account.
//
// # Rules
//   - Username is unique.
//   - PasswordHash is produced by bcrypt exclusively via [Service.Register].
//   - Users are immutable after registration.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the result of a successful login.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"-"`
	User        *User     `json:"-"`
}

// Domain errors.
var (
	ErrUsernameExists  = apperr.Conflict("username-exists", "Username already exists")
	ErrUserNotFound    = apperr.NotFound("user-not-found", "Username does not exists")
	ErrInvalidPassword = apperr.Unauthorized("invalid-password", "Password is not correct")

	ErrTokenMissing = apperr.Unauthorized("token-missing", "Token is missing")
	ErrTokenExpired = apperr.Unauthorized("token-expired", "Token expired")
	ErrTokenInvalid = apperr.Unauthorized("token-invalid", "Invalid token")
)
