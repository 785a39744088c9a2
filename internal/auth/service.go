// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
	"github.com/taligrayzel/BooksAPI/internal/platform/sec"
	"github.com/taligrayzel/BooksAPI/internal/platform/txscope"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Verify(plainTextPassword, existingHash string) bool
}

// TokenProvider issues and verifies signed access tokens.
//
// Verify returns one of [sec.ErrTokenMissing], [sec.ErrTokenExpired] or
// [sec.ErrTokenInvalid] on failure.
type TokenProvider interface {
	Issue(userID int64) (string, time.Time, error)
	Verify(token string) (int64, error)
	TTL() time.Duration
}

// Service implements user registration, authentication and token checks.
type Service struct {
	users  UserRepository
	scope  txscope.Scope
	hasher PasswordHasher
	tokens TokenProvider
	logger *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(users UserRepository, scope txscope.Scope, hasher PasswordHasher, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		scope:  scope,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates an account with a unique username.
//
// # Business Rules
//   - Usernames are unique. A taken username is [ErrUsernameExists], whether
//     found by the pre-check or signalled by the store's unique constraint.
//   - The password is stored as a bcrypt hash only.
func (service *Service) Register(ctx context.Context, input Credentials) (*User, error) {
	var user *User

	err := service.scope.Run(ctx, func(ctx context.Context) error {

		// ── 1. Uniqueness Check ───────────────────────────────────────────
		_, err := service.users.FindByUsername(ctx, input.Username)
		if err == nil {
			return ErrUsernameExists
		}
		if !dberr.IsNotFound(err) {
			return err
		}

		// ── 2. Security ───────────────────────────────────────────────────
		hashedPassword, err := service.hasher.Hash(input.Password)
		if err != nil {
			return apperr.Internal(err)
		}

		// ── 3. Persistence ────────────────────────────────────────────────
		candidate := &User{Username: input.Username, PasswordHash: hashedPassword}
		if err := service.users.Create(ctx, candidate); err != nil {
			if dberr.IsUniqueViolation(err) {
				return ErrUsernameExists
			}
			return err
		}

		user = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// Authenticate checks a username and password.
//
// It distinguishes [ErrUserNotFound] (no such username) from
// [ErrInvalidPassword] (username exists, password wrong).
func (service *Service) Authenticate(ctx context.Context, input Credentials) (*User, error) {
	var user *User

	err := service.scope.Run(ctx, func(ctx context.Context) error {
		found, err := service.users.FindByUsername(ctx, input.Username)
		if err != nil {
			if dberr.IsNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !service.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// Login authenticates the user and issues an access token.
func (service *Service) Login(ctx context.Context, input Credentials) (*Session, error) {
	user, err := service.Authenticate(ctx, input)
	if err != nil {
		return nil, err
	}

	accessToken, expiresAt, err := service.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: issue token: %w", err))
	}

	service.logger.Info("user_logged_in", slog.Int64("user_id", user.ID))

	return &Session{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(service.tokens.TTL().Seconds()),
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// VerifyToken checks the token and confirms its user still exists.
//
// It satisfies middleware.TokenVerifier.
func (service *Service) VerifyToken(ctx context.Context, token string) (int64, error) {
	userID, err := service.tokens.Verify(token)
	switch {
	case errors.Is(err, sec.ErrTokenMissing):
		return 0, ErrTokenMissing
	case errors.Is(err, sec.ErrTokenExpired):
		return 0, ErrTokenExpired
	case err != nil:
		return 0, ErrTokenInvalid
	}

	err = service.scope.Run(ctx, func(ctx context.Context) error {
		_, err := service.users.FindByID(ctx, userID)
		return err
	})
	if err != nil {
		if dberr.IsNotFound(err) {
			return 0, ErrTokenInvalid
		}
		return 0, err
	}

	return userID, nil
}

// Me returns the account of the verified user.
func (service *Service) Me(ctx context.Context, userID int64) (*User, error) {
	var user *User

	err := service.scope.Run(ctx, func(ctx context.Context) error {
		found, err := service.users.FindByID(ctx, userID)
		if err != nil {
			if dberr.IsNotFound(err) {
				return ErrTokenInvalid
			}
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
