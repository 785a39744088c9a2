// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Repositories (postgres and in-memory alike) return the sentinels below so
// that services can translate them into domain errors without knowing which
// store is behind the interface.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
)

// uniqueViolationCode is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolationCode = "23505"

var (
	// ErrNotFound is returned when a queried row doesn't exist.
	ErrNotFound = errors.New("dberr: row not found")

	// ErrUniqueViolation is returned when a write collides with a unique constraint.
	ErrUniqueViolation = errors.New("dberr: unique constraint violation")
)

// Wrap inspects a database error and classifies it.
//
//   - pgx.ErrNoRows becomes [ErrNotFound].
//   - SQLSTATE 23505 becomes [ErrUniqueViolation] (constraint name kept in the text).
//   - Anything else becomes [apperr.Internal], hiding driver details from clients.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Already classified
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUniqueViolation) || apperr.As(err) != nil {
		return err
	}

	// 2. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", action, ErrNotFound)
	}

	// 3. Unique violation mapping
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%s: %s: %w", action, pgErr.ConstraintName, ErrUniqueViolation)
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsNotFound reports whether err is (or wraps) [ErrNotFound].
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUniqueViolation reports whether err is (or wraps) [ErrUniqueViolation].
func IsUniqueViolation(err error) bool {
	return errors.Is(err, ErrUniqueViolation)
}
