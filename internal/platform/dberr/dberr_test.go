// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
	"github.com/taligrayzel/BooksAPI/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, dberr.Wrap(nil, "get_book"))
	})

	t.Run("no_rows", func(t *testing.T) {
		err := dberr.Wrap(pgx.ErrNoRows, "get_book")
		assert.True(t, dberr.IsNotFound(err))
		assert.Contains(t, err.Error(), "get_book")
	})

	t.Run("unique_violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "books_pkey"}
		err := dberr.Wrap(fmt.Errorf("exec: %w", pgErr), "create_book")
		assert.True(t, dberr.IsUniqueViolation(err))
		assert.Contains(t, err.Error(), "books_pkey")
	})

	t.Run("foreign_key_is_unexpected", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503"}
		err := dberr.Wrap(pgErr, "create_book")
		assert.Equal(t, apperr.KindUnexpected, apperr.KindOf(err))
		assert.False(t, dberr.IsUniqueViolation(err))
	})

	t.Run("already_classified_passthrough", func(t *testing.T) {
		err := fmt.Errorf("inner: %w", dberr.ErrUniqueViolation)
		assert.Same(t, err, dberr.Wrap(err, "outer"))
	})

	t.Run("unknown", func(t *testing.T) {
		err := dberr.Wrap(errors.New("connection reset"), "list_books")
		ae := apperr.As(err)
		if assert.NotNil(t, ae) {
			assert.Equal(t, "internal-error", ae.Code)
		}
	})
}
