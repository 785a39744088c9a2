// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
)

/*
TestAppError_Is verifies sentinel comparison by kind and code.
*/
func TestAppError_Is(t *testing.T) {
	sentinel := apperr.NotFound("book-not-found", "Book not found")
	wrapped := fmt.Errorf("service: %w", apperr.NotFound("book-not-found", "Book not found"))

	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, wrapped, apperr.NotFound("author-not-found", "Author not found"))
	assert.NotErrorIs(t, wrapped, apperr.Conflict("book-not-found", "Book not found"))
}

/*
TestAppError_Internal hides the cause from the message.
*/
func TestAppError_Internal(t *testing.T) {
	cause := errors.New("pq: relation books does not exist")
	err := apperr.Internal(cause)

	assert.Equal(t, "An unexpected error occurred", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, apperr.KindUnexpected, err.Kind)
}

/*
TestKindOf classifies wrapped and foreign errors.
*/
func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"validation", apperr.Validation("Field 'id' is required"), apperr.KindValidation},
		{"wrapped_conflict", fmt.Errorf("x: %w", apperr.Conflict("c", "m")), apperr.KindConflict},
		{"auth", apperr.Unauthorized("token-missing", "Token is missing"), apperr.KindAuth},
		{"foreign", errors.New("boom"), apperr.KindUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(tt.err))
		})
	}
}

func TestAs(t *testing.T) {
	require.Nil(t, apperr.As(errors.New("plain")))
	ae := apperr.As(fmt.Errorf("wrap: %w", apperr.Forbidden("forbidden", "no")))
	require.NotNil(t, ae)
	assert.Equal(t, "forbidden", ae.Code)
	assert.Equal(t, "forbidden", ae.Kind.String())
}
