// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
	"github.com/taligrayzel/BooksAPI/internal/platform/respond"
)

/*
TestError maps each error Kind to its status and envelope.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody respond.ErrorEnvelope
	}{
		{"validation", apperr.Validation("Field 'id' is required"), 400, respond.ErrorEnvelope{Error: "Field 'id' is required", Code: "validation-error"}},
		{"not_found", apperr.NotFound("book-not-found", "Book not found"), 404, respond.ErrorEnvelope{Error: "Book not found", Code: "book-not-found"}},
		{"conflict", fmt.Errorf("wrapped: %w", apperr.Conflict("username-exists", "Username already exists")), 409, respond.ErrorEnvelope{Error: "Username already exists", Code: "username-exists"}},
		{"forbidden", apperr.Forbidden("forbidden", "Only the creator of this book can delete it"), 403, respond.ErrorEnvelope{Error: "Only the creator of this book can delete it", Code: "forbidden"}},
		{"auth", apperr.Unauthorized("token-expired", "Token expired"), 401, respond.ErrorEnvelope{Error: "Token expired", Code: "token-expired"}},
		{"rate_limited", apperr.RateLimited(1), 429, respond.ErrorEnvelope{Error: "Too many requests. Try again in 1s.", Code: "rate-limited"}},
		{"foreign", errors.New("pq: relation missing"), 500, respond.ErrorEnvelope{Error: "An unexpected error occurred", Code: "internal-error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestOK(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]int{"id": 1})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"id":1}}`, recorder.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
}
