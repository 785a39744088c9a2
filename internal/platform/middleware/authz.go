// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taligrayzel/BooksAPI/internal/platform/apperr"
	"github.com/taligrayzel/BooksAPI/internal/platform/constants"
	"github.com/taligrayzel/BooksAPI/internal/platform/ctxutil"
	"github.com/taligrayzel/BooksAPI/internal/platform/respond"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Implementations return an [apperr.KindAuth] error for missing, expired or
// invalid tokens, and the verified user id otherwise.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (int64, error)
}

// RequireAuth extracts and verifies the bearer token before the protected
// handler runs.
//
// # Flow
//  1. Read 'Authorization: Bearer <token>'. Absent or malformed means missing.
//  2. Verify the token via [TokenVerifier] (signature, expiry, user still exists).
//  3. Inject the verified user id into the request context and tag the
//     request logger with it.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Header Extraction ──────────────────────────────────────────
			token := BearerToken(request)

			// ── 2. Token Verification ─────────────────────────────────────────
			userID, err := verifier.VerifyToken(request.Context(), token)
			if err != nil {
				if apperr.As(err) == nil {
					err = apperr.Internal(err)
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithUserID(request.Context(), userID)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.Int64("user_id", userID)))
			if recorder, ok := writer.(*statusRecorder); ok {
				recorder.userID = userID
			}

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// BearerToken returns the token of an 'Authorization: Bearer <token>' header,
// or "" when the header is absent or uses another scheme.
func BearerToken(request *http.Request) string {
	header := request.Header.Get(constants.HeaderAuthorization)
	if !strings.HasPrefix(header, constants.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(constants.BearerPrefix):])
}
