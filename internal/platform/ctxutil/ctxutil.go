// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

// Package ctxutil reads and writes the request-scoped values keyed in ctxkey.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taligrayzel/BooksAPI/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID attaches the correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation id, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger attaches the request logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithUserID returns a new context carrying the verified user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUserID, userID)
}

// GetUserID retrieves the verified user id from the context.
// The boolean is false for anonymous requests.
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxkey.KeyUserID).(int64)
	return id, ok
}
