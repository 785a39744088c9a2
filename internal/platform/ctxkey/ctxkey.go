// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

// Package ctxkey defines the context keys for request-scoped values: the
// request ID, the verified user, the request logger and the open transaction.
package ctxkey

// key is unexported so no other package can produce a colliding key.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUserID is the context key for the verified user id (int64).
	KeyUserID key = "user_id"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"

	// KeyTx holds the transaction handle of the enclosing txscope.Scope run.
	KeyTx key = "tx"
)
