// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package auth

import "context"

// UserRepository defines the data access contract for user accounts.
//
// # Implementations
//
// PostgreSQL ([PostgresRepository]) and the in-memory store (package memstore).
// Both return [dberr.ErrNotFound] for missing rows and
// [dberr.ErrUniqueViolation] for a taken username.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	FindByID(context context.Context, id int64) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(context context.Context, username string) (*User, error)

	// Create persists a new account and fills in its ID and CreatedAt.
	Create(context context.Context, user *User) error
}
