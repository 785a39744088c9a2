// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

// Package uuidv7 generates time-ordered identifiers for request correlation.
package uuidv7

import "github.com/google/uuid"

// New returns a UUIDv7 string, or a random UUIDv4 when v7 generation fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
