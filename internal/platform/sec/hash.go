// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptMaxInput is the number of password bytes bcrypt actually consumes.
const bcryptMaxInput = 72

// PasswordHasher hashes and verifies passwords with bcrypt.
//
// Every call to [PasswordHasher.Hash] draws a fresh random salt, so the same
// password never produces the same hash twice.
type PasswordHasher struct {
	// Cost is the bcrypt work factor. Zero means [bcrypt.DefaultCost].
	Cost int
}

// Hash hashes a plain-text password.
//
// Input beyond 72 bytes is ignored, matching classic bcrypt implementations.
func (hasher PasswordHasher) Hash(plainTextPassword string) (string, error) {
	cost := hasher.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hashedBytes, err := bcrypt.GenerateFromPassword(truncate(plainTextPassword), cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify reports whether plainTextPassword produced existingHash.
func (hasher PasswordHasher) Verify(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), truncate(plainTextPassword))
	return err == nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxInput {
		b = b[:bcryptMaxInput]
	}
	return b
}
