// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package auth

import "github.com/taligrayzel/BooksAPI/internal/platform/validate"

// Field limits.
const (
	UsernameMaxLen = 100
	PasswordMaxLen = 255
)

// Credentials is a validated username and password pair.
type Credentials struct {
	Username string
	Password string
}

// ParseRegister validates a registration payload.
func ParseRegister(payload validate.Payload) (Credentials, error) {
	return parseCredentials(payload)
}

// ParseLogin validates a login payload.
func ParseLogin(payload validate.Payload) (Credentials, error) {
	return parseCredentials(payload)
}

func parseCredentials(payload validate.Payload) (Credentials, error) {
	if err := validate.RequireBody(payload); err != nil {
		return Credentials{}, err
	}

	var v validate.Validator
	username := v.RequiredString(payload, "username", UsernameMaxLen)
	password := v.RequiredString(payload, "password", PasswordMaxLen)
	if err := v.Err(); err != nil {
		return Credentials{}, err
	}

	return Credentials{Username: username, Password: password}, nil
}
