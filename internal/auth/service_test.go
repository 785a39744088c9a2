// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taligrayzel/BooksAPI/internal/auth"
	"github.com/taligrayzel/BooksAPI/internal/platform/memstore"
	"github.com/taligrayzel/BooksAPI/internal/platform/sec"
)

type fixture struct {
	store   *memstore.Store
	service *auth.Service
	tokens  *sec.TokenService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	tokens, err := sec.NewTokenService(sec.TokenConfig{Algorithm: "HS256", Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)

	store := memstore.New()
	service := auth.NewService(
		store.Users(),
		store,
		sec.PasswordHasher{Cost: bcrypt.MinCost},
		tokens,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return fixture{store: store, service: service, tokens: tokens}
}

var alice = auth.Credentials{Username: "alice", Password: "correct horse"}

/*
TestService_Register covers the happy path and the duplicate username conflict.
*/
func TestService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.service.Register(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, alice.Password, user.PasswordHash)

	_, err = f.service.Register(ctx, alice)
	assert.ErrorIs(t, err, auth.ErrUsernameExists)

	stored, err := f.store.Users().FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

/*
TestService_Register_Concurrent lets exactly one of several racing registrations win.
*/
func TestService_Register_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := range racers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Register(ctx, alice)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, auth.ErrUsernameExists)
	}
	assert.Equal(t, 1, succeeded)
}

/*
TestService_Authenticate distinguishes an unknown user from a wrong password.
*/
func TestService_Authenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.service.Register(ctx, alice)
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		user, err := f.service.Authenticate(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, err := f.service.Authenticate(ctx, auth.Credentials{Username: "bob", Password: "x"})
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := f.service.Authenticate(ctx, auth.Credentials{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidPassword)
	})
}

/*
TestService_LoginAndVerify issues a token that verifies back to the same user.
*/
func TestService_LoginAndVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := f.service.Register(ctx, alice)
	require.NoError(t, err)

	session, err := f.service.Login(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, int64(3600), session.ExpiresIn)
	assert.NotEmpty(t, session.AccessToken)

	userID, err := f.service.VerifyToken(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	me, err := f.service.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
}

func TestService_VerifyToken_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		_, err := f.service.VerifyToken(ctx, "")
		assert.ErrorIs(t, err, auth.ErrTokenMissing)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := f.service.VerifyToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		short, err := sec.NewTokenService(sec.TokenConfig{Algorithm: "HS256", Secret: "test-secret", TTL: -time.Minute})
		require.NoError(t, err)
		token, _, err := short.Issue(1)
		require.NoError(t, err)

		_, err = f.service.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})

	t.Run("user_gone", func(t *testing.T) {
		token, _, err := f.tokens.Issue(404)
		require.NoError(t, err)

		_, err = f.service.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})
}
