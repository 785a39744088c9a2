// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taligrayzel/BooksAPI/internal/platform/sec"
)

func newHMAC(t *testing.T, ttl time.Duration) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(sec.TokenConfig{
		Algorithm: "HS256",
		Secret:    "test-secret",
		Issuer:    "booksapi",
		TTL:       ttl,
	})
	require.NoError(t, err)
	return service
}

/*
TestPasswordHasher verifies salting and verification.
*/
func TestPasswordHasher(t *testing.T) {
	hasher := sec.PasswordHasher{Cost: bcrypt.MinCost}

	first, err := hasher.Hash("hunter2")
	require.NoError(t, err)
	second, err := hasher.Hash("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "salt must differ")
	assert.True(t, hasher.Verify("hunter2", first))
	assert.True(t, hasher.Verify("hunter2", second))
	assert.False(t, hasher.Verify("hunter3", first))
	assert.False(t, hasher.Verify("hunter2", "not-a-hash"))
}

func TestPasswordHasher_LongPassword(t *testing.T) {
	hasher := sec.PasswordHasher{Cost: bcrypt.MinCost}
	long := strings.Repeat("p", 255)

	hash, err := hasher.Hash(long)
	require.NoError(t, err)
	assert.True(t, hasher.Verify(long, hash))
}

/*
TestTokenService_RoundTrip issues then verifies a token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newHMAC(t, time.Hour)

	token, expiresAt, err := service.Issue(42)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

/*
TestTokenService_Verify classifies failures.
*/
func TestTokenService_Verify(t *testing.T) {
	service := newHMAC(t, time.Hour)

	t.Run("missing", func(t *testing.T) {
		_, err := service.Verify("")
		assert.ErrorIs(t, err, sec.ErrTokenMissing)
	})

	t.Run("expired", func(t *testing.T) {
		token, _, err := newHMAC(t, -time.Minute).Issue(1)
		require.NoError(t, err)
		_, err = service.Verify(token)
		assert.ErrorIs(t, err, sec.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.Verify("not.a.token")
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other, err := sec.NewTokenService(sec.TokenConfig{Algorithm: "HS256", Secret: "other", Issuer: "booksapi", TTL: time.Hour})
		require.NoError(t, err)
		token, _, err := other.Issue(1)
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	})

	t.Run("wrong_algorithm", func(t *testing.T) {
		other, err := sec.NewTokenService(sec.TokenConfig{Algorithm: "HS512", Secret: "test-secret", Issuer: "booksapi", TTL: time.Hour})
		require.NoError(t, err)
		token, _, err := other.Issue(1)
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	})

	t.Run("tampered", func(t *testing.T) {
		first, _, err := service.Issue(1)
		require.NoError(t, err)
		second, _, err := service.Issue(2)
		require.NoError(t, err)

		a := strings.Split(first, ".")
		b := strings.Split(second, ".")
		forged := strings.Join([]string{a[0], b[1], a[2]}, ".")

		_, err = service.Verify(forged)
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	})
}

func TestNewTokenService_Errors(t *testing.T) {
	_, err := sec.NewTokenService(sec.TokenConfig{Algorithm: "HS256"})
	assert.Error(t, err)

	_, err = sec.NewTokenService(sec.TokenConfig{Algorithm: "none", Secret: "x"})
	assert.Error(t, err)

	_, err = sec.NewTokenService(sec.TokenConfig{Algorithm: "RS256", PrivateKeyPath: "/nonexistent", PublicKeyPath: "/nonexistent"})
	assert.Error(t, err)
}

/*
TestTokenService_RS256 loads PEM keys from disk.
*/
func TestTokenService_RS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	require.NoError(t, os.WriteFile(privPath, privPEM, 0o600))
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0o600))

	service, err := sec.NewTokenService(sec.TokenConfig{
		Algorithm:      "RS256",
		PrivateKeyPath: privPath,
		PublicKeyPath:  pubPath,
		Issuer:         "booksapi",
		TTL:            time.Hour,
	})
	require.NoError(t, err)

	token, _, err := service.Issue(7)
	require.NoError(t, err)
	userID, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}
