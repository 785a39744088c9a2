// Copyright (c) 2026 BooksAPI. All rights reserved.
// Author: taligrayzel

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. The auth service consumes it through small interfaces and
// is the one that turns the errors below into client-facing messages.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMissing is returned for an empty token string.
	ErrTokenMissing = errors.New("sec: token missing")

	// ErrTokenExpired is returned when the exp claim is in the past.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid covers bad signatures, wrong algorithms and malformed tokens.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// AccessClaims is the payload embedded inside an access token.
type AccessClaims struct {
	jwt.RegisteredClaims

	UserID int64 `json:"user_id"`
}

// TokenConfig selects the signing algorithm and key material.
type TokenConfig struct {
	// Algorithm is one of HS256, HS384, HS512 or RS256.
	Algorithm string

	// Secret is the HMAC key. Ignored for RS256.
	Secret string

	// PrivateKeyPath and PublicKeyPath point at PEM files for RS256.
	PrivateKeyPath string
	PublicKeyPath  string

	Issuer string
	TTL    time.Duration
}

// TokenService issues and verifies signed access tokens.
type TokenService struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
	issuer    string
	ttl       time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// NewTokenService creates a TokenService for the configured algorithm.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	service := &TokenService{
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}

	switch cfg.Algorithm {
	case "HS256", "HS384", "HS512":
		if cfg.Secret == "" {
			return nil, fmt.Errorf("sec: %s requires a secret", cfg.Algorithm)
		}
		service.method = jwt.GetSigningMethod(cfg.Algorithm)
		service.signKey = []byte(cfg.Secret)
		service.verifyKey = []byte(cfg.Secret)

	case "RS256":
		privateKey, publicKey, err := loadRSAKeys(cfg.PrivateKeyPath, cfg.PublicKeyPath)
		if err != nil {
			return nil, err
		}
		service.method = jwt.SigningMethodRS256
		service.signKey = privateKey
		service.verifyKey = publicKey

	default:
		return nil, fmt.Errorf("sec: unsupported signing algorithm %q", cfg.Algorithm)
	}

	return service, nil
}

func loadRSAKeys(privateKeyPath, publicKeyPath string) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKeyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("sec: failed to read private key from %s: %w", privateKeyPath, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
	if err != nil {
		return nil, nil, fmt.Errorf("sec: failed to parse private key: %w", err)
	}

	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return privateKey, publicKey, nil
}

// TTL returns the lifetime of issued tokens.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue creates a signed token for userID expiring after the configured TTL.
func (service *TokenService) Issue(userID int64) (string, time.Time, error) {
	currentTime := service.now()
	expiresAt := currentTime.Add(service.ttl)

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(service.method, claims)
	signedToken, err := token.SignedString(service.signKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// Verify checks the signature, algorithm, issuer and expiry of tokenString and
// returns the embedded user id. Errors are one of [ErrTokenMissing],
// [ErrTokenExpired] or [ErrTokenInvalid].
func (service *TokenService) Verify(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, ErrTokenMissing
	}

	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{},
		func(*jwt.Token) (any, error) { return service.verifyKey, nil },
		jwt.WithValidMethods([]string{service.method.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return 0, ErrTokenInvalid
	}

	return claims.UserID, nil
}
