// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the identity service's TokenProvider interface.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretLength is the minimum byte length accepted for the HMAC secret.
const minSecretLength = 32

// ErrInvalidToken is the single verification failure returned by
// [TokenService.Verify].
//
// # Why one error?
//
// Malformed, forged, and expired tokens are deliberately indistinguishable to
// callers. A distinct "expired" error would give an attacker an oracle for
// which forged tokens carry otherwise-valid signatures.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims represents the payload embedded inside a signed bearer token.
//
// The token carries only the registered claims: subject (the principal's
// normalized email), issuer, issued-at, and expiry. Role grants are looked up
// fresh from the principal store on every request, so role revocation takes
// effect without waiting for outstanding tokens to expire.
type AuthClaims struct {
	jwt.RegisteredClaims
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a new TokenService signing with the given
// server-held secret.
//
// The secret is read once at startup and treated as immutable thereafter.
func NewTokenService(secret []byte, issuer string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("sec: signing secret must be at least %d bytes", minSecretLength)
	}

	return &TokenService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL returns the fixed lifetime applied to every issued token.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue creates a new signed bearer token for the given subject.
//
// # Returns
//   - The signed token string.
//   - The expiry instant (issued-at + fixed TTL).
func (service *TokenService) Issue(subject string) (string, time.Time, error) {
	currentTime := time.Now()
	expiresAt := currentTime.Add(service.ttl)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// Verify checks the signature and validity of a token string.
//
// Signature integrity is verified before any embedded claim is trusted, and
// expiry is checked independently against the current time. Every failure mode
// collapses into [ErrInvalidToken].
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&AuthClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
