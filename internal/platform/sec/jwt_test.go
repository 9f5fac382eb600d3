// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhanle/paydeck/internal/platform/sec"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestTokenService(t *testing.T, ttl time.Duration) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, "paydeck.app", ttl)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_SecretLength rejects secrets shorter than 32 bytes.
*/
func TestNewTokenService_SecretLength(t *testing.T) {
	_, err := sec.NewTokenService([]byte("too-short"), "paydeck.app", time.Hour)
	require.Error(t, err)

	_, err = sec.NewTokenService(testSecret, "paydeck.app", time.Hour)
	assert.NoError(t, err)
}

/*
TestTokenService_RoundTrip issues a token and verifies it, checking that the
registered claims survive the trip.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t, 24*time.Hour)

	before := time.Now()
	token, expiresAt, err := service.Issue("user@test.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// 1. Expiry is issued-at + fixed TTL
	assert.WithinDuration(t, before.Add(24*time.Hour), expiresAt, 5*time.Second)

	// 2. Verification returns the original subject and issuer
	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user@test.com", claims.Subject)
	assert.Equal(t, "paydeck.app", claims.Issuer)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
}

/*
TestTokenService_Verify_Failures checks that malformed, mistyped, forged, and
expired tokens all collapse into the single ErrInvalidToken sentinel.
*/
func TestTokenService_Verify_Failures(t *testing.T) {
	service := newTestTokenService(t, time.Hour)

	valid, _, err := service.Issue("user@test.com")
	require.NoError(t, err)

	// Signed with a different server secret.
	otherService, err := sec.NewTokenService([]byte("ffffffffffffffffffffffffffffffff"), "paydeck.app", time.Hour)
	require.NoError(t, err)
	forged, _, err := otherService.Issue("user@test.com")
	require.NoError(t, err)

	// Signed by this server but already past its expiry.
	expiredService := newTestTokenService(t, -time.Minute)
	expired, _, err := expiredService.Issue("user@test.com")
	require.NoError(t, err)

	// Valid signature over a flipped payload byte.
	tampered := []byte(valid)
	tampered[len(tampered)/2] ^= 0x01

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"empty", ""},
		{"wrong_secret", forged},
		{"expired", expired},
		{"tampered", string(tampered)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.Verify(tt.token)
			assert.Nil(t, claims)

			// Every failure mode surfaces as the same sentinel.
			assert.ErrorIs(t, err, sec.ErrInvalidToken)
		})
	}
}

/*
TestTokenService_Verify_WrongIssuer rejects tokens minted for another issuer
even when the signature is valid.
*/
func TestTokenService_Verify_WrongIssuer(t *testing.T) {
	service := newTestTokenService(t, time.Hour)

	otherIssuer, err := sec.NewTokenService(testSecret, "someone-else.app", time.Hour)
	require.NoError(t, err)

	token, _, err := otherIssuer.Issue("user@test.com")
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}
