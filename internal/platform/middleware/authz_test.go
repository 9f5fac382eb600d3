// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhanle/paydeck/internal/platform/ctxutil"
	"github.com/minhanle/paydeck/internal/platform/middleware"
	"github.com/minhanle/paydeck/internal/platform/sec"
)

// staticResolver maps known subjects to identities, like the identity service
// does against the principal store.
type staticResolver struct {
	identities map[string]*sec.Identity
}

func (r *staticResolver) Resolve(_ context.Context, email string) (*sec.Identity, error) {
	identity, ok := r.identities[email]
	if !ok {
		return nil, sec.ErrInvalidToken
	}
	return identity, nil
}

func newAuthFixture(t *testing.T) (*sec.TokenService, *staticResolver) {
	t.Helper()
	tokens, err := sec.NewTokenService(
		[]byte("0123456789abcdef0123456789abcdef"), "paydeck.app", time.Hour)
	require.NoError(t, err)

	resolver := &staticResolver{identities: map[string]*sec.Identity{
		"user@test.com": {PrincipalID: "p-1", Email: "user@test.com", Roles: []string{"USER"}},
		"admin@test.com": {PrincipalID: "p-2", Email: "admin@test.com", Roles: []string{"ADMIN", "USER"}},
	}}
	return tokens, resolver
}

// echoIdentity responds 200 with the resolved principal ID, or "anonymous".
func echoIdentity(writer http.ResponseWriter, request *http.Request) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		_, _ = writer.Write([]byte("anonymous"))
		return
	}
	_, _ = writer.Write([]byte(identity.PrincipalID))
}

/*
TestAuthenticate_ValidToken verifies that a freshly issued token resolves to
an identity visible to downstream handlers.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	tokens, resolver := newAuthFixture(t)
	handler := middleware.Authenticate(tokens, resolver)(http.HandlerFunc(echoIdentity))

	token, _, err := tokens.Issue("user@test.com")
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "p-1", recorder.Body.String())
}

/*
TestAuthenticate_MissingHeader lets the request through as anonymous; route
guards decide whether anonymity is acceptable.
*/
func TestAuthenticate_MissingHeader(t *testing.T) {
	tokens, resolver := newAuthFixture(t)
	handler := middleware.Authenticate(tokens, resolver)(http.HandlerFunc(echoIdentity))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "anonymous", recorder.Body.String())
}

/*
TestAuthenticate_RejectedTokens asserts that garbage, forged, expired, and
orphaned tokens all produce the same 401 response body.
*/
func TestAuthenticate_RejectedTokens(t *testing.T) {
	tokens, resolver := newAuthFixture(t)
	handler := middleware.Authenticate(tokens, resolver)(http.HandlerFunc(echoIdentity))

	forgedSigner, err := sec.NewTokenService(
		[]byte("ffffffffffffffffffffffffffffffff"), "paydeck.app", time.Hour)
	require.NoError(t, err)
	forged, _, err := forgedSigner.Issue("user@test.com")
	require.NoError(t, err)

	expiredSigner, err := sec.NewTokenService(
		[]byte("0123456789abcdef0123456789abcdef"), "paydeck.app", -time.Minute)
	require.NoError(t, err)
	expired, _, err := expiredSigner.Issue("user@test.com")
	require.NoError(t, err)

	// Valid signature, but the subject no longer resolves to a principal.
	orphaned, _, err := tokens.Issue("deleted@test.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"forged", forged},
		{"expired", expired},
		{"orphaned_subject", orphaned},
	}

	var firstBody string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Authorization", "Bearer "+tt.token)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)

			// Every rejection reads identically on the wire.
			if firstBody == "" {
				firstBody = recorder.Body.String()
			} else {
				assert.Equal(t, firstBody, recorder.Body.String())
			}
		})
	}
}

/*
TestRequireAuth blocks anonymous requests behind guarded routes.
*/
func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(http.HandlerFunc(echoIdentity))

	// 1. Anonymous request is rejected
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 2. Authenticated request passes
	identity := &sec.Identity{PrincipalID: "p-1", Email: "user@test.com", Roles: []string{"USER"}}
	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireRole distinguishes missing authentication (401) from missing
grants (403).
*/
func TestRequireRole(t *testing.T) {
	handler := middleware.RequireRole("ADMIN")(http.HandlerFunc(echoIdentity))

	tests := []struct {
		name       string
		identity   *sec.Identity
		wantStatus int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"missing_grant", &sec.Identity{PrincipalID: "p-1", Roles: []string{"USER"}}, http.StatusForbidden},
		{"has_grant", &sec.Identity{PrincipalID: "p-2", Roles: []string{"ADMIN", "USER"}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				request = request.WithContext(ctxutil.WithIdentity(request.Context(), tt.identity))
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
