// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package identity_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhanle/paydeck/internal/identity"
)

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_Signup covers the signup endpoint: envelope shape, validation
failures, and duplicate conflicts.
*/
func TestHandler_Signup(t *testing.T) {
	f := newFixture(t)
	router := identity.NewHandler(f.service).Routes()

	// 1. Happy path returns 201 with the token response inside the envelope
	recorder := postJSON(t, router, "/signup",
		`{"email": "User@Test.com", "password": "longenough", "companyName": "Acme"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var envelope struct {
		Data struct {
			Token            string   `json:"token"`
			ExpiresInSeconds int64    `json:"expiresInSeconds"`
			Email            string   `json:"email"`
			Roles            []string `json:"roles"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, int64(86400), envelope.Data.ExpiresInSeconds)
	assert.Equal(t, "user@test.com", envelope.Data.Email)
	assert.Equal(t, []string{"USER"}, envelope.Data.Roles)

	// The response body never leaks a password or hash field
	assert.NotContains(t, recorder.Body.String(), "password")

	// 2. Duplicate email conflicts
	recorder = postJSON(t, router, "/signup",
		`{"email": "USER@TEST.COM", "password": "longenough"}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	// 3. Malformed JSON
	recorder = postJSON(t, router, "/signup", `{"email": `)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// 4. Weak password fails validation before reaching the service
	recorder = postJSON(t, router, "/signup",
		`{"email": "short@test.com", "password": "short"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
}

/*
TestHandler_Login covers authentication over the wire, including the identical
failure responses for unknown email and wrong password.
*/
func TestHandler_Login(t *testing.T) {
	f := newFixture(t)
	router := identity.NewHandler(f.service).Routes()

	recorder := postJSON(t, router, "/signup",
		`{"email": "user@test.com", "password": "longenough"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// 1. Valid credentials with different casing
	recorder = postJSON(t, router, "/login",
		`{"email": "USER@test.com", "password": "longenough"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// 2. Wrong password and unknown email read identically on the wire
	wrongPassword := postJSON(t, router, "/login",
		`{"email": "user@test.com", "password": "wrong-password"}`)
	unknownEmail := postJSON(t, router, "/login",
		`{"email": "ghost@test.com", "password": "longenough"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

/*
TestHandler_PasswordReset exercises the forgot/reset endpoints end to end.
*/
func TestHandler_PasswordReset(t *testing.T) {
	f := newFixture(t)
	router := identity.NewHandler(f.service).Routes()

	recorder := postJSON(t, router, "/signup",
		`{"email": "user@test.com", "password": "oldpassword"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// 1. Forgot-password responds with the same generic message either way
	known := postJSON(t, router, "/forgot-password", `{"email": "user@test.com"}`)
	unknown := postJSON(t, router, "/forgot-password", `{"email": "ghost@test.com"}`)
	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())

	// 2. The token is delivered out-of-band; fetch it from the store directly
	var token string
	f.resets.mu.Lock()
	for stored := range f.resets.tokens {
		token = stored
	}
	f.resets.mu.Unlock()
	require.NotEmpty(t, token)

	// 3. Reset installs the new password
	recorder = postJSON(t, router, "/reset-password",
		`{"token": "`+token+`", "password": "newpassword1"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = postJSON(t, router, "/login",
		`{"email": "user@test.com", "password": "newpassword1"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// 4. A consumed token cannot be replayed
	recorder = postJSON(t, router, "/reset-password",
		`{"token": "`+token+`", "password": "anotherpassword"}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
