// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhanle/paydeck/internal/platform/apperr"
)

/*
TestConstructors checks the code and HTTP status mapping of the taxonomy.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperr.AppError
		wantCode   string
		wantStatus int
	}{
		{"not_found", apperr.NotFound("Principal"), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", apperr.Unauthorized("Invalid email or password"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("Insufficient permissions"), "FORBIDDEN", http.StatusForbidden},
		{"conflict", apperr.Conflict("Email is already registered"), "CONFLICT", http.StatusConflict},
		{"validation", apperr.ValidationError("Validation failed"), "VALIDATION_ERROR", http.StatusBadRequest},
		{"internal", apperr.Internal(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
		})
	}
}

/*
TestInternal_HidesCause asserts the cause never reaches the client-facing
message.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: password authentication failed for user postgres")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "postgres")
	assert.Equal(t, "An unexpected error occurred", err.Message)

	// The cause stays reachable for server-side logging
	assert.ErrorIs(t, err, cause)
}

/*
TestAs_TraversesWrapChain extracts an AppError through fmt.Errorf wrapping.
*/
func TestAs_TraversesWrapChain(t *testing.T) {
	inner := apperr.NotFound("Organization")
	wrapped := fmt.Errorf("organization_service_get_failed: %w", inner)

	require.True(t, apperr.IsAppError(wrapped))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)

	// A plain error yields nil
	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.IsAppError(errors.New("plain")))
}
