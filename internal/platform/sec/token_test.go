// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhanle/paydeck/internal/platform/sec"
)

/*
TestGenerateSecureToken verifies token length and uniqueness.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	// 1. base64url of 32 bytes without padding is 43 characters
	assert.Len(t, first, 43)

	// 2. Two tokens never collide
	assert.NotEqual(t, first, second)
}

/*
TestHashToken verifies the digest is deterministic and one-way shaped.
*/
func TestHashToken(t *testing.T) {
	digest := sec.HashToken("my-reset-token")

	// 1. Deterministic
	assert.Equal(t, digest, sec.HashToken("my-reset-token"))

	// 2. hex-encoded SHA-256 is 64 characters
	assert.Len(t, digest, 64)

	// 3. The raw token never appears in the digest
	assert.NotContains(t, digest, "my-reset-token")

	// 4. Different tokens produce different digests
	assert.NotEqual(t, digest, sec.HashToken("my-reset-token2"))
}

/*
TestIdentity_HasRole checks role membership lookups.
*/
func TestIdentity_HasRole(t *testing.T) {
	identity := &sec.Identity{
		PrincipalID: "p-1",
		Email:       "user@test.com",
		Roles:       []string{"ADMIN", "USER"},
	}

	assert.True(t, identity.HasRole("USER"))
	assert.True(t, identity.HasRole("ADMIN"))
	assert.False(t, identity.HasRole("AUDITOR"))

	// Role names are case-sensitive.
	assert.False(t, identity.HasRole("user"))

	empty := &sec.Identity{}
	assert.False(t, empty.HasRole("USER"))
}
