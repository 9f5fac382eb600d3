// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhanle/paydeck/internal/platform/sec"
)

/*
TestHashPassword_SaltRandomization verifies that hashing the same input twice
produces two different digests (bcrypt embeds a random salt).
*/
func TestHashPassword_SaltRandomization(t *testing.T) {
	password := "correct horse battery staple"

	first, err := sec.HashPassword(password)
	require.NoError(t, err)

	second, err := sec.HashPassword(password)
	require.NoError(t, err)

	// 1. Digests differ
	assert.NotEqual(t, first, second)

	// 2. The plaintext never appears inside the digest
	assert.False(t, strings.Contains(first, password))

	// 3. Both digests still verify against the original password
	assert.True(t, sec.CheckPasswordHash(password, first))
	assert.True(t, sec.CheckPasswordHash(password, second))
}

/*
TestCheckPasswordHash covers match, mismatch, and malformed stored hashes.
*/
func TestCheckPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("s3cret-pass")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		stored   string
		want     bool
	}{
		{"correct_password", "s3cret-pass", hash, true},
		{"wrong_password", "s3cret-pass2", hash, false},
		{"empty_password", "", hash, false},
		{"malformed_stored_hash", "s3cret-pass", "not-a-bcrypt-hash", false},
		{"empty_stored_hash", "s3cret-pass", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.CheckPasswordHash(tt.password, tt.stored))
		})
	}
}
