// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package mailaddr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhanle/paydeck/pkg/mailaddr"
)

/*
TestNormalize covers trimming and Unicode case folding.
*/
func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase_passthrough", "user@test.com", "user@test.com"},
		{"uppercase_folded", "USER@TEST.COM", "user@test.com"},
		{"mixed_case", "UsEr@TeSt.CoM", "user@test.com"},
		{"surrounding_whitespace", "  user@test.com \t", "user@test.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mailaddr.Normalize(tt.input))
		})
	}
}

/*
TestEqual verifies that comparison is case-insensitive by construction.
*/
func TestEqual(t *testing.T) {
	assert.True(t, mailaddr.Equal("user@test.com", "USER@TEST.COM"))
	assert.True(t, mailaddr.Equal(" user@test.com ", "user@test.com"))
	assert.False(t, mailaddr.Equal("user@test.com", "other@test.com"))
}
