// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

// Package mailaddr normalizes email addresses for identity comparison.
//
// # Usage
//
// Every email entering the system (signup, login, token subjects) is passed
// through [Normalize] before any lookup or write. Storage and comparison are
// therefore case-insensitive by construction rather than by database collation.
package mailaddr

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize returns the canonical form of an email address: surrounding
// whitespace trimmed and Unicode case folding applied.
//
// Case folding rather than plain lowercasing handles the handful of scripts
// where ToLower is not a stable canonical form (e.g. dotted/dotless I).
func Normalize(email string) string {
	// A Caser is not safe for concurrent use; construct per call.
	return cases.Fold().String(strings.TrimSpace(email))
}

// Equal reports whether two email addresses identify the same principal.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
