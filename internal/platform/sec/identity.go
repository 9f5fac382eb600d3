// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package sec

// # Authenticated Identity

// Identity is the per-request view of an authenticated principal.
//
// It is constructed by the authorization middleware after token verification:
// the subject email comes from the verified token, while the role list is
// resolved fresh from the principal store. Handlers receive it explicitly via
// the request context; no component reads ambient process-wide state.
type Identity struct {
	// PrincipalID is the UUID of the authenticated principal.
	PrincipalID string

	// Email is the principal's normalized email (the token subject).
	Email string

	// Roles holds the principal's current role names, sorted ascending.
	Roles []string
}

// HasRole reports whether the identity carries the named role grant.
func (identity *Identity) HasRole(name string) bool {
	for _, role := range identity.Roles {
		if role == name {
			return true
		}
	}
	return false
}
