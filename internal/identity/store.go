// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package identity

import (
	"context"
	"time"
)

// # Principal Data Access
//
// All email parameters are expected to be pre-normalized by the service layer
// (pkg/mailaddr); repositories perform no case handling of their own.

// PrincipalRepository defines the data access contract for principals.
type PrincipalRepository interface {

	/*
		ExistsByEmail reports whether a principal with the given email exists.

		Parameters:
		  - context: context.Context
		  - email: string (normalized)

		Returns:
		  - bool: Existence flag
		  - error: Database retrieval failures
	*/
	ExistsByEmail(context context.Context, email string) (bool, error)

	/*
		FindByEmail returns the principal with the given email.

		Parameters:
		  - context: context.Context
		  - email: string (normalized)

		Returns:
		  - *Principal: Hydrated entity (roles are NOT attached; use ListRoleNames)
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Principal, error)

	/*
		FindByID returns the principal with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Principal: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Principal, error)

	/*
		Create persists a brand-new principal together with its role links.

		The principal row and the join-table rows are written in a single
		transaction: either all of it lands or none of it does. A duplicate
		email surfaces as apperr.Conflict; the storage-level unique
		constraint is the tie-breaker for concurrent signups, not the
		ExistsByEmail pre-check.

		The password hash passed in is stored verbatim; Create never re-hashes.

		Parameters:
		  - context: context.Context
		  - principal: *Principal (PasswordHash already computed)
		  - roleIDs: []string (role records to link, at least one)

		Returns:
		  - error: apperr.Conflict on duplicate email, or persistence failures
	*/
	Create(context context.Context, principal *Principal, roleIDs []string) error

	/*
		ListRoleNames returns the principal's current role names.

		Fetched on demand at token-issuance and login time rather than cached
		on the Principal entity, so out-of-band role changes are immediately
		visible. The result is sorted ascending by name for stable ordering.

		Parameters:
		  - context: context.Context
		  - principalID: string

		Returns:
		  - []string: Sorted role names
		  - error: Database retrieval failures
	*/
	ListRoleNames(context context.Context, principalID string) ([]string, error)

	/*
		UpdatePassword replaces only the principal's password hash.

		Parameters:
		  - context: context.Context
		  - principalID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, principalID, newHash string) error
}

// # Role Data Access

// RoleRepository defines the data access contract for role records.
type RoleRepository interface {

	/*
		GetOrCreate returns the role with the given name, creating it with the
		given description on first reference.

		Concurrent first-use races resolve to a single role record: the insert
		is an atomic upsert backed by the unique name constraint, and the
		losing writer re-reads instead of erroring.

		Parameters:
		  - context: context.Context
		  - name: string (case-sensitive, e.g. "USER")
		  - description: string

		Returns:
		  - *Role: The single role record for this name
		  - error: Persistence failures
	*/
	GetOrCreate(context context.Context, name, description string) (*Role, error)
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing single-use password
// reset tokens.
type ResetTokenRepository interface {

	/*
		Set stores a reset token associated with a principalID for a limited duration.

		Parameters:
		  - context: context.Context
		  - token: string
		  - principalID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, token string, principalID string, ttl time.Duration) error

	/*
		Get retrieves the principalID associated with a given reset token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: PrincipalID
		  - error: apperr.NotFound if absent or expired, or retrieval failures
	*/
	Get(context context.Context, token string) (string, error)

	/*
		Delete removes a reset token after successful use.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, token string) error
}
