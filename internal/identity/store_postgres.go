// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

// PostgreSQL implementations of the identity repositories.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] types so that no storage implementation
// detail leaks past this file.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhanle/paydeck/internal/platform/apperr"
	"github.com/minhanle/paydeck/internal/platform/dberr"
)

// # Principal Repository

// PostgresPrincipalRepository implements [PrincipalRepository] using pgx.
type PostgresPrincipalRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipalRepository creates a new PostgreSQL implementation of the PrincipalRepository.
func NewPrincipalRepository(pool *pgxpool.Pool) *PostgresPrincipalRepository {
	return &PostgresPrincipalRepository{pool: pool}
}

/*
ExistsByEmail reports whether a principal row exists for the given email.

Parameters:
  - context: context.Context
  - email: string (normalized)

Returns:
  - bool: Existence flag
  - error: Database retrieval failures
*/
func (repository *PostgresPrincipalRepository) ExistsByEmail(context context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM identity.principal WHERE email = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_principal_repo_exists_failed: %w", err)
	}

	return exists, nil
}

/*
FindByEmail retrieves a principal record by its unique normalized email.

Parameters:
  - context: context.Context
  - email: string (normalized)

Returns:
  - *Principal: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresPrincipalRepository) FindByEmail(context context.Context, email string) (*Principal, error) {
	const query = `
		SELECT id, email, passwordhash, phonenumber, companyname, country, state, createdat
		FROM identity.principal
		WHERE email = $1`

	return repository.scanOne(context, query, email)
}

/*
FindByID retrieves a principal record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Principal: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresPrincipalRepository) FindByID(context context.Context, id string) (*Principal, error) {
	const query = `
		SELECT id, email, passwordhash, phonenumber, companyname, country, state, createdat
		FROM identity.principal
		WHERE id = $1`

	return repository.scanOne(context, query, id)
}

// scanOne runs a single-row principal query and hydrates the entity.
func (repository *PostgresPrincipalRepository) scanOne(context context.Context, query string, arg any) (*Principal, error) {
	principal := &Principal{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&principal.ID,
		&principal.Email,
		&principal.PasswordHash,
		&principal.PhoneNumber,
		&principal.CompanyName,
		&principal.Country,
		&principal.State,
		&principal.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Principal")
		}
		return nil, fmt.Errorf("postgres_principal_repo_find_failed: %w", err)
	}

	return principal, nil
}

/*
Create persists a new principal and its role links in one transaction.

Description: Inserts the identity.principal row and one identity.principalrole
row per role, then commits. A duplicate email aborts the transaction with a
unique violation that is surfaced as apperr.Conflict; no partial state remains
visible on any failure path.

Parameters:
  - context: context.Context
  - principal: *Principal (PasswordHash already computed)
  - roleIDs: []string

Returns:
  - error: apperr.Conflict on duplicate email, or persistence failures
*/
func (repository *PostgresPrincipalRepository) Create(context context.Context, principal *Principal, roleIDs []string) error {
	const insertPrincipal = `
		INSERT INTO identity.principal (
			id, email, passwordhash, phonenumber, companyname, country, state, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	const insertRoleLink = `
		INSERT INTO identity.principalrole (principalid, roleid) VALUES ($1, $2)`

	if principal.CreatedAt.IsZero() {
		principal.CreatedAt = time.Now()
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_principal_repo_begin_failed: %w", err)
	}
	// Rollback is a no-op after a successful commit.
	defer func() { _ = transaction.Rollback(context) }()

	_, err = transaction.Exec(context, insertPrincipal,
		principal.ID,
		principal.Email,
		principal.PasswordHash,
		principal.PhoneNumber,
		principal.CompanyName,
		principal.Country,
		principal.State,
		principal.CreatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Email is already registered")
		}
		return fmt.Errorf("postgres_principal_repo_create_failed: %w", err)
	}

	for _, roleID := range roleIDs {
		if _, err := transaction.Exec(context, insertRoleLink, principal.ID, roleID); err != nil {
			return fmt.Errorf("postgres_principal_repo_link_role_failed: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_principal_repo_commit_failed: %w", err)
	}

	return nil
}

/*
ListRoleNames returns the principal's current role names, sorted ascending.

Description: On-demand join-table fetch. Role grants are never cached on the
Principal entity, so changes made out-of-band are visible on the next call.

Parameters:
  - context: context.Context
  - principalID: string

Returns:
  - []string: Sorted role names
  - error: Database retrieval failures
*/
func (repository *PostgresPrincipalRepository) ListRoleNames(context context.Context, principalID string) ([]string, error) {
	const query = `
		SELECT r.name
		FROM identity.role r
		JOIN identity.principalrole pr ON pr.roleid = r.id
		WHERE pr.principalid = $1
		ORDER BY r.name ASC`

	rows, err := repository.pool.Query(context, query, principalID)
	if err != nil {
		return nil, fmt.Errorf("postgres_principal_repo_list_roles_failed: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("postgres_principal_repo_scan_role_failed: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_principal_repo_list_roles_failed: %w", err)
	}

	return names, nil
}

/*
UpdatePassword updates only the password hash for a specific principal.

Parameters:
  - context: context.Context
  - principalID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresPrincipalRepository) UpdatePassword(context context.Context, principalID, newHash string) error {
	const query = `UPDATE identity.principal SET passwordhash = $2 WHERE id = $1`

	_, err := repository.pool.Exec(context, query, principalID, newHash)
	if err != nil {
		return fmt.Errorf("postgres_principal_repo_update_password_failed: %w", err)
	}

	return nil
}

// # Role Repository

// PostgresRoleRepository implements [RoleRepository] using pgx.
type PostgresRoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a new PostgreSQL implementation of the RoleRepository.
func NewRoleRepository(pool *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{pool: pool}
}

/*
GetOrCreate returns the role with the given name, materializing it on first use.

Description: Atomic upsert (INSERT ... ON CONFLICT (name) DO NOTHING) followed
by a re-read. Under a concurrent first-use race the unique constraint on name
is the tie-breaker and both callers end up reading the same single row.

Parameters:
  - context: context.Context
  - name: string (case-sensitive)
  - description: string

Returns:
  - *Role: The single role record for this name
  - error: Persistence failures
*/
func (repository *PostgresRoleRepository) GetOrCreate(context context.Context, name, description string) (*Role, error) {
	const upsert = `
		INSERT INTO identity.role (id, name, description, createdat)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING`

	const query = `
		SELECT id, name, description, createdat
		FROM identity.role
		WHERE name = $1`

	// The generated ID is only used if this caller wins the insert.
	candidateID := newID()
	if _, err := repository.pool.Exec(context, upsert, candidateID, name, description, time.Now()); err != nil {
		return nil, fmt.Errorf("postgres_role_repo_upsert_failed: %w", err)
	}

	role := &Role{}
	err := repository.pool.QueryRow(context, query, name).Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Role")
	}

	return role, nil
}
