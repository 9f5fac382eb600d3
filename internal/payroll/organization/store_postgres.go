// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package organization

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

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed organization store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new organization record into the payroll.organization table.

Parameters:
  - context: context.Context
  - organization: *Organization

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, organization *Organization) error {
	const query = `
		INSERT INTO payroll.organization (
			id, name, description, country, ownerid, createdat
		) VALUES ($1, $2, $3, $4, $5, $6)`

	if organization.CreatedAt.IsZero() {
		organization.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		organization.ID,
		organization.Name,
		organization.Description,
		organization.Country,
		organization.OwnerID,
		organization.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Organization")
	}

	return nil
}

/*
FindByID retrieves an organization record by its unique ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Organization: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Organization, error) {
	const query = `
		SELECT id, name, description, country, ownerid, createdat
		FROM payroll.organization
		WHERE id = $1`

	organization := &Organization{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&organization.ID,
		&organization.Name,
		&organization.Description,
		&organization.Country,
		&organization.OwnerID,
		&organization.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Organization")
		}
		return nil, fmt.Errorf("postgres_organization_repo_find_failed: %w", err)
	}

	return organization, nil
}

/*
ListByOwner returns a paginated list of organizations created by the principal.

Description: Uses COUNT(*) OVER() to fetch the total alongside the page in a
single round trip.

Parameters:
  - context: context.Context
  - ownerID: string
  - limit: int
  - offset: int

Returns:
  - []*Organization: Slice of matching organizations
  - int: Total record count for the owner
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Organization, int, error) {
	const query = `
		SELECT
			id, name, description, country, ownerid, createdat,
			COUNT(*) OVER() AS total
		FROM payroll.organization
		WHERE ownerid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Organization")
	}
	defer rows.Close()

	var organizations []*Organization
	var total int

	for rows.Next() {
		organization := &Organization{}
		if err := rows.Scan(
			&organization.ID,
			&organization.Name,
			&organization.Description,
			&organization.Country,
			&organization.OwnerID,
			&organization.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_organization_repo_scan_failed: %w", err)
		}
		organizations = append(organizations, organization)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_organization_repo_list_failed: %w", err)
	}

	return organizations, total, nil
}
