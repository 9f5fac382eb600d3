// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package organization

import (
	"context"
	"fmt"

	"github.com/minhanle/paydeck/internal/identity"
	"github.com/minhanle/paydeck/internal/platform/apperr"
	"github.com/minhanle/paydeck/internal/platform/sec"
	"github.com/minhanle/paydeck/pkg/uuid"
)

// Service implements organization use cases, scoped to the calling principal.
type Service struct {
	repository Repository
}

// NewService constructs a new organization [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the data required to register a new organization.
type CreateInput struct {
	Name        string
	Description string
	Country     string
}

/*
Create registers a new organization owned by the calling principal.

Parameters:
  - context: context.Context
  - caller: *sec.Identity (the authenticated principal, passed explicitly)
  - input: CreateInput

Returns:
  - *Organization: Created entity
  - error: Persistence failures
*/
func (service *Service) Create(context context.Context, caller *sec.Identity, input CreateInput) (*Organization, error) {
	organization := &Organization{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Country:     input.Country,
		OwnerID:     caller.PrincipalID,
	}

	if err := service.repository.Create(context, organization); err != nil {
		return nil, fmt.Errorf("organization_service_create_failed: %w", err)
	}

	return organization, nil
}

/*
Get returns a single organization, enforcing owner scoping.

Description: Owners see their own records; principals holding the ADMIN role
see everything. Everyone else gets NotFound rather than Forbidden, so the
existence of other tenants' records is not disclosed.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - id: string

Returns:
  - *Organization: Hydrated entity
  - error: apperr.NotFound or database retrieval failures
*/
func (service *Service) Get(context context.Context, caller *sec.Identity, id string) (*Organization, error) {
	organization, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if organization.OwnerID != caller.PrincipalID && !caller.HasRole(identity.AdminRoleName) {
		return nil, apperr.NotFound("Organization")
	}

	return organization, nil
}

/*
List returns the organizations created by the calling principal, paginated.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - limit: int
  - offset: int

Returns:
  - []*Organization: The caller's organizations, newest first
  - int: Total record count for the caller
  - error: Database retrieval failures
*/
func (service *Service) List(context context.Context, caller *sec.Identity, limit, offset int) ([]*Organization, int, error) {
	return service.repository.ListByOwner(context, caller.PrincipalID, limit, offset)
}
