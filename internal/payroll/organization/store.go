// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package organization

import "context"

// Repository defines the data access contract for organization records.
type Repository interface {

	/*
		Create persists a new organization record.

		Parameters:
		  - context: context.Context
		  - organization: *Organization

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, organization *Organization) error

	/*
		FindByID returns the organization with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Organization: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Organization, error)

	/*
		ListByOwner returns a paginated list of organizations created by the
		given principal.

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
	ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Organization, int, error)
}
