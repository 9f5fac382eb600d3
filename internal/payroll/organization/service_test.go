// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package organization_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhanle/paydeck/internal/payroll/organization"
	"github.com/minhanle/paydeck/internal/platform/apperr"
	"github.com/minhanle/paydeck/internal/platform/sec"
)

// memoryRepository is an in-memory Repository with newest-first listing.
type memoryRepository struct {
	mu      sync.Mutex
	records []*organization.Organization
}

func (r *memoryRepository) Create(_ context.Context, org *organization.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *org
	// Prepend: ListByOwner returns newest first.
	r.records = append([]*organization.Organization{&clone}, r.records...)
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*organization.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, org := range r.records {
		if org.ID == id {
			clone := *org
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Organization")
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*organization.Organization, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var owned []*organization.Organization
	for _, org := range r.records {
		if org.OwnerID == ownerID {
			clone := *org
			owned = append(owned, &clone)
		}
	}

	total := len(owned)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}

func caller(principalID string, roles ...string) *sec.Identity {
	return &sec.Identity{PrincipalID: principalID, Email: principalID + "@test.com", Roles: roles}
}

/*
TestService_Create stamps the caller as owner and generates the ID.
*/
func TestService_Create(t *testing.T) {
	service := organization.NewService(&memoryRepository{})

	created, err := service.Create(context.Background(), caller("p-1", "USER"), organization.CreateInput{
		Name:    "Acme Payroll",
		Country: "DE",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "p-1", created.OwnerID)
	assert.Equal(t, "Acme Payroll", created.Name)
}

/*
TestService_Get_OwnerScoping verifies that non-owners get NotFound while the
owner and ADMIN principals can read the record.
*/
func TestService_Get_OwnerScoping(t *testing.T) {
	service := organization.NewService(&memoryRepository{})
	ctx := context.Background()

	created, err := service.Create(ctx, caller("owner-1", "USER"), organization.CreateInput{Name: "Acme"})
	require.NoError(t, err)

	// 1. Owner reads their own record
	got, err := service.Get(ctx, caller("owner-1", "USER"), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// 2. A stranger gets NotFound, not Forbidden
	_, err = service.Get(ctx, caller("stranger", "USER"), created.ID)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)

	// 3. ADMIN reads across tenants
	got, err = service.Get(ctx, caller("auditor", "ADMIN"), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

/*
TestService_List_ScopedAndPaginated lists only the caller's records and
honors limit/offset.
*/
func TestService_List_ScopedAndPaginated(t *testing.T) {
	service := organization.NewService(&memoryRepository{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := service.Create(ctx, caller("p-1", "USER"), organization.CreateInput{Name: "Mine"})
		require.NoError(t, err)
	}
	_, err := service.Create(ctx, caller("p-2", "USER"), organization.CreateInput{Name: "Theirs"})
	require.NoError(t, err)

	// 1. Scoped to the caller
	records, total, err := service.List(ctx, caller("p-1", "USER"), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, records, 3)
	for _, org := range records {
		assert.Equal(t, "p-1", org.OwnerID)
	}

	// 2. Pagination window
	records, total, err = service.List(ctx, caller("p-1", "USER"), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, records, 1)
}
