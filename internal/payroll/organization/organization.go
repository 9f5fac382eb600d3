// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

/*
Package organization manages the payroll organization records owned by
authenticated principals.

It is the first downstream consumer of the identity core: every operation
receives the authenticated principal explicitly and scopes reads and writes to
it. Nothing in this package reads ambient security state.
*/
package organization

import "time"

// Organization represents a payroll organization record.
type Organization struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Country     string    `json:"country,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCountry     = "country"
	FieldID          = "id"
)
