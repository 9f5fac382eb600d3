// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

/*
Package identity implements the credential-issuance and access-control core.

It defines the domain entities (Principal, Role) and the logic for signup,
login, and signed-token issuance that every other part of the payroll platform
builds on.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to who a user is and
what they are granted.
*/
package identity

import "time"

// # Domain Entities

// Principal represents a registered user of the payroll platform, keyed by
// normalized email.
type Principal struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	PhoneNumber  string    `json:"phone_number,omitempty"`
	CompanyName  string    `json:"company_name,omitempty"`
	Country      string    `json:"country,omitempty"`
	State        string    `json:"state,omitempty"`
	CreatedAt    time.Time `json:"created_at"` // Set once at creation, immutable.
}

// Role is a named permission grouping attached to principals.
//
// Roles are created lazily on first reference; a default "USER" role is
// materialized automatically if absent. Principals and roles form an explicit
// many-to-many relation through the identity.principalrole join table.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TokenResponse is the result of a successful signup or login.
//
// Roles carries exactly the role names in effect for the operation: the roles
// assigned at creation for signup, the principal's full current role list for
// login. Ordering is stable (sorted by name).
type TokenResponse struct {
	Token            string   `json:"token"`
	ExpiresInSeconds int64    `json:"expiresInSeconds"`
	Email            string   `json:"email"`
	Roles            []string `json:"roles"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the identity domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldPhoneNumber = "phoneNumber"
	FieldCompanyName = "companyName"
	FieldCountry     = "country"
	FieldState       = "state"
	FieldToken       = "token"
	FieldNewPassword = "new_password"
	FieldMessage     = "message"
)
