// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package identity

// # Role Provisioning

const (
	// DefaultRoleName is the role attached to every principal at signup.
	DefaultRoleName = "USER"

	// DefaultRoleDescription is the description persisted when the default
	// role is materialized on first reference.
	DefaultRoleDescription = "Normal application user"

	// AdminRoleName is the elevated role for payroll administrators.
	// Granted out-of-band; never assigned by the signup flow.
	AdminRoleName = "ADMIN"
)

// # Credential Constraints

const (
	// MinPasswordLength is the minimum accepted password length at signup.
	MinPasswordLength = 8
)
