// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

/*
Package identity implements the authentication core of the payroll platform.

It handles credential verification, password hashing, role resolution, and
signed-token construction for the signup and login flows.

Architecture:

  - Service: Orchestrates business logic (Signup, Login, Resolve).
  - Repository: Abstracted interfaces for Postgres (principals, roles) and
    Redis (reset tokens).
  - Security: bcrypt password storage and HMAC-signed JWTs via platform/sec.

Each operation is a single-pass logical transaction: either a TokenResponse is
returned or a typed error is signaled, with no partially created state left
visible on any failure path.
*/
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/minhanle/paydeck/internal/platform/apperr"
	"github.com/minhanle/paydeck/internal/platform/constants"
	"github.com/minhanle/paydeck/internal/platform/sec"
	"github.com/minhanle/paydeck/pkg/mailaddr"
	"github.com/minhanle/paydeck/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing signed bearer tokens.
type TokenProvider interface {
	// Issue creates a signed token string for the given subject and returns
	// it together with the expiry instant (issued-at + fixed TTL).
	Issue(subject string) (string, time.Time, error)

	// TTL returns the fixed lifetime applied to every issued token.
	TTL() time.Duration
}

// dummyPasswordHash is a valid bcrypt hash of an unused throwaway value.
//
// When login hits an unknown email, the service still burns one bcrypt
// comparison against this hash so that the unknown-email and wrong-password
// paths have near-identical latency profiles. Without it, response timing
// would reveal which emails are registered.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// unauthorizedMessage is the single message for every credential failure.
// Unknown email and wrong password must be indistinguishable to the caller.
const unauthorizedMessage = "Invalid email or password"

// Service implements the signup and login use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, signup, or
// login logic must be reviewed by the security team.
type Service struct {
	principalRepository  PrincipalRepository
	roleRepository       RoleRepository
	resetTokenRepository ResetTokenRepository
	tokenProvider        TokenProvider
}

// NewService constructs a new identity [Service] with necessary dependencies.
func NewService(
	principalRepo PrincipalRepository,
	roleRepo RoleRepository,
	resetRepo ResetTokenRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		principalRepository:  principalRepo,
		roleRepository:       roleRepo,
		resetTokenRepository: resetRepo,
		tokenProvider:        tokenProv,
	}
}

// newID generates a UUIDv7 for new identity records.
func newID() string {
	return uuid.New()
}

// # Signup Flow

// SignupInput holds the data required to enroll a new principal.
type SignupInput struct {
	Email       string
	Password    string
	PhoneNumber string
	CompanyName string
	Country     string
	State       string
}

/*
Signup validates, hashes, and persists a brand new principal, then issues a
bearer token for it.

Description: Normalizes the email, resolves the default role via get-or-create,
hashes the password, persists principal and role links as one transactional
unit, and returns a TokenResponse carrying exactly the roles assigned at
creation.

Parameters:
  - context: context.Context
  - input: SignupInput (plaintext password; never persisted or logged)

Returns:
  - *TokenResponse: Signed token, expiry, email, and assigned roles
  - error: apperr.Conflict (if the email is taken) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*TokenResponse, error) {

	// Storage and comparison are case-insensitive by construction.
	email := mailaddr.Normalize(input.Email)

	// Fast-path conflict check. The unique constraint inside Create remains
	// the source of truth for concurrent signups of the same email.
	exists, err := service.principalRepository.ExistsByEmail(context, email)
	if err != nil {
		return nil, fmt.Errorf("identity_service_exists_check_failed: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Materialize the default role on first reference.
	role, err := service.roleRepository.GetOrCreate(context, DefaultRoleName, DefaultRoleDescription)
	if err != nil {
		return nil, fmt.Errorf("identity_service_default_role_failed: %w", err)
	}

	// Prevent storing plain-text passwords. Default cost balances security
	// against CPU utilization during signup spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("identity_service_hash_failed: %w", err)
	}

	principal := &Principal{
		ID:           newID(),
		Email:        email,
		PasswordHash: hashedPassword,
		PhoneNumber:  input.PhoneNumber,
		CompanyName:  input.CompanyName,
		Country:      input.Country,
		State:        input.State,
	}

	// Principal row and role links land atomically; a concurrent duplicate
	// surfaces here as apperr.Conflict.
	if err := service.principalRepository.Create(context, principal, []string{role.ID}); err != nil {
		return nil, err
	}

	// The response carries the roles actually assigned at creation time,
	// which for signup is exactly the default role.
	return service.issueResponse(principal.Email, []string{role.Name})
}

// # Login Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates credentials and issues a bearer token.

Description: Looks up the principal by normalized email and verifies the
password with a constant-time bcrypt comparison. Unknown email and wrong
password produce the identical Unauthorized error, and the unknown-email path
burns a comparison against a dummy hash to keep the latency profiles aligned.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *TokenResponse: Signed token, expiry, email, and the principal's full
    current role list (fresh fetch, stable order)
  - error: apperr.Unauthorized or storage failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*TokenResponse, error) {
	email := mailaddr.Normalize(input.Email)

	principal, err := service.principalRepository.FindByEmail(context, email)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			// Same work as the known-email path, same error as the
			// wrong-password path. No enumeration oracle either way.
			sec.CheckPasswordHash(input.Password, dummyPasswordHash)
			return nil, apperr.Unauthorized(unauthorizedMessage)
		}
		// Backing-store failure: surface as a server-side error, not a 401.
		return nil, fmt.Errorf("identity_service_login_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(input.Password, principal.PasswordHash) {
		return nil, apperr.Unauthorized(unauthorizedMessage)
	}

	// Role names are fetched fresh so out-of-band grants and revocations are
	// reflected immediately.
	roleNames, err := service.principalRepository.ListRoleNames(context, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("identity_service_login_roles_failed: %w", err)
	}

	return service.issueResponse(principal.Email, roleNames)
}

// issueResponse signs a token for the subject and assembles the TokenResponse.
func (service *Service) issueResponse(email string, roleNames []string) (*TokenResponse, error) {
	token, _, err := service.tokenProvider.Issue(email)
	if err != nil {
		return nil, fmt.Errorf("identity_service_token_issue_failed: %w", err)
	}

	return &TokenResponse{
		Token:            token,
		ExpiresInSeconds: int64(service.tokenProvider.TTL().Seconds()),
		Email:            email,
		Roles:            roleNames,
	}, nil
}

// # Identity Resolution

/*
Resolve maps a verified token subject to a live identity.

Description: Called by the authorization middleware after signature and expiry
verification. The role list is read fresh from the store on every call; role
information embedded in historical tokens is never trusted.

Parameters:
  - context: context.Context
  - email: string (the verified token subject)

Returns:
  - *sec.Identity: Principal ID, email, and current sorted role names
  - error: apperr.NotFound if the principal no longer exists, or storage failures
*/
func (service *Service) Resolve(context context.Context, email string) (*sec.Identity, error) {
	principal, err := service.principalRepository.FindByEmail(context, mailaddr.Normalize(email))
	if err != nil {
		return nil, err
	}

	roleNames, err := service.principalRepository.ListRoleNames(context, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("identity_service_resolve_roles_failed: %w", err)
	}

	return &sec.Identity{
		PrincipalID: principal.ID,
		Email:       principal.Email,
		Roles:       roleNames,
	}, nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure single-use token and saves its digest to Redis
with a short TTL.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: The reset token (empty when the email is unknown)
  - error: Generation or storage errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	// NOTE: An unknown email returns success with no token so that this
	// endpoint cannot be used for account enumeration.
	principal, err := service.principalRepository.FindByEmail(context, mailaddr.Normalize(email))
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			return "", nil
		}
		return "", fmt.Errorf("identity_service_reset_lookup_failed: %w", err)
	}

	token, err := sec.GenerateSecureToken(constants.ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("identity_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokenRepository.Set(context, token, principal.ID, constants.ResetTokenTTL); err != nil {
		return "", fmt.Errorf("identity_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, hashes the new password, updates the store,
and deletes the used token.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: Token resolution or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	principalID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("identity_service_reset_password_hash_failed: %w", err)
	}

	if err := service.principalRepository.UpdatePassword(context, principalID, hashedPassword); err != nil {
		return fmt.Errorf("identity_service_reset_password_update_failed: %w", err)
	}

	// Best-effort cleanup; the TTL bounds the token's life regardless.
	_ = service.resetTokenRepository.Delete(context, token)

	return nil
}
