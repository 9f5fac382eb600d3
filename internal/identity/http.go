// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

/*
HTTP delivery layer for the identity core.

The handler acts as a thin mediation layer between the web and the identity
service:
  - Protocol: Standard RESTful JSON interface.
  - Verification: Enforces strict input validation before passing to [Service].
  - Security: Maps every credential or token failure to the same 401 shape.

This layer is strictly responsible for transport concerns (status codes,
headers, JSON); all invariants live in the service and the stores.
*/
package identity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/minhanle/paydeck/internal/platform/request"
	"github.com/minhanle/paydeck/internal/platform/respond"
	"github.com/minhanle/paydeck/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	identityService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{identityService: service}
}

// Routes returns a [chi.Router] configured with identity-specific routes.
//
// # Endpoints
//   - POST /signup          : Creates a new principal and returns a token.
//   - POST /login           : Authenticates and returns a token.
//   - POST /forgot-password : Initiates the password reset flow.
//   - POST /reset-password  : Completes the password reset flow.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints, all of them: authentication is what they produce.
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	return router
}

// # Request Payloads

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	CompanyName string `json:"companyName"`
	Country     string `json:"country"`
	State       string `json:"state"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

/*
Signup handles the creation of a new principal.

POST /api/v1/auth/signup

Description: Validates input, delegates to the identity service, and returns
the issued token response.

Request:
  - Body: signupRequest (Email, Password, optional profile fields)

Response:
  - 201: TokenResponse: token, expiresInSeconds, email, roles=["USER"]
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: Conflict: Email already registered
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tokenResponse, err := handler.identityService.Signup(request.Context(), SignupInput{
		Email:       input.Email,
		Password:    input.Password,
		PhoneNumber: input.PhoneNumber,
		CompanyName: input.CompanyName,
		Country:     input.Country,
		State:       input.State,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, tokenResponse)
}

/*
Login authenticates a principal and issues a bearer token.

POST /api/v1/auth/login

Description: Verifies credentials and returns a signed token with the
principal's current role list.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: TokenResponse: token, expiresInSeconds, email, current roles
  - 401: Unauthorized: Invalid credentials (unknown email and wrong password
    are indistinguishable)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tokenResponse, err := handler.identityService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse)
}

/*
ForgotPassword initiates the password recovery flow.

POST /api/v1/auth/forgot-password

Description: Issues a reset token if the account exists. The response is the
same generic message either way.

Request:
  - Body: forgotPasswordRequest (Email)

Response:
  - 200: Success: Generic security message
  - 400: ErrInvalidJSON: Invalid email format
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// TODO: deliver the token through the notification service once the
	// email pipeline lands.
	_, err := handler.identityService.RequestPasswordReset(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "If this email is registered, a reset link has been sent.",
	})
}

/*
ResetPassword completes the password recovery flow.

POST /api/v1/auth/reset-password

Description: Validates the reset token and updates the principal's password.

Request:
  - Body: resetPasswordRequest (Token, Password)

Response:
  - 200: Success: Password updated
  - 400: ErrInvalidJSON: Bad token or weak password
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldToken, input.Token).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.identityService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password updated successfully",
	})
}
