// Copyright (c) 2026 Paydeck. All rights reserved.
// Author: minh.an.le.dev@gmail.com

package organization

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minhanle/paydeck/internal/platform/middleware"
	requestutil "github.com/minhanle/paydeck/internal/platform/request"
	"github.com/minhanle/paydeck/internal/platform/respond"
	"github.com/minhanle/paydeck/internal/platform/validate"
	"github.com/minhanle/paydeck/pkg/pagination"
)

// Handler implements organization HTTP endpoints.
type Handler struct {
	organizationService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{organizationService: service}
}

// Routes returns a [chi.Router] configured with organization routes.
//
// # Endpoints
//   - POST /     : Registers an organization owned by the caller.
//   - GET  /     : Lists the caller's organizations (paginated).
//   - GET  /{id} : Returns one of the caller's organizations.
//
// Every route requires an authenticated principal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	return router
}

// # Request Payloads

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Country     string `json:"country"`
}

/*
Create registers a new organization for the authenticated principal.

POST /api/v1/organizations

Response:
  - 201: Organization: Created record
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: Unauthorized: Missing or invalid token
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		MaxLen(FieldDescription, input.Description, 2000)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	organization, err := handler.organizationService.Create(request.Context(), caller, CreateInput{
		Name:        input.Name,
		Description: input.Description,
		Country:     input.Country,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, organization)
}

/*
List returns the authenticated principal's organizations, paginated.

GET /api/v1/organizations?page=&limit=

Response:
  - 200: []Organization with pagination metadata
  - 401: Unauthorized: Missing or invalid token
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	organizations, total, err := handler.organizationService.List(
		request.Context(), caller, params.Limit, params.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, organizations, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Get returns a single organization owned by (or visible to) the caller.

GET /api/v1/organizations/{id}

Response:
  - 200: Organization
  - 404: NotFound: Unknown ID, or a record owned by a different tenant
  - 401: Unauthorized: Missing or invalid token
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID(FieldID, id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	organization, err := handler.organizationService.Get(request.Context(), caller, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, organization)
}
