// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/internal/platform/middleware"
	requestutil "github.com/navigant/backoffice/internal/platform/request"
	"github.com/navigant/backoffice/internal/platform/respond"
	"github.com/navigant/backoffice/internal/platform/sec"
	"github.com/navigant/backoffice/internal/system/audit"
	"github.com/navigant/backoffice/pkg/pagination"
)

// Handler implements admin management endpoints.
type Handler struct {
	accountService *Service
	audit          audit.Sink
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, sink audit.Sink) *Handler {
	return &Handler{accountService: service, audit: sink}
}

// Routes returns a [chi.Router] mounted under /api/v1/admins.
//
// # Endpoints
//   - POST   /     : Create admin (SUPER_ADMIN)
//   - GET    /     : List admins
//   - GET    /{id} : Get admin
//   - PATCH  /{id} : Update admin (self or SUPER_ADMIN)
//   - DELETE /{id} : Delete admin (SUPER_ADMIN, never self)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleSuperAdmin))
		r.Post("/", handler.create)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Enabled  *bool   `json:"enabled"`
}

/*
Create adds a new admin account.

POST /api/v1/admins

Response:
  - 201: auth.Admin
  - 400: Validation failure
  - 403: Caller is not SUPER_ADMIN
  - 409: Email already registered
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin, err := handler.accountService.Create(request.Context(), CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionCreate, audit.EntityAdmin, admin.ID,
		fmt.Sprintf("Created admin %s (%s)", admin.Email, admin.Role)))
	respond.Created(writer, admin)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	admins, total, err := handler.accountService.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, admins, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	admin, err := handler.accountService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, admin)
}

/*
Update applies a partial change to an admin.

PATCH /api/v1/admins/{id}

Response:
  - 200: auth.Admin
  - 403: Not self and not SUPER_ADMIN, or a non-super admin touching role/enabled
  - 404: Unknown admin
  - 409: Email already registered
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.Param(request, "id")
	isSuper := caller.Has(sec.RoleSuperAdmin)
	if !caller.Is(id) && !isSuper {
		respond.Error(writer, request, apperr.Forbidden("You can only update your own account"))
		return
	}

	var body updateRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateInput(body)
	if input.touchesPrivileges() && !isSuper {
		respond.Error(writer, request, apperr.Forbidden("Only a super admin can change roles or account status"))
		return
	}

	admin, err := handler.accountService.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionUpdate, audit.EntityAdmin, admin.ID,
		"Updated admin "+admin.Email))
	respond.OK(writer, admin)
}

/*
Delete removes an admin permanently.

DELETE /api/v1/admins/{id}

Response:
  - 204: Deleted
  - 400: Attempted self-deletion
  - 404: Unknown admin
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.Param(request, "id")
	if caller.Is(id) {
		respond.Error(writer, request, apperr.ValidationError("You cannot delete your own account"))
		return
	}

	if err := handler.accountService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionDelete, audit.EntityAdmin, id, "Deleted admin"))
	respond.NoContent(writer)
}
