// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lead

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/navigant/backoffice/internal/platform/constants"
	"github.com/navigant/backoffice/internal/platform/middleware"
	requestutil "github.com/navigant/backoffice/internal/platform/request"
	"github.com/navigant/backoffice/internal/platform/respond"
	"github.com/navigant/backoffice/internal/platform/sec"
	"github.com/navigant/backoffice/internal/platform/validate"
	"github.com/navigant/backoffice/internal/system/audit"
	"github.com/navigant/backoffice/pkg/pagination"
)

// Handler serves the public contact form and the admin lead desk.
type Handler struct {
	leadService *Service
	audit       audit.Sink
}

// NewHandler constructs a new [Handler]; sink receives audit entries.
func NewHandler(service *Service, sink audit.Sink) *Handler {
	return &Handler{leadService: service, audit: sink}
}

// PublicRoutes mounts under /api/v1/leads.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.submit)
	return router
}

// AdminRoutes mounts under /api/v1/admin/leads.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}/status", handler.updateStatus)
	router.Patch("/{id}/comments", handler.updateComments)
	return router
}

type submitRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	ServiceType   string `json:"serviceType"`
	NumberOfSeats int    `json:"numberOfSeats"`
	Remarks       string `json:"remarks"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type commentsRequest struct {
	Comments string `json:"comments"`
}

/*
Submit records a contact-form enquiry.

POST /api/v1/leads

Response:
  - 201: Lead
  - 400: Validation failure
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lead, err := handler.leadService.Submit(request.Context(), SubmitInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry := audit.FromRequest(request, audit.ActionCreate, audit.EntityLead, lead.ID, "New Lead: "+lead.ServiceType)
	entry.AdminID = audit.PublicActor
	handler.audit.Record(entry)

	respond.Created(writer, lead)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	filter := Filter{}
	if raw := request.URL.Query().Get(constants.FieldStatus); raw != "" {
		status, ok := ParseStatus(raw)
		if !ok {
			respond.Error(writer, request, validate.FieldError(FieldStatus, "Unknown lead status"))
			return
		}
		filter.Status = status
	}

	leads, total, err := handler.leadService.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, leads, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	lead, err := handler.leadService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lead)
}

/*
UpdateStatus moves a lead through the pipeline.

PATCH /api/v1/admin/leads/{id}/status?status=CONTACTED

The status may also be sent as a JSON body {"status": "..."}; the query
parameter wins when both are present.
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status := request.URL.Query().Get(constants.FieldStatus)
	if status == "" && request.ContentLength != 0 {
		var body statusRequest
		if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
			respond.Error(writer, request, err)
			return
		}
		status = body.Status
	}

	lead, err := handler.leadService.UpdateStatus(request.Context(), requestutil.Param(request, "id"), status, caller.AdminID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionUpdateStatus, audit.EntityLead, lead.ID,
		"Lead status changed to "+string(lead.Status)))
	respond.OK(writer, lead)
}

func (handler *Handler) updateComments(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body commentsRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lead, err := handler.leadService.UpdateComments(request.Context(), requestutil.Param(request, "id"), body.Comments, caller.AdminID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionUpdateComments, audit.EntityLead, lead.ID, "Lead comments updated"))
	respond.OK(writer, lead)
}
