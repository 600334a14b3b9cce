// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package application

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

// Handler serves the public application form and the admin hiring desk.
type Handler struct {
	applicationService *Service
	audit              audit.Sink
}

// NewHandler constructs a new [Handler]; sink receives audit entries.
func NewHandler(service *Service, sink audit.Sink) *Handler {
	return &Handler{applicationService: service, audit: sink}
}

// PublicRoutes mounts under /api/v1/applications.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.submit)
	return router
}

// AdminRoutes mounts under /api/v1/admin/applications.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}/status", handler.updateStatus)
	router.Delete("/{id}", handler.delete)
	return router
}

type submitRequest struct {
	JobPostID      string `json:"jobPostId"`
	JobTitle       string `json:"jobTitle"`
	ApplicantName  string `json:"applicantName"`
	ApplicantEmail string `json:"applicantEmail"`
	ApplicantPhone string `json:"applicantPhone"`
	ResumeURL      string `json:"resumeUrl"`
	CoverLetter    string `json:"coverLetter"`
}

type statusRequest struct {
	Status string `json:"status"`
}

/*
Submit records a candidate's application.

POST /api/v1/applications

Response:
  - 201: Application
  - 400: Validation failure
  - 409: Email already applied to this job
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	application, err := handler.applicationService.Submit(request.Context(), SubmitInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry := audit.FromRequest(request, audit.ActionCreate, audit.EntityApplication, application.ID,
		"New Job Application: "+application.ApplicantName)
	entry.AdminID = audit.PublicActor
	handler.audit.Record(entry)

	respond.Created(writer, application)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{JobPostID: query.Get(FieldJobPostID)}
	if raw := query.Get(constants.FieldStatus); raw != "" {
		status, ok := ParseStatus(raw)
		if !ok {
			respond.Error(writer, request, validate.FieldError(FieldStatus, "Unknown application status"))
			return
		}
		filter.Status = status
	}

	applications, total, err := handler.applicationService.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, applications, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	application, err := handler.applicationService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, application)
}

/*
UpdateStatus moves an application through the hiring pipeline.

PATCH /api/v1/admin/applications/{id}/status?status=SHORTLISTED

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

	application, err := handler.applicationService.UpdateStatus(request.Context(), requestutil.Param(request, "id"), status, caller.AdminID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionUpdateStatus, audit.EntityApplication, application.ID,
		"Application status changed to "+string(application.Status)))
	respond.OK(writer, application)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	if err := handler.applicationService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionDelete, audit.EntityApplication, id, "Deleted job application"))
	respond.NoContent(writer)
}
