// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package casestudy

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/navigant/backoffice/internal/platform/middleware"
	requestutil "github.com/navigant/backoffice/internal/platform/request"
	"github.com/navigant/backoffice/internal/platform/respond"
	"github.com/navigant/backoffice/internal/platform/sec"
	"github.com/navigant/backoffice/internal/system/audit"
	"github.com/navigant/backoffice/pkg/pagination"
)

// Handler serves case studies to the public site and the CMS.
type Handler struct {
	caseStudyService *Service
	audit            audit.Sink
}

// NewHandler constructs a new [Handler]; sink receives audit entries.
func NewHandler(service *Service, sink audit.Sink) *Handler {
	return &Handler{caseStudyService: service, audit: sink}
}

// AdminRoutes mounts under /api/v1/admin/case-studies.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
	return router
}

// PublicRoutes mounts under /api/v1/case-studies.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listPublished)
	router.Get("/{slug}", handler.getPublished)
	return router
}

type createRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	FullContent  string `json:"fullContent"`
	Image        string `json:"image"`
	Category     string `json:"category"`
	Alt          string `json:"alt"`
	DisplayOrder int    `json:"displayOrder"`
}

type updateRequest struct {
	Slug         *string    `json:"slug"`
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	FullContent  *string    `json:"fullContent"`
	Image        *string    `json:"image"`
	Category     *string    `json:"category"`
	Alt          *string    `json:"alt"`
	Status       *string    `json:"status"`
	DisplayOrder *int       `json:"displayOrder"`
	PublishDate  *time.Time `json:"publishDate"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	study, err := handler.caseStudyService.Create(request.Context(), CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionCreate, audit.EntityCaseStudy, study.ID,
		"Created case study "+study.Slug))
	respond.Created(writer, study)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	studies, total, err := handler.caseStudyService.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, studies, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	study, err := handler.caseStudyService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, study)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	study, err := handler.caseStudyService.Update(request.Context(), requestutil.Param(request, "id"), UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionUpdate, audit.EntityCaseStudy, study.ID,
		"Updated case study "+study.Slug))
	respond.OK(writer, study)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	if err := handler.caseStudyService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionDelete, audit.EntityCaseStudy, id, "Deleted case study"))
	respond.NoContent(writer)
}

func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	studies, err := handler.caseStudyService.ListPublished(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, studies)
}

func (handler *Handler) getPublished(writer http.ResponseWriter, request *http.Request) {
	study, err := handler.caseStudyService.GetPublished(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, study)
}
