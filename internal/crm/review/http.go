// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"fmt"
	"net/http"
	"strings"

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

// Handler implements both the admin and the public review endpoints.
type Handler struct {
	reviewService  *Service
	audit          audit.Sink
	defaultBaseURL string
}

// NewHandler constructs a new [Handler]. defaultBaseURL is used when the
// request carries no X-Base-Url header.
func NewHandler(service *Service, sink audit.Sink, defaultBaseURL string) *Handler {
	return &Handler{reviewService: service, audit: sink, defaultBaseURL: defaultBaseURL}
}

// AdminRoutes returns the router mounted under /api/v1/admin/reviews.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Post("/", handler.createLink)
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}/status", handler.updateStatus)
	router.Delete("/{id}", handler.delete)
	return router
}

// PublicRoutes returns the router mounted under /api/v1/reviews.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listApproved)
	router.Get("/{token}", handler.getByToken)
	router.Post("/{token}", handler.submit)
	return router
}

// # Request Payloads

type createLinkRequest struct {
	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientCompany string `json:"clientCompany"`
}

type submitRequest struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type statusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"adminNotes"`
}

/*
CreateLink issues a review link for a client.

POST /api/v1/admin/reviews

Response:
  - 201: CreatedLink (review + reviewLink)
  - 400: Validation failure
*/
func (handler *Handler) createLink(writer http.ResponseWriter, request *http.Request) {
	var input createLinkRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	baseURL := strings.TrimSpace(request.Header.Get(constants.HeaderXBaseURL))
	if baseURL == "" {
		baseURL = handler.defaultBaseURL
	}

	link, err := handler.reviewService.CreateLink(request.Context(), CreateLinkInput(input), baseURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionCreateLink, audit.EntityReview, link.ID,
		"Review link for "+link.ClientName))
	respond.Created(writer, link)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	filter := Filter{}
	if raw := request.URL.Query().Get(constants.FieldStatus); raw != "" {
		status, ok := ParseStatus(strings.ToUpper(raw))
		if !ok {
			respond.Error(writer, request, validate.FieldError(FieldStatus, "Unknown review status"))
			return
		}
		filter.Status = status
	}

	reviews, total, err := handler.reviewService.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, reviews, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	review, err := handler.reviewService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review)
}

/*
UpdateStatus approves, rejects or reopens a review.

PATCH /api/v1/admin/reviews/{id}/status

Response:
  - 200: Review
  - 400: Unknown status
  - 404: Unknown review
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input statusRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.UpdateStatus(request.Context(), requestutil.Param(request, "id"), StatusInput(input), caller.AdminID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionUpdateStatus, audit.EntityReview, review.ID,
		fmt.Sprintf("Review status changed to %s", review.Status)))
	respond.OK(writer, review)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	if err := handler.reviewService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.audit.Record(audit.FromRequest(request, audit.ActionDelete, audit.EntityReview, id, "Deleted review"))
	respond.NoContent(writer)
}

// # Public Endpoints

func (handler *Handler) listApproved(writer http.ResponseWriter, request *http.Request) {
	reviews, err := handler.reviewService.ListApproved(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviews)
}

/*
GetByToken returns the prefill data for the public form.

GET /api/v1/reviews/{token}

Response:
  - 200: ReviewForm
  - 404: Unknown token
*/
func (handler *Handler) getByToken(writer http.ResponseWriter, request *http.Request) {
	review, err := handler.reviewService.GetByToken(request.Context(), requestutil.Param(request, "token"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, review.Form())
}

/*
Submit records the client's rating, title and content.

POST /api/v1/reviews/{token}

Response:
  - 201: ReviewForm
  - 400: Validation failure
  - 404: Unknown token
  - 409: Already moderated
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Submit(request.Context(), requestutil.Param(request, "token"), SubmitInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry := audit.FromRequest(request, audit.ActionSubmit, audit.EntityReview, review.ID,
		fmt.Sprintf("Review submitted by %s (%d/5)", review.ClientName, *review.Rating))
	entry.AdminID = audit.PublicActor
	handler.audit.Record(entry)

	respond.Created(writer, review.Form())
}
