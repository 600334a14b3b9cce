// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

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
)

// # Definitions & Constructors

// Handler implements the session endpoints.
type Handler struct {
	authService  *Service
	audit        audit.Sink
	secureCookie bool
}

// NewHandler constructs a new [Handler].
//
// secureCookie should be false only for plain-HTTP local development.
func NewHandler(service *Service, sink audit.Sink, secureCookie bool) *Handler {
	return &Handler{authService: service, audit: sink, secureCookie: secureCookie}
}

// Routes returns a [chi.Router] mounted under /api/v1/auth.
//
// # Endpoints
//   - POST /login  : Verifies credentials and sets the session cookie.
//   - POST /logout : Clears the session cookie.
//   - GET  /me     : Returns the authenticated admin.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    string       `json:"id"`
	Email string       `json:"email"`
	Role  sec.UserRole `json:"role"`
	Name  string       `json:"name"`
	Token string       `json:"token"`
}

/*
Login authenticates an admin and establishes a session.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: loginResponse, plus the HttpOnly session cookie
  - 400: Missing fields
  - 401: Invalid credentials (unknown email, wrong password, disabled)
  - 429: Too many failed attempts for this email
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    session.Token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(handler.authService.TokenTTL().Seconds()),
		Secure:   handler.secureCookie,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	// The gate ran before login so the request has no principal yet.
	entry := audit.FromRequest(request, audit.ActionLogin, audit.EntityAdmin, session.Admin.ID, "Admin logged in")
	entry.AdminID = session.Admin.ID
	handler.audit.Record(entry)

	respond.OK(writer, loginResponse{
		ID:    session.Admin.ID,
		Email: session.Admin.Email,
		Role:  session.Admin.Role,
		Name:  session.Admin.Name,
		Token: session.Token,
	})
}

/*
Logout clears the session cookie.

POST /api/v1/auth/logout

Tokens are stateless; the client simply loses its copy.

Response:
  - 200: Confirmation message
*/
func (handler *Handler) logout(writer http.ResponseWriter, _ *http.Request) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   handler.secureCookie,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.OK(writer, map[string]string{constants.FieldMessage: "Logged out"})
}

/*
Me returns the profile of the authenticated admin.

GET /api/v1/auth/me

Response:
  - 200: Admin
  - 401: Not authenticated
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin, err := handler.authService.Me(request.Context(), principal.AdminID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, admin)
}
