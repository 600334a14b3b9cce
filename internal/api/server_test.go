// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navigant/backoffice/internal/admins/account"
	"github.com/navigant/backoffice/internal/admins/auth"
	"github.com/navigant/backoffice/internal/api"
	"github.com/navigant/backoffice/internal/careers/application"
	"github.com/navigant/backoffice/internal/content/casestudy"
	"github.com/navigant/backoffice/internal/crm/lead"
	"github.com/navigant/backoffice/internal/crm/review"
	"github.com/navigant/backoffice/internal/platform/async"
	"github.com/navigant/backoffice/internal/platform/config"
	"github.com/navigant/backoffice/internal/platform/constants"
	"github.com/navigant/backoffice/internal/platform/metrics"
	"github.com/navigant/backoffice/internal/platform/sec"
	"github.com/navigant/backoffice/internal/system/audit"
	"github.com/navigant/backoffice/internal/system/notification"
	"github.com/navigant/backoffice/pkg/pagination"
)

type app struct {
	handler       http.Handler
	auth          *auth.Service
	auditLog      *audit.MemoryRepository
	notifications *notification.MemoryRepository
	auditQueue    *async.Dispatcher
	notifyQueue   *async.Dispatcher
}

// drain flushes background writes so their effects can be asserted.
func (a *app) drain(t *testing.T) {
	t.Helper()
	require.NoError(t, a.auditQueue.Close(context.Background()))
	require.NoError(t, a.notifyQueue.Close(context.Background()))
}

func newApp(t *testing.T, ready error) *app {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		ServerPort:         "0",
		Environment:        "development",
		CORSAllowedOrigins: []string{"https://navigant.test"},
		ReviewBaseURL:      "https://navigant.test",
		NotifyEmail:        "inbox@navigant.test",
	}

	tokens, err := sec.NewTokenService([]byte("e2e-secret-e2e-secret-e2e-secret!"), "navigant-test", 24*time.Hour)
	require.NoError(t, err)
	m := metrics.New()

	a := &app{
		auditLog:      audit.NewMemoryRepository(),
		notifications: notification.NewMemoryRepository(),
		auditQueue:    async.NewDispatcher(async.Options{Name: "audit", QueueSize: 64, Workers: 1, OnDrop: m.AsyncDropped}, logger),
		notifyQueue:   async.NewDispatcher(async.Options{Name: "notification", QueueSize: 64, Workers: 1, OnDrop: m.AsyncDropped}, logger),
	}

	recorder := audit.NewRecorder(a.auditLog, a.auditQueue, logger)
	notifier := notification.NewService(a.notifications, notification.NewLogMailer(logger), a.notifyQueue, logger,
		notification.WithRecordedHook(m.NotificationRecorded))

	admins := auth.NewMemoryAdminRepository()
	a.auth = auth.NewService(admins, auth.NewMemoryAttemptLimiter(constants.LoginLockoutWindow), tokens, logger,
		auth.WithFailureHooks(m.LoginFailed, m.LoginLockedOut), auth.WithAuditSink(recorder))

	liveness, readiness := api.NewHealthHandlers([]api.Check{
		{Name: "postgres", Ping: func(context.Context) error { return ready }},
	}, logger)

	server := api.NewServer(ctx, cfg, logger, api.Identity{Verifier: tokens, Resolver: a.auth}, m, api.Handlers{
		Liveness:      liveness,
		Readiness:     readiness,
		Auth:          auth.NewHandler(a.auth, recorder, !cfg.IsDevelopment()),
		Accounts:      account.NewHandler(account.NewService(admins, logger), recorder),
		Reviews:       review.NewHandler(review.NewService(review.NewMemoryRepository(), notifier, cfg.NotifyEmail, logger), recorder, cfg.ReviewBaseURL),
		Leads:         lead.NewHandler(lead.NewService(lead.NewMemoryRepository(), notifier, cfg.NotifyEmail, logger), recorder),
		Applications:  application.NewHandler(application.NewService(application.NewMemoryRepository(), notifier, cfg.NotifyEmail, logger), recorder),
		CaseStudies:   casestudy.NewHandler(casestudy.NewService(casestudy.NewMemoryRepository(), logger), recorder),
		Notifications: notification.NewHandler(notifier),
		ActivityLog:   audit.NewHandler(recorder),
	})
	a.handler = server.Handler()
	return a
}

type client struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
	bearer  string
}

func (c *client) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope.Data
}

func login(t *testing.T, a *app, email, password string) *client {
	t.Helper()
	anon := &client{t: t, handler: a.handler}
	rec := anon.do(http.MethodPost, "/api/v1/auth/login", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return &client{t: t, handler: a.handler, cookie: cookie}
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

/*
TestReviewScenario runs the full review workflow end to end through the router.
*/
func TestReviewScenario(t *testing.T) {
	a := newApp(t, nil)
	root, err := a.auth.Bootstrap(context.Background(), "root@navigant.test", "change-me-now")
	require.NoError(t, err)

	admin := login(t, a, "root@navigant.test", "change-me-now")
	public := &client{t: t, handler: a.handler}

	// 1. Admin issues a link
	rec := admin.do(http.MethodPost, "/api/v1/admin/reviews",
		`{"clientName":"Client X","clientEmail":"client@x.com","clientCompany":"X Corp"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	link := decode[struct {
		ID         string `json:"id"`
		Token      string `json:"token"`
		ReviewLink string `json:"reviewLink"`
	}](t, rec)
	assert.Equal(t, "https://navigant.test/review/"+link.Token, link.ReviewLink)

	// 2. Client opens the form
	rec = public.do(http.MethodGet, "/api/v1/reviews/"+link.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	form := decode[map[string]any](t, rec)
	assert.Equal(t, "Client X", form["clientName"])
	assert.Equal(t, "X Corp", form["clientCompany"])
	assert.Nil(t, form["rating"])

	// 3. Client submits
	rec = public.do(http.MethodPost, "/api/v1/reviews/"+link.Token, `{"rating":5,"title":"Great","content":"Delivered on time and on budget."}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// 4. Admin sees it pending with a submission time
	rec = admin.do(http.MethodGet, "/api/v1/admin/reviews/"+link.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[review.Review](t, rec)
	assert.Equal(t, review.StatusPending, stored.Status)
	assert.NotNil(t, stored.SubmittedAt)

	// 5. Not yet public
	rec = public.do(http.MethodGet, "/api/v1/reviews", "")
	assert.Empty(t, decode[[]review.PublicReview](t, rec))

	// 6. Approve
	rec = admin.do(http.MethodPatch, "/api/v1/admin/reviews/"+link.ID+"/status", `{"status":"APPROVED","adminNotes":"Lovely"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, root.ID, decode[review.Review](t, rec).ReviewedBy)

	// The client can no longer change a moderated review
	rec = public.do(http.MethodPost, "/api/v1/reviews/"+link.Token, `{"rating":1,"title":"Edit","content":"Changed my mind"}`)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"code":"CONFLICT"`)

	// 7. Public list carries the rating
	rec = public.do(http.MethodGet, "/api/v1/reviews", "")
	approved := decode[[]review.PublicReview](t, rec)
	require.Len(t, approved, 1)
	assert.Equal(t, 5, *approved[0].Rating)
	assert.NotContains(t, rec.Body.String(), "client@x.com")

	// 8. Background writes landed
	a.drain(t)
	actions := []string{}
	for _, entry := range a.auditLog.Snapshot() {
		actions = append(actions, entry.Action)
	}
	assert.ElementsMatch(t, []string{
		audit.ActionCreate, audit.ActionLogin, audit.ActionCreateLink, audit.ActionSubmit, audit.ActionUpdateStatus,
	}, actions)

	items, total, err := a.notifications.List(context.Background(), pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "inbox@navigant.test", items[0].Recipient)
	assert.Equal(t, notification.StatusSent, items[0].Status)
}

/*
TestAccessControl covers session transport, role gates and revocation by disabling.
*/
func TestAccessControl(t *testing.T) {
	a := newApp(t, nil)
	root, err := a.auth.Bootstrap(context.Background(), "root@navigant.test", "change-me-now")
	require.NoError(t, err)
	super := login(t, a, "root@navigant.test", "change-me-now")
	anon := &client{t: t, handler: a.handler}

	// Unauthenticated vs forbidden
	assert.Equal(t, http.StatusUnauthorized, anon.do(http.MethodGet, "/api/v1/admin/reviews", "").Code)
	assert.Equal(t, http.StatusUnauthorized, anon.do(http.MethodGet, "/api/v1/admin/logs", "").Code)

	rec := super.do(http.MethodPost, "/api/v1/admins", `{"name":"Desk","email":"desk@navigant.test","password":"desk-password"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	desk := decode[auth.Admin](t, rec)

	deskClient := login(t, a, "desk@navigant.test", "desk-password")
	assert.Equal(t, http.StatusForbidden, deskClient.do(http.MethodGet, "/api/v1/admin/logs", "").Code)
	assert.Equal(t, http.StatusForbidden, deskClient.do(http.MethodDelete, "/api/v1/admins/"+root.ID, "").Code)
	assert.Equal(t, http.StatusOK, deskClient.do(http.MethodPatch, "/api/v1/admins/"+desk.ID, `{"name":"Front Desk"}`).Code)
	assert.Equal(t, http.StatusBadRequest, super.do(http.MethodDelete, "/api/v1/admins/"+root.ID, "").Code)
	assert.Equal(t, http.StatusOK, super.do(http.MethodGet, "/api/v1/admin/logs", "").Code)

	// Bearer fallback carries the same token
	bearer := &client{t: t, handler: a.handler, bearer: deskClient.cookie.Value}
	rec = bearer.do(http.MethodGet, "/api/v1/auth/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Front Desk", decode[auth.Admin](t, rec).Name)

	// Disabling an account revokes its live token
	rec = super.do(http.MethodPatch, "/api/v1/admins/"+desk.ID, `{"enabled":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, deskClient.do(http.MethodGet, "/api/v1/auth/me", "").Code)

	// Logout clears the cookie
	rec = super.do(http.MethodPost, "/api/v1/auth/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Negative(t, rec.Result().Cookies()[0].MaxAge)

	// Garbage tokens never authenticate
	forged := &client{t: t, handler: a.handler, bearer: "not.a.jwt"}
	assert.Equal(t, http.StatusUnauthorized, forged.do(http.MethodGet, "/api/v1/auth/me", "").Code)
}

func TestPublicLeadAndCaseStudy(t *testing.T) {
	a := newApp(t, nil)
	_, err := a.auth.Bootstrap(context.Background(), "root@navigant.test", "change-me-now")
	require.NoError(t, err)
	admin := login(t, a, "root@navigant.test", "change-me-now")
	anon := &client{t: t, handler: a.handler}

	rec := anon.do(http.MethodPost, "/api/v1/leads",
		`{"fullName":"Sam","email":"sam@corp.test","phone":"555","serviceType":"Cloud","numberOfSeats":3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = admin.do(http.MethodGet, "/api/v1/admin/leads", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	rec = admin.do(http.MethodPost, "/api/v1/admin/case-studies", `{"title":"Warehouse Automation"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	study := decode[casestudy.CaseStudy](t, rec)

	assert.Equal(t, http.StatusNotFound, anon.do(http.MethodGet, "/api/v1/case-studies/warehouse-automation", "").Code)
	require.Equal(t, http.StatusOK, admin.do(http.MethodPatch, "/api/v1/admin/case-studies/"+study.ID, `{"status":"PUBLISHED"}`).Code)
	assert.Equal(t, http.StatusOK, anon.do(http.MethodGet, "/api/v1/case-studies/warehouse-automation", "").Code)

	a.drain(t)
	rec = admin.do(http.MethodGet, "/api/v1/admin/notifications/unread-count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[map[string]int](t, rec)["count"])
}

func TestJobApplicationDesk(t *testing.T) {
	a := newApp(t, nil)
	_, err := a.auth.Bootstrap(context.Background(), "root@navigant.test", "change-me-now")
	require.NoError(t, err)
	admin := login(t, a, "root@navigant.test", "change-me-now")
	anon := &client{t: t, handler: a.handler}

	body := `{"jobPostId":"job-9","jobTitle":"Data Analyst","applicantName":"Jo","applicantEmail":"jo@mail.test","applicantPhone":"5550100999"}`
	rec := anon.do(http.MethodPost, "/api/v1/applications", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	submitted := decode[application.Application](t, rec)

	assert.Equal(t, http.StatusConflict, anon.do(http.MethodPost, "/api/v1/applications", body).Code)
	assert.Equal(t, http.StatusUnauthorized, anon.do(http.MethodGet, "/api/v1/admin/applications", "").Code)

	rec = admin.do(http.MethodPatch, "/api/v1/admin/applications/"+submitted.ID+"/status", `{"status":"HIRED"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, application.StatusHired, decode[application.Application](t, rec).Status)

	require.Equal(t, http.StatusNoContent, admin.do(http.MethodDelete, "/api/v1/admin/applications/"+submitted.ID, "").Code)

	a.drain(t)
	var statusChanges []audit.Entry
	for _, entry := range a.auditLog.Snapshot() {
		if entry.EntityType == audit.EntityApplication && entry.Action == audit.ActionUpdateStatus {
			statusChanges = append(statusChanges, entry)
		}
	}
	require.Len(t, statusChanges, 1)
	assert.Equal(t, submitted.ID, statusChanges[0].EntityID)
	assert.NotEqual(t, audit.PublicActor, statusChanges[0].AdminID)
}

func TestInfrastructureEndpoints(t *testing.T) {
	healthy := newApp(t, nil)
	anon := &client{t: t, handler: healthy.handler}

	assert.Equal(t, http.StatusOK, anon.do(http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, anon.do(http.MethodGet, "/ready", "").Code)

	rec := anon.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/ready",status="200"}`)

	// CORS preflight for an allowed origin
	rec = anon.do(http.MethodOptions, "/api/v1/auth/login", "",
		"Origin", "https://navigant.test", "Access-Control-Request-Method", "POST")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://navigant.test", rec.Header().Get("Access-Control-Allow-Origin"))

	degraded := newApp(t, errors.New("connection refused"))
	rec = (&client{t: t, handler: degraded.handler}).do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"degraded"`)
}
