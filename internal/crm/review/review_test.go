// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navigant/backoffice/internal/crm/review"
	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/internal/platform/ctxutil"
	"github.com/navigant/backoffice/internal/platform/sec"
	"github.com/navigant/backoffice/internal/system/audit"
	"github.com/navigant/backoffice/pkg/pagination"
)

type sentMessage struct {
	to, subject string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (n *recordingNotifier) Notify(to, subject, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{to: to, subject: subject})
}

type recordingSink struct {
	entries []audit.Entry
}

func (s *recordingSink) Record(entry audit.Entry) {
	s.entries = append(s.entries, entry)
}

func newService(t *testing.T) (*review.Service, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return review.NewService(review.NewMemoryRepository(), notifier, "inbox@navigant.test", logger), notifier
}

func createLink(t *testing.T, service *review.Service) *review.CreatedLink {
	t.Helper()
	link, err := service.CreateLink(context.Background(), review.CreateLinkInput{
		ClientName:    "Dana Client",
		ClientEmail:   "client@x.com",
		ClientCompany: "Acme",
	}, "https://navigant.test/")
	require.NoError(t, err)
	return link
}

func TestService_CreateLink(t *testing.T) {
	service, _ := newService(t)

	link := createLink(t, service)
	assert.Equal(t, review.StatusPending, link.Status)
	assert.Len(t, link.Token, 43)
	assert.Equal(t, "https://navigant.test/review/"+link.Token, link.ReviewLink)
	assert.Nil(t, link.Rating)
	assert.Nil(t, link.SubmittedAt)

	invalid := []review.CreateLinkInput{
		{ClientName: "", ClientEmail: "client@x.com"},
		{ClientName: "Dana", ClientEmail: "nope"},
		{ClientName: strings.Repeat("d", 101), ClientEmail: "client@x.com"},
	}
	for _, input := range invalid {
		_, err := service.CreateLink(context.Background(), input, "https://navigant.test")
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "%+v", input)
	}
}

func TestBuildLink(t *testing.T) {
	assert.Equal(t, "https://a.test/review/T1", review.BuildLink("https://a.test", "T1"))
	assert.Equal(t, "https://a.test/review/T1", review.BuildLink("https://a.test///", "T1"))
}

func TestMemoryRepository_TokenUnique(t *testing.T) {
	repo := review.NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &review.Review{ID: "r1", Token: "same"}))
	err := repo.Create(ctx, &review.Review{ID: "r2", Token: "same"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestService_UnknownToken(t *testing.T) {
	service, notifier := newService(t)
	ctx := context.Background()

	_, err := service.GetByToken(ctx, "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Submit(ctx, "missing", review.SubmitInput{Rating: 5, Title: "Great", Content: "Loved it"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Empty(t, notifier.sent)
}

/*
TestService_SubmitAndModerate walks a review through its whole lifecycle.
*/
func TestService_SubmitAndModerate(t *testing.T) {
	service, notifier := newService(t)
	ctx := context.Background()
	link := createLink(t, service)

	// 1. Validation runs before the lookup
	_, err := service.Submit(ctx, link.Token, review.SubmitInput{Rating: 6, Title: "Great", Content: "x"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	_, err = service.Submit(ctx, link.Token, review.SubmitInput{Rating: 5, Title: "", Content: ""})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	// 2. Submit then read back
	_, err = service.Submit(ctx, link.Token, review.SubmitInput{Rating: 4, Title: "Good", Content: "Solid work"})
	require.NoError(t, err)
	_, err = service.Submit(ctx, link.Token, review.SubmitInput{Rating: 5, Title: "Great", Content: "Outstanding team"})
	require.NoError(t, err)

	got, err := service.GetByToken(ctx, link.Token)
	require.NoError(t, err)
	assert.Equal(t, review.StatusPending, got.Status)
	require.NotNil(t, got.SubmittedAt)
	assert.Equal(t, 5, *got.Rating)
	assert.Equal(t, "Great", *got.Title)
	assert.Equal(t, "Outstanding team", *got.Content)
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "inbox@navigant.test", notifier.sent[0].to)

	// 3. Approve shows it publicly without private fields
	approved, err := service.UpdateStatus(ctx, link.ID, review.StatusInput{Status: "APPROVED", AdminNotes: "ship it"}, "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", approved.ReviewedBy)

	public, err := service.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, link.ID, public[0].ID)
	assert.Equal(t, 5, *public[0].Rating)

	encoded, err := json.Marshal(public[0])
	require.NoError(t, err)
	for _, private := range []string{"clientEmail", "adminNotes", "reviewedBy", "token"} {
		assert.NotContains(t, string(encoded), private)
	}

	// 4. Moderated reviews are frozen for the client
	_, err = service.Submit(ctx, link.Token, review.SubmitInput{Rating: 1, Title: "Edit", Content: "Changed my mind"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	// 5. Reject removes it from the public list
	_, err = service.UpdateStatus(ctx, link.ID, review.StatusInput{Status: "REJECTED"}, "A1")
	require.NoError(t, err)
	public, err = service.ListApproved(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	// 6. Bad status and unknown id
	_, err = service.UpdateStatus(ctx, link.ID, review.StatusInput{Status: "MAYBE"}, "A1")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	_, err = service.UpdateStatus(ctx, "nope", review.StatusInput{Status: "APPROVED"}, "A1")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	// 7. Delete
	require.NoError(t, service.Delete(ctx, link.ID))
	assert.True(t, apperr.HasCode(service.Delete(ctx, link.ID), apperr.CodeNotFound))
	_, total, err := service.List(ctx, review.Filter{}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

/*
TestHandler_Routes checks routing, projections and audit entries over HTTP.
*/
func TestHandler_Routes(t *testing.T) {
	service, _ := newService(t)
	sink := &recordingSink{}
	handler := review.NewHandler(service, sink, "https://default.test")

	router := chi.NewRouter()
	router.Mount("/admin/reviews", handler.AdminRoutes())
	router.Mount("/reviews", handler.PublicRoutes())

	admin := &sec.Principal{AdminID: "A1", Role: sec.RoleAdmin}
	do := func(method, path, body string, principal *sec.Principal, headers map[string]string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		if principal != nil {
			req = req.WithContext(ctxutil.WithPrincipal(req.Context(), principal))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	// Admin endpoints need a session
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/admin/reviews", "", nil, nil).Code)

	rec := do(http.MethodPost, "/admin/reviews", `{"clientName":"Dana","clientEmail":"client@x.com","clientCompany":"Acme"}`,
		admin, map[string]string{"X-Base-Url": "https://site.test/"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			ID         string `json:"id"`
			Token      string `json:"token"`
			ReviewLink string `json:"reviewLink"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "https://site.test/review/"+created.Data.Token, created.Data.ReviewLink)

	// Without the header the configured base URL is used
	rec = do(http.MethodPost, "/admin/reviews", `{"clientName":"Eve","clientEmail":"eve@x.com"}`, admin, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reviewLink":"https://default.test/review/`)

	// Public form hides admin-only fields
	rec = do(http.MethodGet, "/reviews/"+created.Data.Token, "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"clientName":"Dana"`)
	assert.Contains(t, rec.Body.String(), `"rating":null`)
	assert.NotContains(t, rec.Body.String(), "client@x.com")

	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/reviews/unknown", "", nil, nil).Code)

	rec = do(http.MethodPost, "/reviews/"+created.Data.Token, `{"rating":5,"title":"Great","content":"Fast and friendly"}`, nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(http.MethodGet, "/admin/reviews?status=LOST", "", admin, nil).Code)
	assert.Equal(t, http.StatusBadRequest,
		do(http.MethodPatch, "/admin/reviews/"+created.Data.ID+"/status", `{"status":"LOST"}`, admin, nil).Code)

	rec = do(http.MethodPatch, "/admin/reviews/"+created.Data.ID+"/status", `{"status":"APPROVED","adminNotes":"ok"}`, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(http.MethodGet, "/reviews", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rating":5`)
	assert.NotContains(t, rec.Body.String(), "adminNotes")

	rec = do(http.MethodGet, "/admin/reviews?status=approved", "", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/admin/reviews/"+created.Data.ID, "", admin, nil).Code)

	actions := make([]string, 0, len(sink.entries))
	for _, entry := range sink.entries {
		actions = append(actions, entry.Action)
	}
	assert.Equal(t, []string{
		audit.ActionCreateLink, audit.ActionCreateLink, audit.ActionSubmit, audit.ActionUpdateStatus, audit.ActionDelete,
	}, actions)
	assert.Equal(t, audit.PublicActor, sink.entries[2].AdminID)
	assert.Equal(t, "A1", sink.entries[3].AdminID)
}

// interleavingRepository runs a competing write immediately before the next
// column write, the way two requests overlap in production.
type interleavingRepository struct {
	*review.MemoryRepository
	before func()
}

func (r *interleavingRepository) competing() {
	if run := r.before; run != nil {
		r.before = nil
		run()
	}
}

func (r *interleavingRepository) SubmitByToken(ctx context.Context, token string, s review.Submission) (*review.Review, error) {
	r.competing()
	return r.MemoryRepository.SubmitByToken(ctx, token, s)
}

func (r *interleavingRepository) SetStatus(ctx context.Context, id string, d review.Decision) (*review.Review, error) {
	r.competing()
	return r.MemoryRepository.SetStatus(ctx, id, d)
}

/*
TestService_OverlappingWrites checks that a submission and a moderation
landing back to back never erase each other's columns.
*/
func TestService_OverlappingWrites(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("approval lands before the submission", func(t *testing.T) {
		repo := &interleavingRepository{MemoryRepository: review.NewMemoryRepository()}
		notifier := &recordingNotifier{}
		service := review.NewService(repo, notifier, "inbox@navigant.test", logger)
		link := createLink(t, service)

		repo.before = func() {
			_, err := service.UpdateStatus(ctx, link.ID, review.StatusInput{Status: "APPROVED", AdminNotes: "ok"}, "A1")
			require.NoError(t, err)
		}
		_, err := service.Submit(ctx, link.Token, review.SubmitInput{Rating: 1, Title: "Late", Content: "Too late"})
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
		assert.Empty(t, notifier.sent)

		got, err := service.Get(ctx, link.ID)
		require.NoError(t, err)
		assert.Equal(t, review.StatusApproved, got.Status)
		assert.Equal(t, "A1", got.ReviewedBy)
		assert.Equal(t, "ok", got.AdminNotes)
		assert.Nil(t, got.Rating)
	})

	t.Run("submission lands before the approval", func(t *testing.T) {
		repo := &interleavingRepository{MemoryRepository: review.NewMemoryRepository()}
		service := review.NewService(repo, &recordingNotifier{}, "inbox@navigant.test", logger)
		link := createLink(t, service)

		repo.before = func() {
			_, err := service.Submit(ctx, link.Token, review.SubmitInput{Rating: 5, Title: "Great", Content: "Outstanding team"})
			require.NoError(t, err)
		}
		approved, err := service.UpdateStatus(ctx, link.ID, review.StatusInput{Status: "APPROVED", AdminNotes: "ok"}, "A1")
		require.NoError(t, err)

		assert.Equal(t, review.StatusApproved, approved.Status)
		require.NotNil(t, approved.Rating)
		assert.Equal(t, 5, *approved.Rating)
		assert.Equal(t, "Outstanding team", *approved.Content)
		assert.NotNil(t, approved.SubmittedAt)
	})
}
