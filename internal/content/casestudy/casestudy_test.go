// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package casestudy_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navigant/backoffice/internal/content/casestudy"
	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/internal/platform/ctxutil"
	"github.com/navigant/backoffice/internal/platform/sec"
	"github.com/navigant/backoffice/internal/system/audit"
	"github.com/navigant/backoffice/pkg/pointer"
)

func newService() *casestudy.Service {
	return casestudy.NewService(casestudy.NewMemoryRepository(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_Create(t *testing.T) {
	service := newService()
	ctx := context.Background()

	study, err := service.Create(ctx, casestudy.CreateInput{Title: "ERP Rollout für Acmé", Image: "https://cdn.test/erp.png"})
	require.NoError(t, err)
	assert.Equal(t, "erp-rollout-fur-acme", study.Slug)
	assert.Equal(t, casestudy.StatusDraft, study.Status)
	assert.Nil(t, study.PublishDate)

	// Same title → same slug → conflict
	_, err = service.Create(ctx, casestudy.CreateInput{Title: "ERP rollout fur ACME"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	invalid := []casestudy.CreateInput{
		{Title: ""},
		{Title: "!!!"},
		{Title: "Ok", Image: "ftp://cdn.test/x.png"},
		{Title: "Ok", DisplayOrder: -1},
	}
	for _, input := range invalid {
		_, err := service.Create(ctx, input)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "%+v", input)
	}
}

/*
TestService_PublicVisibility checks that only published entries leak to the public reads.
*/
func TestService_PublicVisibility(t *testing.T) {
	service := newService()
	ctx := context.Background()

	first, err := service.Create(ctx, casestudy.CreateInput{Title: "First", DisplayOrder: 2})
	require.NoError(t, err)
	second, err := service.Create(ctx, casestudy.CreateInput{Title: "Second", DisplayOrder: 1})
	require.NoError(t, err)
	third, err := service.Create(ctx, casestudy.CreateInput{Title: "Third", DisplayOrder: 2})
	require.NoError(t, err)

	_, err = service.GetPublished(ctx, first.Slug)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = service.Update(ctx, first.ID, casestudy.UpdateInput{Status: pointer.To("published"), PublishDate: &older})
	require.NoError(t, err)
	published, err := service.Update(ctx, second.ID, casestudy.UpdateInput{Status: pointer.To("PUBLISHED")})
	require.NoError(t, err)
	require.NotNil(t, published.PublishDate)
	_, err = service.Update(ctx, third.ID, casestudy.UpdateInput{Status: pointer.To("PUBLISHED")})
	require.NoError(t, err)

	list, err := service.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{second.ID, third.ID, first.ID}, []string{list[0].ID, list[1].ID, list[2].ID})

	// Unpublishing hides it again
	_, err = service.Update(ctx, second.ID, casestudy.UpdateInput{Status: pointer.To("DRAFT")})
	require.NoError(t, err)
	_, err = service.GetPublished(ctx, second.Slug)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	got, err := service.GetPublished(ctx, first.Slug)
	require.NoError(t, err)
	assert.Equal(t, older, *got.PublishDate)

	_, err = service.Update(ctx, first.ID, casestudy.UpdateInput{Status: pointer.To("ARCHIVED")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Update(ctx, first.ID, casestudy.UpdateInput{Slug: pointer.To(third.Slug)})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestHandler_Routes(t *testing.T) {
	var actions []string
	sink := sinkFunc(func(entry audit.Entry) { actions = append(actions, entry.Action) })
	handler := casestudy.NewHandler(newService(), sink)

	router := chi.NewRouter()
	router.Mount("/admin/case-studies", handler.AdminRoutes())
	router.Mount("/case-studies", handler.PublicRoutes())

	admin := &sec.Principal{AdminID: "A1", Role: sec.RoleAdmin}
	do := func(method, path, body string, principal *sec.Principal) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		if principal != nil {
			req = req.WithContext(ctxutil.WithPrincipal(req.Context(), principal))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, do(http.MethodPost, "/admin/case-studies", `{"title":"X"}`, nil).Code)

	rec := do(http.MethodPost, "/admin/case-studies", `{"title":"Data Platform","category":"Cloud"}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data casestudy.CaseStudy `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/case-studies/data-platform", "", nil).Code)

	rec = do(http.MethodPatch, "/admin/case-studies/"+created.Data.ID, `{"status":"PUBLISHED","publishDate":"2026-02-01T00:00:00Z"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(http.MethodGet, "/case-studies/data-platform", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"publishDate":"2026-02-01T00:00:00Z"`)

	rec = do(http.MethodGet, "/case-studies", "", nil)
	assert.Contains(t, rec.Body.String(), `"slug":"data-platform"`)

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/admin/case-studies/"+created.Data.ID, "", admin).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/admin/case-studies/"+created.Data.ID, "", admin).Code)

	assert.Equal(t, []string{audit.ActionCreate, audit.ActionUpdate, audit.ActionDelete}, actions)
}

type sinkFunc func(audit.Entry)

func (f sinkFunc) Record(entry audit.Entry) { f(entry) }
