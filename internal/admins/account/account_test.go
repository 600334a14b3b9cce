// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
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

	"github.com/navigant/backoffice/internal/admins/account"
	"github.com/navigant/backoffice/internal/admins/auth"
	"github.com/navigant/backoffice/internal/platform/ctxutil"
	"github.com/navigant/backoffice/internal/platform/sec"
	"github.com/navigant/backoffice/internal/system/audit"
)

type countingSink struct {
	actions []string
}

func (s *countingSink) Record(entry audit.Entry) {
	s.actions = append(s.actions, entry.Action)
}

var (
	superAdmin = &sec.Principal{AdminID: "super", Email: "root@navigant.test", Role: sec.RoleSuperAdmin}
	plainAdmin = &sec.Principal{AdminID: "plain", Email: "desk@navigant.test", Role: sec.RoleAdmin}
)

func setup(t *testing.T) (http.Handler, *auth.MemoryAdminRepository, *countingSink) {
	t.Helper()

	repo := auth.NewMemoryAdminRepository()
	now := time.Now().UTC()
	for _, p := range []*sec.Principal{superAdmin, plainAdmin} {
		require.NoError(t, repo.Create(context.Background(), &auth.Admin{
			ID: p.AdminID, Name: p.AdminID, Email: p.Email, PasswordHash: "x",
			Role: p.Role, Enabled: true, CreatedAt: now, UpdatedAt: now,
		}))
	}

	sink := &countingSink{}
	service := account.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := chi.NewRouter()
	router.Mount("/admins", account.NewHandler(service, sink).Routes())
	return router, repo, sink
}

func call(router http.Handler, method, path, body string, principal *sec.Principal) *httptest.ResponseRecorder {
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

/*
TestHandler_RoleRules checks the account management authorization matrix.
*/
func TestHandler_RoleRules(t *testing.T) {
	router, repo, sink := setup(t)
	newAdmin := `{"name":"Casey","email":"casey@navigant.test","password":"long-enough"}`

	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		principal *sec.Principal
		want      int
	}{
		{"anonymous list", http.MethodGet, "/admins", "", nil, http.StatusUnauthorized},
		{"admin lists", http.MethodGet, "/admins", "", plainAdmin, http.StatusOK},
		{"admin creates", http.MethodPost, "/admins", newAdmin, plainAdmin, http.StatusForbidden},
		{"admin deletes", http.MethodDelete, "/admins/super", "", plainAdmin, http.StatusForbidden},
		{"admin updates self", http.MethodPatch, "/admins/plain", `{"name":"Desk Two"}`, plainAdmin, http.StatusOK},
		{"admin updates other", http.MethodPatch, "/admins/super", `{"name":"Hijack"}`, plainAdmin, http.StatusForbidden},
		{"admin promotes self", http.MethodPatch, "/admins/plain", `{"role":"SUPER_ADMIN"}`, plainAdmin, http.StatusForbidden},
		{"admin disables self", http.MethodPatch, "/admins/plain", `{"enabled":false}`, plainAdmin, http.StatusForbidden},
		{"super deletes self", http.MethodDelete, "/admins/super", "", superAdmin, http.StatusBadRequest},
		{"super updates other", http.MethodPatch, "/admins/plain", `{"role":"super_admin"}`, superAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(router, tt.method, tt.path, tt.body, tt.principal)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	// Self-delete was refused before touching storage
	_, err := repo.FindByID(context.Background(), "super")
	assert.NoError(t, err)

	promoted, err := repo.FindByID(context.Background(), "plain")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleSuperAdmin, promoted.Role)
	assert.Equal(t, "Desk Two", promoted.Name)

	assert.Equal(t, []string{audit.ActionUpdate, audit.ActionUpdate}, sink.actions)
}

/*
TestHandler_Lifecycle creates, conflicts, and deletes an admin.
*/
func TestHandler_Lifecycle(t *testing.T) {
	router, repo, sink := setup(t)

	rec := call(router, http.MethodPost, "/admins", `{"name":"Casey","email":"Casey@Navigant.test","password":"long-enough"}`, superAdmin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"role":"ADMIN"`)
	assert.Contains(t, rec.Body.String(), `"email":"casey@navigant.test"`)
	assert.NotContains(t, rec.Body.String(), "long-enough")

	created, err := repo.FindByEmail(context.Background(), "casey@navigant.test")
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("long-enough", created.PasswordHash))

	// Case-insensitive duplicate
	rec = call(router, http.MethodPost, "/admins", `{"name":"Dup","email":"CASEY@navigant.test","password":"long-enough"}`, superAdmin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Validation
	invalid := []string{
		`{"name":"","email":"x@navigant.test","password":"long-enough"}`,
		`{"name":"X","email":"not-an-email","password":"long-enough"}`,
		`{"name":"X","email":"x@navigant.test","password":"short"}`,
		`{"name":"X","email":"x@navigant.test","password":"long-enough","role":"OWNER"}`,
		`{"name":"` + strings.Repeat("n", 101) + `","email":"x@navigant.test","password":"long-enough"}`,
	}
	for _, body := range invalid {
		rec = call(router, http.MethodPost, "/admins", body, superAdmin)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	// Email change onto an existing address
	rec = call(router, http.MethodPatch, "/admins/"+created.ID, `{"email":"desk@navigant.test"}`, superAdmin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(router, http.MethodDelete, "/admins/"+created.ID, "", superAdmin)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(router, http.MethodGet, "/admins/"+created.ID, "", superAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(router, http.MethodDelete, "/admins/"+created.ID, "", superAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, []string{audit.ActionCreate, audit.ActionDelete}, sink.actions)
}
