// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package application_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navigant/backoffice/internal/careers/application"
	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/internal/platform/ctxutil"
	"github.com/navigant/backoffice/internal/platform/sec"
	"github.com/navigant/backoffice/internal/system/audit"
)

type recordingNotifier struct {
	subjects []string
}

func (n *recordingNotifier) Notify(_, subject, _ string) {
	n.subjects = append(n.subjects, subject)
}

type recordingSink struct {
	entries []audit.Entry
}

func (s *recordingSink) Record(entry audit.Entry) {
	s.entries = append(s.entries, entry)
}

const validApplication = `{"jobPostId":"job-42","jobTitle":"Platform Engineer","applicantName":"Riley Chen","applicantEmail":"Riley@Mail.test","applicantPhone":"5550100123","resumeUrl":"https://cdn.navigant.test/resumes/riley.pdf","coverLetter":"Keen to join."}`

func newService(notifier *recordingNotifier, notifyTo string) *application.Service {
	return application.NewService(application.NewMemoryRepository(), notifier, notifyTo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestParseStatus(t *testing.T) {
	status, ok := application.ParseStatus(" interview_scheduled ")
	assert.True(t, ok)
	assert.Equal(t, application.StatusInterviewScheduled, status)

	_, ok = application.ParseStatus("OFFERED")
	assert.False(t, ok)
}

func TestService_SubmitValidation(t *testing.T) {
	service := newService(&recordingNotifier{}, "")

	valid := application.SubmitInput{
		JobPostID: "job-1", ApplicantName: "A", ApplicantEmail: "a@b.test", ApplicantPhone: "5550100123",
	}
	with := func(mutate func(*application.SubmitInput)) application.SubmitInput {
		input := valid
		mutate(&input)
		return input
	}

	tests := []struct {
		name  string
		input application.SubmitInput
	}{
		{"missing job", with(func(in *application.SubmitInput) { in.JobPostID = "" })},
		{"missing name", with(func(in *application.SubmitInput) { in.ApplicantName = " " })},
		{"bad email", with(func(in *application.SubmitInput) { in.ApplicantEmail = "riley" })},
		{"short phone", with(func(in *application.SubmitInput) { in.ApplicantPhone = "555" })},
		{"formatted phone", with(func(in *application.SubmitInput) { in.ApplicantPhone = "+1 555 010 0123" })},
		{"relative resume link", with(func(in *application.SubmitInput) { in.ResumeURL = "/resumes/a.pdf" })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Submit(context.Background(), tt.input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}

	created, err := service.Submit(context.Background(), valid)
	require.NoError(t, err)
	assert.Equal(t, application.StatusNew, created.Status)
}

func TestService_RejectsDuplicateApplication(t *testing.T) {
	service := newService(&recordingNotifier{}, "")
	input := application.SubmitInput{
		JobPostID: "job-1", ApplicantName: "Riley", ApplicantEmail: "riley@mail.test", ApplicantPhone: "5550100123",
	}

	_, err := service.Submit(context.Background(), input)
	require.NoError(t, err)

	input.ApplicantEmail = "RILEY@mail.test"
	_, err = service.Submit(context.Background(), input)
	assert.ErrorIs(t, err, application.ErrAlreadyApplied)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	input.JobPostID = "job-2"
	_, err = service.Submit(context.Background(), input)
	assert.NoError(t, err, "the same candidate may apply to another job")
}

/*
TestHandler_Flow submits an application publicly and works it from the admin desk.
*/
func TestHandler_Flow(t *testing.T) {
	notifier := &recordingNotifier{}
	sink := &recordingSink{}
	handler := application.NewHandler(newService(notifier, "hr@navigant.test"), sink)

	router := chi.NewRouter()
	router.Mount("/applications", handler.PublicRoutes())
	router.Mount("/admin/applications", handler.AdminRoutes())

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

	// 1. Public submission
	rec := do(http.MethodPost, "/applications", validApplication, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data application.Application `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, application.StatusNew, created.Data.Status)
	assert.Equal(t, "riley@mail.test", created.Data.ApplicantEmail)
	assert.Equal(t, "Platform Engineer", created.Data.JobTitle)
	assert.Equal(t, []string{"New Job Application: Riley Chen"}, notifier.subjects)

	require.Len(t, sink.entries, 1)
	assert.Equal(t, audit.PublicActor, sink.entries[0].AdminID)
	assert.Equal(t, audit.EntityApplication, sink.entries[0].EntityType)

	// 2. Second application to the same job is refused
	rec = do(http.MethodPost, "/applications", validApplication, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"CONFLICT"`)

	// 3. Admin desk requires a session
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/admin/applications", "", nil).Code)

	id := created.Data.ID
	rec = do(http.MethodPatch, "/admin/applications/"+id+"/status?status=shortlisted", "", admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"SHORTLISTED"`)
	assert.Contains(t, rec.Body.String(), `"reviewedBy":"A1"`)

	rec = do(http.MethodPatch, "/admin/applications/"+id+"/status", `{"status":"INTERVIEW_SCHEDULED"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"coverLetter":"Keen to join."`, "status writes leave the form untouched")

	assert.Equal(t, http.StatusBadRequest, do(http.MethodPatch, "/admin/applications/"+id+"/status?status=OFFERED", "", admin).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodPatch, "/admin/applications/missing/status?status=HIRED", "", admin).Code)

	// 4. Filtered listing
	rec = do(http.MethodGet, "/admin/applications?status=INTERVIEW_SCHEDULED&jobPostId=job-42", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	rec = do(http.MethodGet, "/admin/applications?jobPostId=job-7", "", admin)
	assert.Contains(t, rec.Body.String(), `"total":0`)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodGet, "/admin/applications?status=OFFERED", "", admin).Code)

	// 5. Removal
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/admin/applications/"+id, "", admin).Code)
	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/admin/applications/"+id, "", admin).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/admin/applications/"+id, "", admin).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, "/admin/applications/"+id, "", admin).Code)

	actions := []string{}
	for _, entry := range sink.entries {
		actions = append(actions, entry.Action)
	}
	assert.Equal(t, []string{
		audit.ActionCreate, audit.ActionUpdateStatus, audit.ActionUpdateStatus, audit.ActionDelete,
	}, actions)
}
