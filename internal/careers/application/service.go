// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package application

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/navigant/backoffice/internal/platform/validate"
	"github.com/navigant/backoffice/internal/system/notification"
	"github.com/navigant/backoffice/pkg/pagination"
	"github.com/navigant/backoffice/pkg/uuid"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Service implements the hiring desk.
type Service struct {
	repository Repository
	notifier   notification.Notifier
	notifyTo   string
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new [Service]. An empty notifyTo disables the new-application email.
func NewService(repository Repository, notifier notification.Notifier, notifyTo string, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		notifier:   notifier,
		notifyTo:   notifyTo,
		logger:     logger,
		now:        time.Now,
	}
}

// SubmitInput is a candidate's application form.
type SubmitInput struct {
	JobPostID      string
	JobTitle       string
	ApplicantName  string
	ApplicantEmail string
	ApplicantPhone string
	ResumeURL      string
	CoverLetter    string
}

/*
Submit stores a public application as NEW and tells the hiring inbox.

Returns:
  - *Application: Created application
  - error: ValidationError, ErrAlreadyApplied, or storage errors
*/
func (service *Service) Submit(ctx context.Context, input SubmitInput) (*Application, error) {
	phone := strings.TrimSpace(input.ApplicantPhone)
	resumeURL := strings.TrimSpace(input.ResumeURL)

	validator := &validate.Validator{}
	validator.Required(FieldJobPostID, input.JobPostID).
		MaxLen(FieldJobPostID, input.JobPostID, MaxJobPostIDLength).
		MaxLen(FieldJobTitle, input.JobTitle, MaxJobTitleLength).
		Required(FieldApplicantName, input.ApplicantName).
		MaxLen(FieldApplicantName, input.ApplicantName, MaxNameLength).
		Required(FieldApplicantEmail, input.ApplicantEmail).
		Email(FieldApplicantEmail, strings.TrimSpace(input.ApplicantEmail)).
		Required(FieldApplicantPhone, phone).
		Custom(FieldApplicantPhone, phone != "" && !phonePattern.MatchString(phone), "Phone must be 10 digits").
		URL(FieldResumeURL, resumeURL).
		MaxLen(FieldResumeURL, resumeURL, MaxResumeURLLength).
		MaxLen(FieldCoverLetter, input.CoverLetter, MaxCoverLetterLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := service.now().UTC()
	application := &Application{
		ID:             uuid.New(),
		JobPostID:      strings.TrimSpace(input.JobPostID),
		JobTitle:       strings.TrimSpace(input.JobTitle),
		ApplicantName:  strings.TrimSpace(input.ApplicantName),
		ApplicantEmail: strings.ToLower(strings.TrimSpace(input.ApplicantEmail)),
		ApplicantPhone: phone,
		ResumeURL:      resumeURL,
		CoverLetter:    strings.TrimSpace(input.CoverLetter),
		Status:         StatusNew,
		AppliedAt:      now,
		UpdatedAt:      now,
	}
	if err := service.repository.Create(ctx, application); err != nil {
		return nil, fmt.Errorf("application_service_submit_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "application_submitted",
		slog.String("application_id", application.ID),
		slog.String("job_post_id", application.JobPostID),
	)

	if service.notifyTo != "" {
		service.notifier.Notify(service.notifyTo,
			"New Job Application: "+application.ApplicantName,
			fmt.Sprintf("New application received for Job: %s (%s)\nApplicant: %s\nEmail: %s\nPhone: %s\nResume: %s",
				application.JobTitle, application.JobPostID, application.ApplicantName,
				application.ApplicantEmail, application.ApplicantPhone, application.ResumeURL),
		)
	}
	return application, nil
}

// List returns applications newest first.
func (service *Service) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Application, int, error) {
	applications, total, err := service.repository.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("application_service_list_failed: %w", err)
	}
	return applications, total, nil
}

// Get returns a single application.
func (service *Service) Get(ctx context.Context, id string) (*Application, error) {
	application, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("application_service_get_failed: %w", err)
	}
	return application, nil
}

/*
UpdateStatus moves an application through the hiring pipeline. Any transition is allowed.

Returns:
  - *Application: Updated application
  - error: ValidationError (unknown status), NotFound, or storage errors
*/
func (service *Service) UpdateStatus(ctx context.Context, id, rawStatus, adminID string) (*Application, error) {
	status, ok := ParseStatus(rawStatus)
	if !ok {
		return nil, validate.FieldError(FieldStatus,
			"Must be one of: NEW, REVIEWED, SHORTLISTED, INTERVIEW_SCHEDULED, REJECTED, HIRED")
	}

	updated, err := service.repository.SetStatus(ctx, id, status, adminID, service.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("application_service_update_status_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "application_status_updated",
		slog.String("application_id", id),
		slog.String("status", string(status)),
	)
	return updated, nil
}

// Delete removes an application permanently.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repository.Delete(ctx, id); err != nil {
		return fmt.Errorf("application_service_delete_failed: %w", err)
	}
	service.logger.InfoContext(ctx, "application_deleted", slog.String("application_id", id))
	return nil
}
