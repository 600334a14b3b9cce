// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lead

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/navigant/backoffice/internal/platform/validate"
	"github.com/navigant/backoffice/internal/system/notification"
	"github.com/navigant/backoffice/pkg/pagination"
	"github.com/navigant/backoffice/pkg/uuid"
)

// Service implements the lead desk.
type Service struct {
	repository Repository
	notifier   notification.Notifier
	notifyTo   string
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new [Service]. An empty notifyTo disables the new-lead email.
func NewService(repository Repository, notifier notification.Notifier, notifyTo string, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		notifier:   notifier,
		notifyTo:   notifyTo,
		logger:     logger,
		now:        time.Now,
	}
}

// SubmitInput is a contact-form submission.
type SubmitInput struct {
	FullName      string
	Email         string
	Phone         string
	ServiceType   string
	NumberOfSeats int
	Remarks       string
}

/*
Submit stores a public enquiry as NEW and tells the admin inbox.

Returns:
  - *Lead: Created lead
  - error: ValidationError or storage errors
*/
func (service *Service) Submit(ctx context.Context, input SubmitInput) (*Lead, error) {
	validator := &validate.Validator{}
	validator.Required(FieldFullName, input.FullName).
		MaxLen(FieldFullName, input.FullName, MaxNameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, strings.TrimSpace(input.Email)).
		Required(FieldPhone, input.Phone).
		MaxLen(FieldPhone, input.Phone, MaxPhoneLength).
		Required(FieldServiceType, input.ServiceType).
		MaxLen(FieldServiceType, input.ServiceType, MaxServiceLength).
		Range(FieldNumberOfSeats, input.NumberOfSeats, 1, MaxSeats).
		MaxLen(FieldRemarks, input.Remarks, MaxRemarksLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := service.now().UTC()
	lead := &Lead{
		ID:            uuid.New(),
		FullName:      strings.TrimSpace(input.FullName),
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:         strings.TrimSpace(input.Phone),
		ServiceType:   strings.TrimSpace(input.ServiceType),
		NumberOfSeats: input.NumberOfSeats,
		Remarks:       strings.TrimSpace(input.Remarks),
		Status:        StatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := service.repository.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("lead_service_submit_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "lead_submitted",
		slog.String("lead_id", lead.ID),
		slog.String("service_type", lead.ServiceType),
	)

	if service.notifyTo != "" {
		service.notifier.Notify(service.notifyTo,
			"New Lead: "+lead.ServiceType,
			fmt.Sprintf("%s <%s>, %s, %d seat(s)\n\n%s", lead.FullName, lead.Email, lead.Phone, lead.NumberOfSeats, lead.Remarks),
		)
	}
	return lead, nil
}

// List returns leads newest first.
func (service *Service) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Lead, int, error) {
	leads, total, err := service.repository.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("lead_service_list_failed: %w", err)
	}
	return leads, total, nil
}

// Get returns a single lead.
func (service *Service) Get(ctx context.Context, id string) (*Lead, error) {
	lead, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lead_service_get_failed: %w", err)
	}
	return lead, nil
}

/*
UpdateStatus moves a lead through the pipeline. Any transition is allowed.

Returns:
  - *Lead: Updated lead
  - error: ValidationError (unknown status), NotFound, or storage errors
*/
func (service *Service) UpdateStatus(ctx context.Context, id, rawStatus, adminID string) (*Lead, error) {
	status, ok := ParseStatus(rawStatus)
	if !ok {
		return nil, validate.FieldError(FieldStatus, "Must be one of: NEW, CONTACTED, QUALIFIED, CONVERTED, CLOSED")
	}

	current, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lead_service_update_status_failed: %w", err)
	}

	updated := current.WithStatus(status, adminID, service.now().UTC())
	if err := service.repository.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("lead_service_update_status_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "lead_status_updated",
		slog.String("lead_id", id),
		slog.String("status", string(status)),
	)
	return &updated, nil
}

// UpdateComments replaces the internal follow-up notes.
func (service *Service) UpdateComments(ctx context.Context, id, comments, adminID string) (*Lead, error) {
	validator := &validate.Validator{}
	validator.MaxLen(FieldComments, comments, MaxCommentsLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lead_service_update_comments_failed: %w", err)
	}

	updated := current.WithComments(strings.TrimSpace(comments), adminID, service.now().UTC())
	if err := service.repository.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("lead_service_update_comments_failed: %w", err)
	}
	return &updated, nil
}
