// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/navigant/backoffice/internal/platform/sec"
	"github.com/navigant/backoffice/internal/platform/validate"
	"github.com/navigant/backoffice/internal/system/notification"
	"github.com/navigant/backoffice/pkg/pagination"
	"github.com/navigant/backoffice/pkg/pointer"
	"github.com/navigant/backoffice/pkg/slice"
	"github.com/navigant/backoffice/pkg/uuid"
)

// Service implements the review link workflow.
type Service struct {
	repository Repository
	notifier   notification.Notifier
	notifyTo   string
	logger     *slog.Logger

	newToken func() (string, error)
	now      func() time.Time
}

// NewService constructs a new [Service]. notifyTo is the admin inbox told about
// submissions; an empty value disables the email.
func NewService(repository Repository, notifier notification.Notifier, notifyTo string, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		notifier:   notifier,
		notifyTo:   notifyTo,
		logger:     logger,
		newToken:   func() (string, error) { return sec.GenerateSecureToken(TokenBytes) },
		now:        time.Now,
	}
}

// # Link Issuance

// CreateLinkInput identifies the client being asked for a review.
type CreateLinkInput struct {
	ClientName    string
	ClientEmail   string
	ClientCompany string
}

// CreatedLink is a new review plus the URL handed to the client.
type CreatedLink struct {
	*Review
	ReviewLink string `json:"reviewLink"`
}

// BuildLink joins the base URL and token into the public form URL.
func BuildLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + LinkPath + token
}

/*
CreateLink issues a fresh token and stores a PENDING review.

A token collision is left to the unique index and surfaces as a Conflict;
with 256 bits of entropy it is not retried.

Parameters:
  - ctx: context.Context
  - input: CreateLinkInput
  - baseURL: Public site origin the link points at

Returns:
  - *CreatedLink: Review and its public URL
  - error: ValidationError, Conflict, or storage errors
*/
func (service *Service) CreateLink(ctx context.Context, input CreateLinkInput, baseURL string) (*CreatedLink, error) {
	validator := &validate.Validator{}
	validator.Required(FieldClientName, input.ClientName).
		MaxLen(FieldClientName, input.ClientName, MaxClientNameLength).
		Required(FieldClientEmail, input.ClientEmail).
		Email(FieldClientEmail, strings.TrimSpace(input.ClientEmail)).
		MaxLen(FieldClientCompany, input.ClientCompany, MaxClientCompanyLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	token, err := service.newToken()
	if err != nil {
		return nil, fmt.Errorf("review_service_token_failed: %w", err)
	}

	now := service.now().UTC()
	review := &Review{
		ID:            uuid.New(),
		Token:         token,
		ClientName:    strings.TrimSpace(input.ClientName),
		ClientEmail:   strings.ToLower(strings.TrimSpace(input.ClientEmail)),
		ClientCompany: strings.TrimSpace(input.ClientCompany),
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := service.repository.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("review_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "review_link_created", slog.String("review_id", review.ID))
	return &CreatedLink{Review: review, ReviewLink: BuildLink(baseURL, token)}, nil
}

// # Public Flow

// GetByToken returns the review behind a link, whatever its status.
func (service *Service) GetByToken(ctx context.Context, token string) (*Review, error) {
	review, err := service.repository.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("review_service_get_by_token_failed: %w", err)
	}
	return review, nil
}

// SubmitInput holds the client's answers.
type SubmitInput struct {
	Rating  int
	Title   string
	Content string
}

/*
Submit stores the client's answers; the review stays PENDING.

A client may resubmit while the review is still PENDING, which replaces the
earlier answers. Once moderated the review is frozen for the client.

Returns:
  - *Review: Updated review
  - error: ValidationError, NotFound, Conflict (already moderated), or storage errors
*/
func (service *Service) Submit(ctx context.Context, token string, input SubmitInput) (*Review, error) {
	validator := &validate.Validator{}
	validator.Range(FieldRating, input.Rating, MinRating, MaxRating).
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, MaxContentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	updated, err := service.repository.SubmitByToken(ctx, token, Submission{
		Rating:  input.Rating,
		Title:   strings.TrimSpace(input.Title),
		Content: strings.TrimSpace(input.Content),
		At:      service.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("review_service_submit_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "review_submitted", slog.String("review_id", updated.ID))

	if service.notifyTo != "" {
		service.notifier.Notify(service.notifyTo,
			"New review from "+updated.ClientName,
			fmt.Sprintf("%s (%s) rated %d/5: %s", updated.ClientName, updated.ClientCompany, input.Rating, pointer.Val(updated.Title)),
		)
	}
	return updated, nil
}

// ListApproved returns the public testimonials.
func (service *Service) ListApproved(ctx context.Context) ([]PublicReview, error) {
	reviews, err := service.repository.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("review_service_list_approved_failed: %w", err)
	}

	return slice.Map(reviews, (*Review).Public), nil
}

// # Moderation

// StatusInput is an admin decision.
type StatusInput struct {
	Status     string
	AdminNotes string
}

/*
UpdateStatus records an admin decision. Any transition is allowed, including
back to PENDING.

Returns:
  - *Review: Updated review
  - error: ValidationError (unknown status), NotFound, or storage errors
*/
func (service *Service) UpdateStatus(ctx context.Context, id string, input StatusInput, adminID string) (*Review, error) {
	validator := &validate.Validator{}
	validator.Required(FieldStatus, input.Status).
		OneOf(FieldStatus, input.Status, string(StatusPending), string(StatusApproved), string(StatusRejected)).
		MaxLen(FieldAdminNotes, input.AdminNotes, MaxNotesLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	status, _ := ParseStatus(input.Status)

	updated, err := service.repository.SetStatus(ctx, id, Decision{
		Status:  status,
		AdminID: adminID,
		Notes:   strings.TrimSpace(input.AdminNotes),
		At:      service.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("review_service_update_status_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "review_status_updated",
		slog.String("review_id", id),
		slog.String("status", string(status)),
	)
	return updated, nil
}

// List returns reviews for the admin console, newest first.
func (service *Service) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Review, int, error) {
	reviews, total, err := service.repository.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("review_service_list_failed: %w", err)
	}
	return reviews, total, nil
}

// Get returns a single review.
func (service *Service) Get(ctx context.Context, id string) (*Review, error) {
	review, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("review_service_get_failed: %w", err)
	}
	return review, nil
}

// Delete removes a review permanently.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repository.Delete(ctx, id); err != nil {
		return fmt.Errorf("review_service_delete_failed: %w", err)
	}
	service.logger.InfoContext(ctx, "review_deleted", slog.String("review_id", id))
	return nil
}
