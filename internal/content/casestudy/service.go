// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package casestudy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/navigant/backoffice/internal/platform/validate"
	"github.com/navigant/backoffice/pkg/pagination"
	"github.com/navigant/backoffice/pkg/slug"
	"github.com/navigant/backoffice/pkg/uuid"
)

// Service implements the case study CMS use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger, now: time.Now}
}

// CreateInput holds a new draft. New entries always start as DRAFT.
type CreateInput struct {
	Title        string
	Description  string
	FullContent  string
	Image        string
	Category     string
	Alt          string
	DisplayOrder int
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	Slug         *string
	Title        *string
	Description  *string
	FullContent  *string
	Image        *string
	Category     *string
	Alt          *string
	Status       *string
	DisplayOrder *int
	PublishDate  *time.Time
}

// makeSlug normalises a title or requested slug and bounds its length.
func makeSlug(raw string) string {
	return slug.WithSuffix(slug.From(raw), "", MaxSlugLength)
}

/*
Create stores a new DRAFT with a slug derived from its title.

Returns:
  - *CaseStudy: Created entry
  - error: ValidationError, Conflict (slug taken), or storage errors
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*CaseStudy, error) {
	generated := makeSlug(input.Title)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		Custom(FieldTitle, strings.TrimSpace(input.Title) != "" && generated == "", "Title must contain letters or digits").
		MaxLen(FieldDescription, input.Description, MaxDescriptionLength).
		MaxLen(FieldFullContent, input.FullContent, MaxContentLength).
		URL(FieldImage, input.Image).
		MaxLen(FieldImage, input.Image, MaxImageLength).
		MaxLen(FieldCategory, input.Category, MaxCategoryLength).
		MaxLen(FieldAlt, input.Alt, MaxAltLength).
		Custom(FieldDisplayOrder, input.DisplayOrder < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := service.now().UTC()
	study := &CaseStudy{
		ID:           uuid.New(),
		Slug:         generated,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		FullContent:  input.FullContent,
		Image:        strings.TrimSpace(input.Image),
		Category:     strings.TrimSpace(input.Category),
		Alt:          input.Alt,
		Status:       StatusDraft,
		DisplayOrder: input.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := service.repository.Create(ctx, study); err != nil {
		return nil, fmt.Errorf("casestudy_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "case_study_created",
		slog.String("case_study_id", study.ID),
		slog.String("slug", study.Slug),
	)
	return study, nil
}

/*
Update applies a partial change. Publishing for the first time stamps the
publish date when none is given.

Returns:
  - *CaseStudy: Updated entry
  - error: ValidationError, NotFound, Conflict (slug taken), or storage errors
*/
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*CaseStudy, error) {
	validator := &validate.Validator{}
	var renamed string
	if input.Slug != nil {
		renamed = makeSlug(*input.Slug)
		validator.Custom(FieldSlug, renamed == "", "Slug must contain letters or digits")
	}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, MaxTitleLength)
	}
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, MaxDescriptionLength)
	}
	if input.FullContent != nil {
		validator.MaxLen(FieldFullContent, *input.FullContent, MaxContentLength)
	}
	if input.Image != nil {
		validator.URL(FieldImage, *input.Image).MaxLen(FieldImage, *input.Image, MaxImageLength)
	}
	if input.Category != nil {
		validator.MaxLen(FieldCategory, *input.Category, MaxCategoryLength)
	}
	if input.Alt != nil {
		validator.MaxLen(FieldAlt, *input.Alt, MaxAltLength)
	}
	var status Status
	if input.Status != nil {
		parsed, ok := ParseStatus(strings.ToUpper(strings.TrimSpace(*input.Status)))
		validator.Custom(FieldStatus, !ok, "Must be one of: DRAFT, PUBLISHED")
		status = parsed
	}
	if input.DisplayOrder != nil {
		validator.Custom(FieldDisplayOrder, *input.DisplayOrder < 0, "Must not be negative")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("casestudy_service_update_failed: %w", err)
	}

	now := service.now().UTC()
	updated := *current
	if input.Slug != nil {
		updated.Slug = renamed
	}
	if input.Title != nil {
		updated.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		updated.Description = *input.Description
	}
	if input.FullContent != nil {
		updated.FullContent = *input.FullContent
	}
	if input.Image != nil {
		updated.Image = strings.TrimSpace(*input.Image)
	}
	if input.Category != nil {
		updated.Category = strings.TrimSpace(*input.Category)
	}
	if input.Alt != nil {
		updated.Alt = *input.Alt
	}
	if input.DisplayOrder != nil {
		updated.DisplayOrder = *input.DisplayOrder
	}
	if input.PublishDate != nil {
		publishDate := input.PublishDate.UTC()
		updated.PublishDate = &publishDate
	}
	if input.Status != nil {
		updated = updated.WithStatus(status, now)
	}
	updated.UpdatedAt = now

	if err := service.repository.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("casestudy_service_update_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "case_study_updated",
		slog.String("case_study_id", id),
		slog.String("status", string(updated.Status)),
	)
	return &updated, nil
}

// List returns every entry for the admin console, drafts included.
func (service *Service) List(ctx context.Context, page pagination.Params) ([]*CaseStudy, int, error) {
	studies, total, err := service.repository.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("casestudy_service_list_failed: %w", err)
	}
	return studies, total, nil
}

// Get returns a single entry by id, whatever its status.
func (service *Service) Get(ctx context.Context, id string) (*CaseStudy, error) {
	study, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("casestudy_service_get_failed: %w", err)
	}
	return study, nil
}

// ListPublished returns what the public site shows.
func (service *Service) ListPublished(ctx context.Context) ([]*CaseStudy, error) {
	studies, err := service.repository.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("casestudy_service_list_published_failed: %w", err)
	}
	return studies, nil
}

// GetPublished returns a published entry by slug; drafts are NotFound.
func (service *Service) GetPublished(ctx context.Context, slugKey string) (*CaseStudy, error) {
	study, err := service.repository.FindPublishedBySlug(ctx, slugKey)
	if err != nil {
		return nil, fmt.Errorf("casestudy_service_get_published_failed: %w", err)
	}
	return study, nil
}

// Delete removes an entry permanently.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repository.Delete(ctx, id); err != nil {
		return fmt.Errorf("casestudy_service_delete_failed: %w", err)
	}
	service.logger.InfoContext(ctx, "case_study_deleted", slog.String("case_study_id", id))
	return nil
}
