// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package casestudy

import (
	"context"

	"github.com/navigant/backoffice/pkg/pagination"
)

// Repository defines the data access contract for case studies.
type Repository interface {

	// Create returns apperr.Conflict when the slug is taken.
	Create(ctx context.Context, study *CaseStudy) error

	FindByID(ctx context.Context, id string) (*CaseStudy, error)

	// FindPublishedBySlug ignores drafts; a draft slug is NotFound.
	FindPublishedBySlug(ctx context.Context, slug string) (*CaseStudy, error)

	// List returns every entry ordered by display order, then newest first.
	List(ctx context.Context, page pagination.Params) ([]*CaseStudy, int, error)

	// ListPublished returns published entries ordered by display order, then
	// publish date descending.
	ListPublished(ctx context.Context) ([]*CaseStudy, error)

	// Update replaces the full row; apperr.Conflict when a renamed slug is taken.
	Update(ctx context.Context, study *CaseStudy) error

	Delete(ctx context.Context, id string) error
}
