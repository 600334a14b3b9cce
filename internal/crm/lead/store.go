// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lead

import (
	"context"

	"github.com/navigant/backoffice/pkg/pagination"
)

// Filter narrows listings. A zero Status matches every lead.
type Filter struct {
	Status Status
}

// Repository defines the data access contract for leads.
type Repository interface {
	Create(ctx context.Context, lead *Lead) error

	// FindByID returns apperr.NotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*Lead, error)

	// List returns leads newest first.
	List(ctx context.Context, filter Filter, page pagination.Params) ([]*Lead, int, error)

	// Update replaces the follow-up columns (status, comments, reviewer).
	Update(ctx context.Context, lead *Lead) error
}
