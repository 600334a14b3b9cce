// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package application

import (
	"context"
	"time"

	"github.com/navigant/backoffice/pkg/pagination"
)

// Filter narrows listings. Zero fields match everything.
type Filter struct {
	Status    Status
	JobPostID string
}

// Repository defines the data access contract for job applications.
type Repository interface {
	// Create returns ErrAlreadyApplied when the email already applied to the job.
	Create(ctx context.Context, application *Application) error

	// FindByID returns apperr.NotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*Application, error)

	// List returns applications newest first.
	List(ctx context.Context, filter Filter, page pagination.Params) ([]*Application, int, error)

	// SetStatus writes only the status columns and returns the stored row.
	SetStatus(ctx context.Context, id string, status Status, adminID string, at time.Time) (*Application, error)

	Delete(ctx context.Context, id string) error
}
