// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/navigant/backoffice/pkg/pagination"
)

// Filter narrows admin listings. A zero Status matches every review.
type Filter struct {
	Status Status
}

// Repository defines the data access contract for reviews.
type Repository interface {

	/*
		Create inserts a PENDING review.

		Returns:
		  - error: apperr.Conflict on token collision, or persistence failures
	*/
	Create(ctx context.Context, review *Review) error

	// FindByID returns apperr.NotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*Review, error)

	// FindByToken returns apperr.NotFound when the token is unknown.
	FindByToken(ctx context.Context, token string) (*Review, error)

	// List returns reviews newest first.
	List(ctx context.Context, filter Filter, page pagination.Params) ([]*Review, int, error)

	// ListApproved returns every APPROVED review, most recently submitted first.
	ListApproved(ctx context.Context) ([]*Review, error)

	/*
		SubmitByToken writes the client's answers while the review is still PENDING.
		The status check and the write are a single statement.

		Returns:
		  - *Review: The review after the write
		  - error: apperr.NotFound for an unknown token, [ErrAlreadyModerated] once moderated
	*/
	SubmitByToken(ctx context.Context, token string, submission Submission) (*Review, error)

	// SetStatus writes a moderation decision and leaves the answers untouched.
	// apperr.NotFound when the id is unknown.
	SetStatus(ctx context.Context, id string, decision Decision) (*Review, error)

	// Delete removes the review; apperr.NotFound when absent.
	Delete(ctx context.Context, id string) error
}
