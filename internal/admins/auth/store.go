// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/navigant/backoffice/pkg/pagination"
)

// # Admin Data Access

// AdminRepository defines the data access contract for admin accounts.
type AdminRepository interface {

	/*
		FindByID returns the admin with the given ID.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - *Admin: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(ctx context.Context, id string) (*Admin, error)

	/*
		FindByEmail returns the admin with the given email (case-insensitive).

		Parameters:
		  - ctx: context.Context
		  - email: string

		Returns:
		  - *Admin: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByEmail(ctx context.Context, email string) (*Admin, error)

	/*
		List returns a page of admins ordered by creation time.

		Parameters:
		  - ctx: context.Context
		  - page: pagination.Params

		Returns:
		  - []*Admin: Page of admins
		  - int: Total number of admins
		  - error: Database retrieval failures
	*/
	List(ctx context.Context, page pagination.Params) ([]*Admin, int, error)

	/*
		Count returns the number of admin accounts.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - int: Row count
		  - error: Database retrieval failures
	*/
	Count(ctx context.Context) (int, error)

	/*
		Create persists a new admin account.

		Parameters:
		  - ctx: context.Context
		  - admin: *Admin

		Returns:
		  - error: apperr.Conflict when the email is taken, or persistence failures
	*/
	Create(ctx context.Context, admin *Admin) error

	/*
		Update replaces the full row of an existing admin.

		Parameters:
		  - ctx: context.Context
		  - admin: *Admin

		Returns:
		  - error: apperr.NotFound, apperr.Conflict, or persistence failures
	*/
	Update(ctx context.Context, admin *Admin) error

	/*
		Delete removes the admin permanently.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(ctx context.Context, id string) error
}

// # Volatile Data Access

// AttemptLimiter counts failed logins per email inside a sliding window.
type AttemptLimiter interface {

	/*
		Failures returns the current failure count and the time until it resets.

		Parameters:
		  - ctx: context.Context
		  - email: string

		Returns:
		  - int: Failures inside the window
		  - time.Duration: Remaining window (zero when no failures)
		  - error: Connectivity errors
	*/
	Failures(ctx context.Context, email string) (int, time.Duration, error)

	/*
		RecordFailure increments the counter and (re)starts the window.

		Parameters:
		  - ctx: context.Context
		  - email: string

		Returns:
		  - error: Connectivity errors
	*/
	RecordFailure(ctx context.Context, email string) error

	/*
		Reset clears the counter after a successful login.

		Parameters:
		  - ctx: context.Context
		  - email: string

		Returns:
		  - error: Connectivity errors
	*/
	Reset(ctx context.Context, email string) error
}
