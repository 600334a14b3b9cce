// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"

	"github.com/navigant/backoffice/pkg/pagination"
)

// Repository defines the data access contract for the activity log.
type Repository interface {

	/*
		Append persists a single entry. Entries are never updated or deleted.

		Parameters:
		  - ctx: context.Context
		  - entry: *Entry (ID and CreatedAt are already set)

		Returns:
		  - error: Persistence failures
	*/
	Append(ctx context.Context, entry *Entry) error

	/*
		List returns a page of entries, newest first.

		Parameters:
		  - ctx: context.Context
		  - page: pagination.Params

		Returns:
		  - []*Entry: Page of entries
		  - int: Total number of entries
		  - error: Database retrieval failures
	*/
	List(ctx context.Context, page pagination.Params) ([]*Entry, int, error)
}
