// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"

	"github.com/navigant/backoffice/pkg/pagination"
)

// Repository defines the data access contract for notification records.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, page pagination.Params) ([]*Notification, int, error)
	CountUnread(ctx context.Context) (int, error)
	// MarkAllRead flips every unread record and returns how many changed.
	MarkAllRead(ctx context.Context) (int64, error)
}
