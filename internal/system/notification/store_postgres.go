// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/navigant/backoffice/internal/platform/database/schema"
	"github.com/navigant/backoffice/internal/platform/dberr"
	"github.com/navigant/backoffice/pkg/pagination"
)

const resourceName = "Notification"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create implements [Repository.Create].
func (repository *PostgresRepository) Create(ctx context.Context, n *Notification) error {
	t := schema.SystemNotification
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.Table, t.ID, t.Recipient, t.Subject, t.Message, t.Type, t.Status, t.Read, t.CreatedAt,
	)

	_, err := repository.db.Exec(ctx, query,
		n.ID, n.Recipient, n.Subject, n.Message, n.Type, n.Status, n.Read, n.CreatedAt,
	)
	return dberr.Wrap(err, resourceName, "create_notification")
}

// List implements [Repository.List].
func (repository *PostgresRepository) List(ctx context.Context, page pagination.Params) ([]*Notification, int, error) {
	t := schema.SystemNotification

	var total int
	if err := repository.db.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, t.Table)).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "count_notifications")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		t.ID, t.Recipient, t.Subject, t.Message, t.Type, t.Status, t.Read, t.CreatedAt,
		t.Table, t.CreatedAt,
	)

	rows, err := repository.db.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName, "list_notifications")
	}
	defer rows.Close()

	items := make([]*Notification, 0, page.Limit)
	for rows.Next() {
		n := &Notification{}
		if err := rows.Scan(&n.ID, &n.Recipient, &n.Subject, &n.Message, &n.Type, &n.Status, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, resourceName, "scan_notification")
		}
		items = append(items, n)
	}

	return items, total, dberr.Wrap(rows.Err(), resourceName, "iterate_notifications")
}

// CountUnread implements [Repository.CountUnread].
func (repository *PostgresRepository) CountUnread(ctx context.Context) (int, error) {
	t := schema.SystemNotification
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE NOT %s`, t.Table, t.Read)

	var count int
	err := repository.db.QueryRow(ctx, query).Scan(&count)
	return count, dberr.Wrap(err, resourceName, "count_unread_notifications")
}

// MarkAllRead implements [Repository.MarkAllRead].
func (repository *PostgresRepository) MarkAllRead(ctx context.Context) (int64, error) {
	t := schema.SystemNotification
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE NOT %s`, t.Table, t.Read, t.Read)

	tag, err := repository.db.Exec(ctx, query)
	if err != nil {
		return 0, dberr.Wrap(err, resourceName, "mark_notifications_read")
	}
	return tag.RowsAffected(), nil
}
